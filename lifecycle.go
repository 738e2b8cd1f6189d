package constellation

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

const (
	appearDuration   = 800 * time.Millisecond
	glowDuration     = 400 * time.Millisecond
	edgeFadeDuration = 1500 * time.Millisecond
)

// fadeIn evaluates a linear 0→1 ramp over d at elapsed, clamped to [0, 1].
func fadeIn(elapsed, d time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= d {
		return 1
	}
	ms := float32(elapsed) / float32(time.Millisecond)
	return float64(ease.Linear(ms, 0, 1, float32(d)/float32(time.Millisecond)))
}

// NodeAppearance maps the age of a node to its phase and opacity. Opacity
// rises linearly while appearing and is exactly 1 from the glow phase on.
func NodeAppearance(elapsed time.Duration) (Phase, float64) {
	switch {
	case elapsed < appearDuration:
		return PhaseAppearing, fadeIn(elapsed, appearDuration)
	case elapsed < appearDuration+glowDuration:
		return PhaseGlowing, 1
	default:
		return PhaseStable, 1
	}
}

// EdgeOpacity returns the next opacity of an edge of the given age whose
// endpoints have average depth avgDepth. A fully opaque edge stays opaque,
// and the result never drops below current.
func EdgeOpacity(current float64, elapsed time.Duration, avgDepth float64) float64 {
	if current >= 1 {
		return current
	}
	next := fadeIn(elapsed, edgeFadeDuration) * (0.2 + 0.8*avgDepth)
	return math.Max(current, next)
}

// animate advances every node and edge to its appearance at now.
func (sim *Simulation) animate(now time.Duration) {
	nodes := sim.store.Nodes()
	for i := range nodes {
		n := &nodes[i]
		n.Phase, n.Opacity = NodeAppearance(now - n.CreatedAt)
	}
	edges := sim.store.Edges()
	for i := range edges {
		e := &edges[i]
		e.Opacity = EdgeOpacity(e.Opacity, now-e.CreatedAt, sim.store.avgDepth(e.Key))
	}
}
