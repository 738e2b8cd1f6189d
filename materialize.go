package constellation

import (
	"math"
	"time"
)

const (
	// secondaryLinkRadius is the farthest an existing node may be from a
	// newborn one and still receive a secondary link.
	secondaryLinkRadius = 300
	// secondaryLinkMinNodes is the graph size above which secondary links form.
	secondaryLinkMinNodes = 3
)

var (
	depthStep     = Range{0.1, 0.3}
	spawnVelocity = Range{-0.3, 0.3}
)

// seed creates the first node at InitialNodePosition within the viewport. It
// is the nearest and largest node of the graph.
func (sim *Simulation) seed(now time.Duration) {
	size := math.Min(sim.cfg.NodeSizeRange[1], maxNodeSize)
	sim.store.AddNode(Node{
		Pos: Vec2{
			X: sim.viewport.X + sim.viewport.Width*sim.cfg.InitialNodePosition[0],
			Y: sim.viewport.Y + sim.viewport.Height*sim.cfg.InitialNodePosition[1],
		},
		Size:      size,
		Depth:     1,
		Color:     sim.nodeColor,
		Visible:   true,
		Opacity:   0,
		CreatedAt: now,
		Phase:     PhaseAppearing,
	})
	sim.spawned++
}

// materialize grows a node off parentID. It silently does nothing when the
// simulation is not running, the parent does not exist, or the graph is full.
// Secondary links are decided once, from the positions at birth.
func (sim *Simulation) materialize(parentID int, now time.Duration) bool {
	if !sim.growth.running() || sim.store.Len() >= sim.cfg.MaxNodes {
		return false
	}
	parent := sim.store.Node(parentID)
	if parent == nil {
		return false
	}

	depth := math.Max(0.1, parent.Depth-depthStep.Random(sim.rng))
	size := math.Min(sim.cfg.sizeRange().Lerp(depth), maxNodeSize)

	theta := randomAngle(sim.rng)
	dist := Range{sim.cfg.OptimalDistance * 0.8, sim.cfg.OptimalDistance * 1.2}.Random(sim.rng)
	pos := parent.Pos.Add(polar(theta, dist))

	vel := Vec2{
		X: spawnVelocity.Random(sim.rng) * sim.cfg.NodeMovementSpeed,
		Y: spawnVelocity.Random(sim.rng) * sim.cfg.NodeMovementSpeed,
	}

	id := sim.store.AddNode(Node{
		Pos:       pos,
		Vel:       vel,
		Size:      size,
		Depth:     depth,
		Color:     parent.Color,
		Visible:   true,
		Opacity:   0,
		CreatedAt: now,
		Phase:     PhaseAppearing,
	})
	sim.store.Connect(id, parentID)

	if sim.store.Len() > secondaryLinkMinNodes {
		sim.linkSecondary(id)
	}

	sim.store.RebuildEdges(now, sim.cfg.widthRange())
	sim.spawned++
	return true
}

// linkSecondary gives the newborn node extra links to nearby nodes that still
// have spare capacity.
func (sim *Simulation) linkSecondary(id int) {
	nodes := sim.store.Nodes()
	born := nodes[id].Pos
	for i := range nodes {
		if i == id {
			continue
		}
		if sim.rng.Float64() >= sim.cfg.ConnectionProbability {
			continue
		}
		if sim.store.Degree(i) >= sim.cfg.MaxConnections {
			continue
		}
		if nodes[i].Pos.Dist(born) >= secondaryLinkRadius {
			continue
		}
		sim.store.Connect(i, id)
	}
}
