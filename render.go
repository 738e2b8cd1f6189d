package constellation

import (
	"cmp"
	"math"
	"slices"
)

// Surface is a drawing target of fixed pixel dimensions. Colors are passed
// straight (not premultiplied); opacity multiplies the color's alpha.
type Surface interface {
	// Size returns the current surface size in pixels. A zero size means the
	// surface is not ready and nothing should be drawn.
	Size() (width, height int)
	// Clear fills the whole surface with bg. A zero Color clears to transparent.
	Clear(bg Color)
	// StrokeLine draws a straight segment.
	StrokeLine(x0, y0, x1, y1, width float64, c Color, opacity float64)
	// FillCircle draws a filled disc.
	FillCircle(cx, cy, r float64, c Color, opacity float64)
}

// nodeOpacity combines the appearance fade with depth: far nodes are drawn at
// 30% of their opacity, the nearest at 100%.
func nodeOpacity(n *Node) float64 {
	return n.Opacity * (0.3 + 0.7*n.Depth)
}

// Render draws the current graph onto s: edges first, then nodes from far to
// near so that near nodes paint on top. Nothing is drawn when s is not ready.
func (sim *Simulation) Render(s Surface) {
	if w, h := s.Size(); w <= 0 || h <= 0 {
		return
	}
	s.Clear(sim.background)

	nodes := sim.store.Nodes()
	edges := sim.store.Edges()
	for i := range edges {
		e := &edges[i]
		a, b := &nodes[e.Key.A], &nodes[e.Key.B]
		if !a.Visible || !b.Visible {
			continue
		}
		s.StrokeLine(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y, e.Width, sim.edgeColor, e.Opacity)
	}

	for _, id := range sim.depthOrder() {
		n := &nodes[id]
		if !n.Visible {
			continue
		}
		s.FillCircle(n.Pos.X, n.Pos.Y, math.Min(n.Size, maxNodeSize), n.Color, nodeOpacity(n))
	}
}

// depthOrder returns node ids sorted by ascending depth, ties broken by id.
// The buffer is reused across frames.
func (sim *Simulation) depthOrder() []int {
	nodes := sim.store.Nodes()
	order := sim.drawOrder[:0]
	for i := range nodes {
		order = append(order, i)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(nodes[a].Depth, nodes[b].Depth)
	})
	sim.drawOrder = order
	return order
}
