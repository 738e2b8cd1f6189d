package constellation

import (
	"fmt"
	"slices"
	"time"

	"gonum.org/v1/gonum/graph/simple"
)

// maxNodeSize is the hard ceiling on node radius, applied at creation and
// again at render time.
const maxNodeSize = 10

// Phase is the appearance stage of a node.
type Phase uint8

const (
	PhaseAppearing Phase = iota // fading in
	PhaseGlowing                // fully opaque, glow stage (currently no visual effect)
	PhaseStable                 // fully opaque
)

func (p Phase) String() string {
	switch p {
	case PhaseAppearing:
		return "appearing"
	case PhaseGlowing:
		return "glowing"
	case PhaseStable:
		return "stable"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Node is one vertex of the growing graph. Nodes live in a Store arena and are
// addressed by their dense ID.
type Node struct {
	ID    int
	Pos   Vec2
	Vel   Vec2
	Size  float64
	Depth float64 // 0..1, higher is nearer: larger and more opaque
	Color Color

	Visible   bool
	Opacity   float64
	CreatedAt time.Duration
	Phase     Phase
}

// EdgeKey identifies an undirected edge. A is always the smaller id.
type EdgeKey struct {
	A, B int
}

// MakeEdgeKey returns the canonical key for the pair (a, b) in either order.
func MakeEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

func (k EdgeKey) String() string {
	return fmt.Sprintf("%d-%d", k.A, k.B)
}

// Edge is the drawable record of a connection between two nodes.
type Edge struct {
	Key       EdgeKey
	Opacity   float64
	Width     float64
	CreatedAt time.Duration
}

// Store owns every node and edge of one simulation. Links between nodes are
// kept in an undirected graph keyed by node id. It is not safe for concurrent
// use; a single tick owns it at a time.
type Store struct {
	nodes     []Node
	links     *simple.UndirectedGraph
	edges     []Edge
	edgeIndex map[EdgeKey]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		links:     simple.NewUndirectedGraph(),
		edgeIndex: make(map[EdgeKey]int),
	}
}

// Len returns the number of nodes. It is also the id of the next node.
func (s *Store) Len() int {
	return len(s.nodes)
}

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int {
	return len(s.edges)
}

// Node returns the node with the given id, or nil when it does not exist.
// The pointer is invalidated by the next AddNode.
func (s *Store) Node(id int) *Node {
	if id < 0 || id >= len(s.nodes) {
		return nil
	}
	return &s.nodes[id]
}

// Nodes returns the node arena in id order. The returned slice MUST NOT be
// appended to.
func (s *Store) Nodes() []Node {
	return s.nodes
}

// Edges returns the edges in creation order. The returned slice MUST NOT be
// appended to.
func (s *Store) Edges() []Edge {
	return s.edges
}

// Edge returns the edge stored under key, or nil.
func (s *Store) Edge(key EdgeKey) *Edge {
	i, ok := s.edgeIndex[key]
	if !ok {
		return nil
	}
	return &s.edges[i]
}

// AddNode appends n, assigning it the next dense id, and returns that id.
func (s *Store) AddNode(n Node) int {
	n.ID = len(s.nodes)
	s.nodes = append(s.nodes, n)
	s.links.AddNode(simple.Node(n.ID))
	return n.ID
}

// Connect links a and b in both directions. Self links and unknown ids are
// ignored. It reports whether a new link was made.
func (s *Store) Connect(a, b int) bool {
	if a == b || s.Node(a) == nil || s.Node(b) == nil {
		return false
	}
	if s.links.HasEdgeBetween(int64(a), int64(b)) {
		return false
	}
	s.links.SetEdge(s.links.NewEdge(simple.Node(a), simple.Node(b)))
	return true
}

// Connected reports whether a and b are linked.
func (s *Store) Connected(a, b int) bool {
	if s.Node(a) == nil || s.Node(b) == nil {
		return false
	}
	return s.links.HasEdgeBetween(int64(a), int64(b))
}

// Degree returns the number of links node id has, or 0 for unknown ids.
func (s *Store) Degree(id int) int {
	if s.Node(id) == nil {
		return 0
	}
	return s.links.From(int64(id)).Len()
}

// Neighbors returns the ids linked to id in ascending order.
func (s *Store) Neighbors(id int) []int {
	if s.Node(id) == nil {
		return nil
	}
	it := s.links.From(int64(id))
	out := make([]int, 0, it.Len())
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	slices.Sort(out)
	return out
}

// RebuildEdges makes sure every connection has an edge. Existing edges are
// kept untouched so in-flight fades survive; new ones start transparent with a
// width interpolated by the average depth of their endpoints.
func (s *Store) RebuildEdges(now time.Duration, widths Range) int {
	added := 0
	for i := range s.nodes {
		for _, nb := range s.Neighbors(i) {
			key := MakeEdgeKey(i, nb)
			if _, ok := s.edgeIndex[key]; ok {
				continue
			}
			avg := s.avgDepth(key)
			s.edgeIndex[key] = len(s.edges)
			s.edges = append(s.edges, Edge{
				Key:       key,
				Opacity:   0,
				Width:     widths.Lerp(avg),
				CreatedAt: now,
			})
			added++
		}
	}
	return added
}

// Recolor sets every node to c.
func (s *Store) Recolor(c Color) {
	for i := range s.nodes {
		s.nodes[i].Color = c
	}
}

// Reset drops every node and edge.
func (s *Store) Reset() {
	s.nodes = s.nodes[:0]
	s.links = simple.NewUndirectedGraph()
	s.edges = s.edges[:0]
	clear(s.edgeIndex)
}

// avgDepth returns the mean depth of an edge's endpoints.
func (s *Store) avgDepth(key EdgeKey) float64 {
	return (s.nodes[key.A].Depth + s.nodes[key.B].Depth) / 2
}
