// Package lineage models a data lineage graph laid out on a fixed canvas.
//
// A Graph holds a closed set of nodes and edges. Nodes flow from sources
// through a single transform into a single output; New rejects any other
// shape. All geometry (anchors, edge curves, midpoints, node bounds) is
// derived from node positions and the shared node size.
//
// Lookups by id come in two flavours: Node and Edge return a bool for
// untrusted input, while MustNode and MustEdge treat a miss as a
// programming error and panic.
package lineage

import (
	"errors"
	"fmt"
	"slices"

	"github.com/meshx-labs/meshx/internal/dag"
)

// Default node size in canvas units.
const (
	DefaultNodeWidth  = 160
	DefaultNodeHeight = 70
)

// Sentinel errors.
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
	ErrInvalidGraph = errors.New("invalid lineage graph")
)

// Graph is an immutable lineage graph.
type Graph struct {
	nodes      []Node
	edges      []Edge
	nodeIndex  map[string]int
	edgeIndex  map[string]int
	nodeWidth  float64
	nodeHeight float64
	flow       *dag.Graph
}

// Option configures a Graph.
type Option func(*Graph)

// WithNodeSize overrides the shared node size.
func WithNodeSize(width, height float64) Option {
	return func(g *Graph) {
		g.nodeWidth = width
		g.nodeHeight = height
	}
}

// New builds a graph and checks every structural invariant. All violations
// are reported together; the returned error matches ErrInvalidGraph.
func New(nodes []Node, edges []Edge, opts ...Option) (*Graph, error) {
	g := &Graph{
		nodes:      slices.Clone(nodes),
		edges:      slices.Clone(edges),
		nodeIndex:  make(map[string]int, len(nodes)),
		edgeIndex:  make(map[string]int, len(edges)),
		nodeWidth:  DefaultNodeWidth,
		nodeHeight: DefaultNodeHeight,
		flow:       dag.NewGraph(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if errs := g.index(); len(errs) > 0 {
		return nil, invalid(errs)
	}
	if errs := g.checkShape(); len(errs) > 0 {
		return nil, invalid(errs)
	}
	return g, nil
}

// MustNew is New that panics on error. Intended for static fixtures.
func MustNew(nodes []Node, edges []Edge, opts ...Option) *Graph {
	g, err := New(nodes, edges, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

func invalid(errs []error) error {
	return fmt.Errorf("%w: %w", ErrInvalidGraph, errors.Join(errs...))
}

func (g *Graph) index() []error {
	var errs []error
	if g.nodeWidth <= 0 || g.nodeHeight <= 0 {
		errs = append(errs, fmt.Errorf("node size must be positive, got %gx%g", g.nodeWidth, g.nodeHeight))
	}

	for i, n := range g.nodes {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node at index %d has no id", i))
			continue
		}
		if _, dup := g.nodeIndex[n.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate node id %q", n.ID))
			continue
		}
		if !n.Category.Valid() {
			errs = append(errs, fmt.Errorf("node %q has unknown category %q", n.ID, n.Category))
		}
		g.nodeIndex[n.ID] = i
		g.flow.AddNode(n.ID)
	}

	for i, e := range g.edges {
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("edge at index %d has no id", i))
			continue
		}
		if _, dup := g.edgeIndex[e.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate edge id %q", e.ID))
			continue
		}
		g.edgeIndex[e.ID] = i
		if err := g.flow.AddEdge(e.From, e.To); err != nil {
			errs = append(errs, fmt.Errorf("edge %q: %w", e.ID, err))
		}
	}
	return errs
}

// checkShape enforces fan-in of every source into exactly one transform
// followed by fan-out of one into exactly one output.
func (g *Graph) checkShape() []error {
	var errs []error
	if cycle := g.flow.FindCycle(); cycle != nil {
		errs = append(errs, fmt.Errorf("cycle detected: %v", cycle))
	}

	transforms := g.idsOf(CategoryTransform)
	outputs := g.idsOf(CategoryOutput)
	if len(transforms) != 1 {
		errs = append(errs, fmt.Errorf("expected exactly one transform node, found %d", len(transforms)))
	}
	if len(outputs) != 1 {
		errs = append(errs, fmt.Errorf("expected exactly one output node, found %d", len(outputs)))
	}
	if len(errs) > 0 {
		return errs
	}

	transform, output := transforms[0], outputs[0]
	for _, src := range g.idsOf(CategorySource) {
		if out := g.flow.Children(src); len(out) != 1 || out[0] != transform {
			errs = append(errs, fmt.Errorf("source %q must flow only into transform %q, flows into %v", src, transform, out))
		}
	}
	if out := g.flow.Children(transform); len(out) != 1 || out[0] != output {
		errs = append(errs, fmt.Errorf("transform %q must flow only into output %q, flows into %v", transform, output, out))
	}
	if out := g.flow.Children(output); len(out) != 0 {
		errs = append(errs, fmt.Errorf("output %q must not flow onwards, flows into %v", output, out))
	}
	for _, p := range g.flow.Parents(transform) {
		if g.MustNode(p).Category != CategorySource {
			errs = append(errs, fmt.Errorf("transform %q is fed by non-source %q", transform, p))
		}
	}
	return errs
}

func (g *Graph) idsOf(c Category) []string {
	var ids []string
	for _, n := range g.nodes {
		if n.Category == c {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Nodes returns the nodes in declaration order.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns the edges in declaration order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeSize returns the shared node width and height.
func (g *Graph) NodeSize() (width, height float64) { return g.nodeWidth, g.nodeHeight }

// Flow exposes the underlying dependency graph.
func (g *Graph) Flow() *dag.Graph { return g.flow }

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// MustNode returns the node for id and panics if id is outside the graph.
func (g *Graph) MustNode(id string) Node {
	n, ok := g.Node(id)
	if !ok {
		panic(fmt.Sprintf("lineage: %s: %q", ErrNodeNotFound, id))
	}
	return n
}

// Edge looks up an edge by id.
func (g *Graph) Edge(id string) (Edge, bool) {
	i, ok := g.edgeIndex[id]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// MustEdge returns the edge for id and panics if id is outside the graph.
func (g *Graph) MustEdge(id string) Edge {
	e, ok := g.Edge(id)
	if !ok {
		panic(fmt.Sprintf("lineage: %s: %q", ErrEdgeNotFound, id))
	}
	return e
}

// CheckNode returns ErrNodeNotFound when id is not part of the graph.
func (g *Graph) CheckNode(id string) error {
	if _, ok := g.nodeIndex[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return nil
}

// CheckEdge returns ErrEdgeNotFound when id is not part of the graph.
func (g *Graph) CheckEdge(id string) error {
	if _, ok := g.edgeIndex[id]; !ok {
		return fmt.Errorf("%w: %q", ErrEdgeNotFound, id)
	}
	return nil
}

// EdgesOf returns the edges touching nodeID, in declaration order.
func (g *Graph) EdgesOf(nodeID string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Touches(nodeID) {
			out = append(out, e)
		}
	}
	return out
}

// Bounds returns the rectangle of node id.
func (g *Graph) Bounds(id string) Rect {
	n := g.MustNode(id)
	return Rect{X: n.X, Y: n.Y, Width: g.nodeWidth, Height: g.nodeHeight}
}

// Anchors returns the right-center point of the edge's source node and the
// left-center point of its destination node.
func (g *Graph) Anchors(e Edge) (from, to Point) {
	src := g.MustNode(e.From)
	dst := g.MustNode(e.To)
	from = Point{X: src.X + g.nodeWidth, Y: src.Y + g.nodeHeight/2}
	to = Point{X: dst.X, Y: dst.Y + g.nodeHeight/2}
	return from, to
}

// EdgePath returns the S-curve between the anchors of e. Both control
// points share the horizontal midpoint of the anchors.
func (g *Graph) EdgePath(e Edge) Path {
	from, to := g.Anchors(e)
	mx := (from.X + to.X) / 2
	return Path{
		Start: from,
		C1:    Point{X: mx, Y: from.Y},
		C2:    Point{X: mx, Y: to.Y},
		End:   to,
	}
}

// EdgeMidpoint returns the mean of the two anchors of e. Labels and
// tooltips for the edge are placed here.
func (g *Graph) EdgeMidpoint(e Edge) Point {
	from, to := g.Anchors(e)
	return Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}
}
