package interaction

import (
	"fmt"
	"math"

	"github.com/meshx-labs/meshx/internal/lineage"
)

// edgeSamples is how many segments an edge curve is split into for
// hit-testing.
const edgeSamples = 32

// DefaultEdgeTolerance matches the width of the invisible hit-area stroke
// painted over each edge.
const DefaultEdgeTolerance = 6

// Resolver folds events into State for one graph. It holds no mutable
// state of its own and is safe for concurrent use.
type Resolver struct {
	graph      *lineage.Graph
	selectable func(lineage.Node) bool
	panel      lineage.Rect
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSelectable overrides which nodes can be selected.
func WithSelectable(fn func(lineage.Node) bool) ResolverOption {
	return func(r *Resolver) { r.selectable = fn }
}

// WithPanelBounds publishes the bounds of the selection panel. Presses
// inside the panel never clear the selection. Bounds use canvas
// coordinates, the same space as PointerDown.At.
func WithPanelBounds(bounds lineage.Rect) ResolverOption {
	return func(r *Resolver) { r.panel = bounds }
}

// SourcesSelectable is the default selection rule: source nodes carry a
// detail record, everything else does not.
func SourcesSelectable(n lineage.Node) bool {
	return n.Category == lineage.CategorySource
}

// NewResolver creates a Resolver for g.
func NewResolver(g *lineage.Graph, opts ...ResolverOption) *Resolver {
	r := &Resolver{graph: g, selectable: SourcesSelectable}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Graph returns the graph the resolver works on.
func (r *Resolver) Graph() *lineage.Graph { return r.graph }

// PanelBounds returns the published selection panel bounds.
func (r *Resolver) PanelBounds() lineage.Rect { return r.panel }

// WithPanel returns a copy of r publishing new panel bounds.
func (r *Resolver) WithPanel(bounds lineage.Rect) *Resolver {
	cp := *r
	cp.panel = bounds
	return &cp
}

// Selectable reports whether n can be selected.
func (r *Resolver) Selectable(n lineage.Node) bool {
	return r.selectable(n)
}

// Validate checks that every id carried by ev belongs to the graph.
func (r *Resolver) Validate(ev Event) error {
	switch ev := ev.(type) {
	case NodeEnter:
		return r.graph.CheckNode(ev.ID)
	case NodeLeave:
		return r.graph.CheckNode(ev.ID)
	case NodeClick:
		return r.graph.CheckNode(ev.ID)
	case EdgeEnter:
		return r.graph.CheckEdge(ev.ID)
	case EdgeLeave:
		return r.graph.CheckEdge(ev.ID)
	case PointerDown, Close:
		return nil
	default:
		return fmt.Errorf("unsupported event %T", ev)
	}
}

// Apply returns the state after ev. Ids outside the graph panic; callers
// handling untrusted input run Validate first.
func (r *Resolver) Apply(s State, ev Event) State {
	switch ev := ev.(type) {
	case NodeEnter:
		s.HoveredNode = r.graph.MustNode(ev.ID).ID
	case NodeLeave:
		r.graph.MustNode(ev.ID)
		if s.HoveredNode == ev.ID {
			s.HoveredNode = ""
		}
	case EdgeEnter:
		s.HoveredEdge = r.graph.MustEdge(ev.ID).ID
	case EdgeLeave:
		r.graph.MustEdge(ev.ID)
		if s.HoveredEdge == ev.ID {
			s.HoveredEdge = ""
		}
	case NodeClick:
		n := r.graph.MustNode(ev.ID)
		if !r.selectable(n) {
			// Outside every selectable node.
			s.Selected = ""
			return s
		}
		if s.Selected == n.ID {
			s.Selected = ""
		} else {
			s.Selected = n.ID
		}
	case PointerDown:
		if r.insideSelectionArea(ev.At) {
			return s
		}
		s.Selected = ""
	case Close:
		s.Selected = ""
	default:
		panic(fmt.Sprintf("interaction: unsupported event %T", ev))
	}
	return s
}

func (r *Resolver) insideSelectionArea(p lineage.Point) bool {
	if !r.panel.Empty() && r.panel.Contains(p) {
		return true
	}
	n, ok := r.NodeAt(p)
	return ok && r.selectable(n)
}

// NodeEmphasized reports whether n is hovered, or selectable and selected.
func (r *Resolver) NodeEmphasized(s State, n lineage.Node) bool {
	return s.NodeHovered(n) || (r.selectable(n) && s.NodeSelected(n))
}

// ActiveEdges returns the ids of active edges in graph order.
func (r *Resolver) ActiveEdges(s State) []string {
	var ids []string
	for _, e := range r.graph.Edges() {
		if s.EdgeActive(e) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// EmphasizedNodes returns the ids of emphasized nodes in graph order.
func (r *Resolver) EmphasizedNodes(s State) []string {
	var ids []string
	for _, n := range r.graph.Nodes() {
		if r.NodeEmphasized(s, n) {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// NodeAt returns the node whose rectangle contains p. Later nodes are
// painted on top, so they win.
func (r *Resolver) NodeAt(p lineage.Point) (lineage.Node, bool) {
	nodes := r.graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if r.graph.Bounds(nodes[i].ID).Contains(p) {
			return nodes[i], true
		}
	}
	return lineage.Node{}, false
}

// EdgeAt returns the edge whose curve passes closest to p, provided it is
// within tolerance.
func (r *Resolver) EdgeAt(p lineage.Point, tolerance float64) (lineage.Edge, bool) {
	best := math.Inf(1)
	var hit lineage.Edge
	for _, e := range r.graph.Edges() {
		if d := distanceToPath(r.graph.EdgePath(e), p); d < best {
			best, hit = d, e
		}
	}
	if best > tolerance {
		return lineage.Edge{}, false
	}
	return hit, true
}

// distanceToPath approximates the curve by a polyline and returns the
// shortest distance from p to any of its segments.
func distanceToPath(path lineage.Path, p lineage.Point) float64 {
	best := math.Inf(1)
	prev := path.At(0)
	for i := 1; i <= edgeSamples; i++ {
		cur := path.At(float64(i) / edgeSamples)
		best = math.Min(best, distanceToSegment(p, prev, cur))
		prev = cur
	}
	return best
}

func distanceToSegment(p, a, b lineage.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Dist(lineage.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}
