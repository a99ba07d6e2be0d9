// Package interaction resolves pointer state over a lineage graph into the
// edges and nodes that should be painted as active or emphasized.
//
// State is a plain value. Events are folded into it by a Resolver, which is
// pure; Session wraps one State behind a mutex for a single viewer.
package interaction

import "github.com/meshx-labs/meshx/internal/lineage"

// State is the ephemeral pointer state of one viewer. Empty strings mean
// "nothing". Hover and selection are independent slots.
type State struct {
	HoveredNode string `json:"hoveredNode,omitempty"`
	HoveredEdge string `json:"hoveredEdge,omitempty"`
	Selected    string `json:"selected,omitempty"`
}

// IsZero reports whether nothing is hovered or selected.
func (s State) IsZero() bool {
	return s == State{}
}

// EdgeActive reports whether e is hovered or either endpoint is hovered.
func (s State) EdgeActive(e lineage.Edge) bool {
	if s.HoveredEdge != "" && s.HoveredEdge == e.ID {
		return true
	}
	return e.Touches(s.HoveredNode)
}

// NodeHovered reports whether n is under the pointer.
func (s State) NodeHovered(n lineage.Node) bool {
	return s.HoveredNode != "" && s.HoveredNode == n.ID
}

// NodeSelected reports whether n is the selected node.
func (s State) NodeSelected(n lineage.Node) bool {
	return s.Selected != "" && s.Selected == n.ID
}
