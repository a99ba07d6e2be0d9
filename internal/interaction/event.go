package interaction

import (
	"fmt"

	"github.com/meshx-labs/meshx/internal/lineage"
)

// Event is a pointer notification. The set of events is closed.
type Event interface {
	isEvent()
}

// NodeEnter fires when the pointer enters a node.
type NodeEnter struct{ ID string }

// NodeLeave fires when the pointer leaves a node.
type NodeLeave struct{ ID string }

// EdgeEnter fires when the pointer enters an edge hit area.
type EdgeEnter struct{ ID string }

// EdgeLeave fires when the pointer leaves an edge hit area.
type EdgeLeave struct{ ID string }

// NodeClick fires when a node is clicked.
type NodeClick struct{ ID string }

// PointerDown fires for a press anywhere on the surface that was not
// handled as a NodeClick.
type PointerDown struct{ At lineage.Point }

// Close is the explicit close action of the selection panel.
type Close struct{}

func (NodeEnter) isEvent()   {}
func (NodeLeave) isEvent()   {}
func (EdgeEnter) isEvent()   {}
func (EdgeLeave) isEvent()   {}
func (NodeClick) isEvent()   {}
func (PointerDown) isEvent() {}
func (Close) isEvent()       {}

// Kind names used on the wire.
const (
	KindNodeEnter   = "node-enter"
	KindNodeLeave   = "node-leave"
	KindEdgeEnter   = "edge-enter"
	KindEdgeLeave   = "edge-leave"
	KindNodeClick   = "node-click"
	KindPointerDown = "pointer-down"
	KindClose       = "close"
)

// Parse builds an Event from its wire form. Ids are not checked here; use
// Resolver.Validate before dispatching untrusted input.
func Parse(kind, nodeID, edgeID string, at lineage.Point) (Event, error) {
	var ev Event
	id := nodeID
	switch kind {
	case KindNodeEnter:
		ev = NodeEnter{ID: nodeID}
	case KindNodeLeave:
		ev = NodeLeave{ID: nodeID}
	case KindNodeClick:
		ev = NodeClick{ID: nodeID}
	case KindEdgeEnter:
		ev, id = EdgeEnter{ID: edgeID}, edgeID
	case KindEdgeLeave:
		ev, id = EdgeLeave{ID: edgeID}, edgeID
	case KindPointerDown:
		return PointerDown{At: at}, nil
	case KindClose:
		return Close{}, nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}
	if id == "" {
		return nil, fmt.Errorf("%s event requires an id", kind)
	}
	return ev, nil
}
