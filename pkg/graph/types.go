package graph

import (
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout"
)

// =============================================================================
// Layout - Positioned Tracking Diagram
// =============================================================================

// Layout is the canonical serialization format for a positioned tracking
// tree. It is what the CLI writes to *.layout.json, what the HTTP API
// returns and stores, and what every renderer consumes.
//
// Nodes are listed in pre-order (parent before children, children left to
// right) and Edges in parent-to-child order, so a consumer can draw the
// diagram in a single pass.
type Layout struct {
	Root   string        `json:"root,omitempty" bson:"root,omitempty"`
	Width  float64       `json:"width" bson:"width"`   // Frame width including padding
	Height float64       `json:"height" bson:"height"` // Frame height including padding
	Config layout.Config `json:"config" bson:"config"`

	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`

	// Dropped lists record keys that were not reachable from the root.
	Dropped []string `json:"dropped,omitempty" bson:"dropped,omitempty"`
}

// IsEmpty reports whether the layout has no nodes (no root record).
func (l *Layout) IsEmpty() bool { return len(l.Nodes) == 0 }

// Node returns the node with the given ID.
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Children returns the IDs of the direct children of id, left to right.
func (l *Layout) Children(id string) []string {
	var out []string
	for _, e := range l.Edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

// =============================================================================
// Node - Positioned Box
// =============================================================================

// Node is one positioned box. X and Y are the top-left corner.
type Node struct {
	ID     string         `json:"id" bson:"id"`
	Label  string         `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	X      float64        `json:"x" bson:"x"`
	Y      float64        `json:"y" bson:"y"`
	Width  float64        `json:"width" bson:"width"`
	Height float64        `json:"height" bson:"height"`
	Depth  int            `json:"depth" bson:"depth"`
	Data   map[string]any `json:"data,omitempty" bson:"data,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Status returns the record's "status" payload field, or "".
func (n *Node) Status() string {
	s, _ := n.Data["status"].(string)
	return s
}

// CenterX returns the horizontal center of the box.
func (n *Node) CenterX() float64 { return n.X + n.Width/2 }

// Bottom returns the y of the lower edge of the box.
func (n *Node) Bottom() float64 { return n.Y + n.Height }

// =============================================================================
// Edge - Parent to Child Link
// =============================================================================

// Edge links a parent (From) to one of its children (To).
type Edge struct {
	From string `json:"sourceId" bson:"source_id"`
	To   string `json:"targetId" bson:"target_id"`
}
