package tree

// Node is one positioned element of a tracking tree.
//
// Nodes are created fresh by [Build] for a single layout computation, mutated
// in place by the layout engine, then read by renderers. The zero value is a
// valid leaf with no identity.
type Node struct {
	ID       string         // Record key, unique within the tree
	Data     map[string]any // Opaque record payload, never read by layout
	Children []*Node        // Ordered left to right in input order

	Width  float64 // Box size, assigned from the layout config
	Height float64
	X      float64 // Final top-left position
	Y      float64

	// Mod is the shift applied to every descendant of this node. It is only
	// meaningful between the first and second layout walks.
	Mod float64
	// Prelim is the provisional x relative to the parent's frame.
	Prelim float64
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Label returns the payload's "name" field, or the ID when it is absent.
func (n *Node) Label() string {
	if s, ok := n.Data["name"].(string); ok && s != "" {
		return s
	}
	return n.ID
}

// Status returns the payload's "status" field, or "".
func (n *Node) Status() string {
	s, _ := n.Data["status"].(string)
	return s
}
