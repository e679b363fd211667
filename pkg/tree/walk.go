package tree

import "errors"

// WalkFunc is called for every node visited by [Walk]. parent is nil for the
// root. Returning a non-nil error stops the walk.
type WalkFunc func(n, parent *Node, depth int) error

// Walk visits root and its descendants in pre-order, children left to right.
// A nil root is a no-op.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	return walk(root, nil, 0, fn)
}

func walk(n, parent *Node, depth int, fn WalkFunc) error {
	if err := fn(n, parent, depth); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := walk(c, n, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	n := 0
	_ = Walk(root, func(*Node, *Node, int) error { n++; return nil })
	return n
}

// Depth returns the number of levels in the tree: 0 for nil, 1 for a lone root.
func Depth(root *Node) int {
	deepest := 0
	_ = Walk(root, func(_, _ *Node, d int) error {
		deepest = max(deepest, d+1)
		return nil
	})
	return deepest
}

// Find returns the node with the given ID, or nil.
func Find(root *Node, id string) *Node {
	var found *Node
	_ = Walk(root, func(n, _ *Node, _ int) error {
		if n.ID == id {
			found = n
			return errStop
		}
		return nil
	})
	return found
}

var errStop = errors.New("stop walk")
