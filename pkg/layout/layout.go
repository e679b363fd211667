package layout

import (
	"math"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tree"
)

// Calculate assigns X and Y to every node of the tree rooted at root.
//
// Nodes are mutated in place; Width and Height are set from cfg and the
// intermediate Prelim and Mod fields are reset first, so calling Calculate
// again on the same tree yields the same positions. A nil root is a no-op.
//
// Calculate returns an error for an invalid cfg, or when a node is reachable
// through more than one path (a shared child or a cycle). In both cases no
// position has been written.
func Calculate(root *tree.Node, cfg Config) error {
	if root == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := parentMap(root); err != nil {
		return err
	}

	e := engine{cfg: cfg}
	e.initialize(root)
	e.firstWalk(root, nil, nil)
	e.secondWalk(root, 0, 0)
	e.normalize(root)
	return nil
}

// parentMap maps every non-root node to its parent. It is built iteratively
// so that a malformed, cyclic structure is reported instead of recursing
// forever.
func parentMap(root *tree.Node) (map[*tree.Node]*tree.Node, error) {
	parents := make(map[*tree.Node]*tree.Node)
	seen := map[*tree.Node]bool{root: true}
	stack := []*tree.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range n.Children {
			if c == nil {
				return nil, errors.New(errors.ErrCodeInvalidLayout, "node %q has a nil child", n.ID)
			}
			if seen[c] {
				return nil, errors.New(errors.ErrCodeCyclicInput,
					"node %q is reachable through more than one parent", c.ID)
			}
			seen[c] = true
			parents[c] = n
			stack = append(stack, c)
		}
	}
	return parents, nil
}

type engine struct {
	cfg Config
}

func (e *engine) initialize(root *tree.Node) {
	_ = tree.Walk(root, func(n, _ *tree.Node, _ int) error {
		n.Mod = 0
		n.Prelim = 0
		n.Width = e.cfg.NodeWidth
		n.Height = e.cfg.NodeHeight
		return nil
	})
}

// firstWalk computes Prelim and Mod bottom-up. left is the immediate left
// sibling of n and leftContour the right-most extent, per level, of all
// siblings to the left of n, measured in the parent's frame.
func (e *engine) firstWalk(n, left *tree.Node, leftContour []float64) {
	var acc []float64
	var prev *tree.Node
	for _, c := range n.Children {
		e.firstWalk(c, prev, acc)
		acc = collectContour(c, 0, 0, acc, rightmost)
		prev = c
	}

	step := e.cfg.NodeWidth + e.cfg.SiblingSpacing
	if n.IsLeaf() {
		if left != nil {
			n.Prelim = left.Prelim + step
		}
		return
	}

	first, last := n.Children[0], n.Children[len(n.Children)-1]
	mid := (first.Prelim + last.Prelim) / 2
	if left == nil {
		n.Prelim = mid
		return
	}
	n.Prelim = left.Prelim + step
	n.Mod = n.Prelim - mid
	e.separate(n, leftContour)
}

// separate pushes n and its subtree right until, on every level below n,
// its left-most node clears the right-most node of the siblings to its left
// by SubtreeSpacing.
func (e *engine) separate(n *tree.Node, leftContour []float64) {
	own := collectContour(n, 0, 0, nil, leftmost)
	levels := min(len(own), len(leftContour))

	var shift float64
	for d := 1; d < levels; d++ {
		gap := leftContour[d] + e.cfg.NodeWidth + e.cfg.SubtreeSpacing - own[d]
		shift = math.Max(shift, gap)
	}
	if shift > 0 {
		n.Prelim += shift
		n.Mod += shift
	}
}

// secondWalk resolves absolute positions top-down.
func (e *engine) secondWalk(n *tree.Node, modSum float64, depth int) {
	n.X = n.Prelim + modSum
	n.Y = float64(depth) * e.cfg.LevelHeight
	for _, c := range n.Children {
		e.secondWalk(c, modSum+n.Mod, depth+1)
	}
}

// normalize shifts the whole tree right so that no node starts left of the
// padding. Trees already clear of the padding are left untouched.
func (e *engine) normalize(root *tree.Node) {
	minX := math.Inf(1)
	_ = tree.Walk(root, func(n, _ *tree.Node, _ int) error {
		minX = math.Min(minX, n.X)
		return nil
	})
	if minX >= e.cfg.Padding {
		return
	}
	dx := e.cfg.Padding - minX
	_ = tree.Walk(root, func(n, _ *tree.Node, _ int) error {
		n.X += dx
		return nil
	})
}
