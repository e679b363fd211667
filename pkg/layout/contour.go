package layout

import "github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tree"

// keepFunc reports whether x should replace the current extreme cur.
type keepFunc func(cur, x float64) bool

func rightmost(cur, x float64) bool { return x > cur }
func leftmost(cur, x float64) bool  { return x < cur }

// collectContour merges the extreme x per level of the subtree rooted at n
// into c, where c[0] is the level of n. Positions are Prelim plus the Mod of
// every ancestor inside the subtree, i.e. relative to n's parent frame plus
// modSum.
func collectContour(n *tree.Node, depth int, modSum float64, c []float64, keep keepFunc) []float64 {
	x := n.Prelim + modSum
	switch {
	case depth == len(c):
		c = append(c, x)
	case keep(c[depth], x):
		c[depth] = x
	}
	for _, child := range n.Children {
		c = collectContour(child, depth+1, modSum+n.Mod, c, keep)
	}
	return c
}
