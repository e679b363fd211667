package graph

import (
	"maps"
	"math"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tree"
)

// FromTree flattens a positioned tree into its serialization format.
//
// root must already have been passed through [layout.Calculate] with cfg.
// A nil root yields an empty layout carrying only cfg.
//
// The frame is sized so that the right-most and bottom-most boxes keep
// cfg.Padding of margin. Renderers add the same padding above the root.
func FromTree(root *tree.Node, cfg layout.Config) Layout {
	out := Layout{
		Config: cfg,
		Nodes:  []Node{},
		Edges:  []Edge{},
	}
	if root == nil {
		return out
	}
	out.Root = root.ID

	var right, bottom float64
	_ = tree.Walk(root, func(n, parent *tree.Node, depth int) error {
		out.Nodes = append(out.Nodes, Node{
			ID:     n.ID,
			Label:  labelOf(n),
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
			Depth:  depth,
			Data:   copyData(n.Data),
		})
		if parent != nil {
			out.Edges = append(out.Edges, Edge{From: parent.ID, To: n.ID})
		}
		right = math.Max(right, n.X+n.Width)
		bottom = math.Max(bottom, n.Y+n.Height)
		return nil
	})

	out.Width = right + cfg.Padding
	out.Height = bottom + 2*cfg.Padding
	return out
}

// labelOf only stores labels that differ from the ID.
func labelOf(n *tree.Node) string {
	if l := n.Label(); l != n.ID {
		return l
	}
	return ""
}

func copyData(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}
