package sink

import (
	"encoding/json"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact  bool
	withData bool
}

// WithJSONCompact drops indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONData keeps each node's record payload. Without it only ids,
// labels and geometry are written, which is what the diagram widget needs.
func WithJSONData() JSONOption { return func(r *jsonRenderer) { r.withData = true } }

// RenderJSON writes the layout in its wire format.
func RenderJSON(l graph.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	if !r.withData {
		nodes := make([]graph.Node, len(l.Nodes))
		for i, n := range l.Nodes {
			n.Data = nil
			nodes[i] = n
		}
		l.Nodes = nodes
	}

	if r.compact {
		return json.Marshal(l)
	}
	return json.MarshalIndent(l, "", "  ")
}
