// Package pkg provides the core libraries for tracktree task tree diagrams.
//
// # Overview
//
// tracktree takes the flat sub-task tracking list of a document-processing
// task, where every record names its parent and the root names itself, and
// draws it as a top-down tree: parents centred over their children, sibling
// subtrees never overlapping, one row per depth.
//
// # Architecture
//
// The data flow through tracktree:
//
//	Tracking records (JSON, YAML, TOML)
//	         ↓
//	    [tracking] package (decode records, keep payloads)
//	         ↓
//	    [tree] package (link records into a tree, report orphans)
//	         ↓
//	    [layout] package (Reingold-Tilford style positioning)
//	         ↓
//	    [graph] package (flat, serializable layout)
//	         ↓
//	    [render] packages (SVG, PNG, PDF, DOT, JSON)
//
// # Quick Start
//
//	records, _ := tracking.Import("tasks.json")
//	root, report, _ := tree.Build(records)
//	cfg := layout.DefaultConfig()
//	_ = layout.Calculate(root, cfg)
//	l := graph.FromTree(root, cfg)
//	l.Dropped = report.Dropped
//	svg := sink.RenderSVG(l)
//
// Most callers go through [pipeline], which adds caching and runs the
// stages the same way for the CLI and the HTTP server.
//
// # Main Packages
//
// [tracking] - Record decoding. Keys and parents may be numbers or strings;
// every other field is carried as an opaque payload.
//
// [tree] - Tree construction. Cycles, duplicate keys and multiple roots are
// errors; records that cannot reach the root are dropped and reported.
//
// [layout] - The layout engine. Positions every node from a [layout.Config]
// and never mutates anything but coordinates.
//
// [graph] - The layout wire format used by files, the API, the cache and
// the layout store.
//
// [render/sink] - Native SVG, PNG, PDF and JSON writers.
//
// [render/nodelink] - DOT export and Graphviz rendering.
//
// [render/styles] - Visual styles for the SVG writer.
//
// ## Infrastructure
//
// [pipeline] - build → layout → render with layout and artifact caching.
//
// [cache] - File, memory, Redis and null caches plus the cache keyer.
//
// [store] - Saved layouts in memory or MongoDB.
//
// [server] - The HTTP API.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Structured errors with codes mapped to exit and HTTP status.
//
// [tracking]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tracking
// [tree]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tree
// [layout]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout
// [layout.Config]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout#Config
// [graph]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph
// [render]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/nodelink
// [render/styles]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/styles
// [pipeline]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/cache
// [store]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/store
// [server]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/server
// [observability]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/observability
// [errors]: https://pkg.go.dev/github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors
package pkg
