// Package render turns positioned tracking layouts into visual outputs.
//
// # Overview
//
// Rendering starts from a [graph.Layout] produced by the layout engine and
// never moves a node. It provides:
//
//   - Native SVG, PNG, PDF and JSON output (in [sink] subpackage)
//   - DOT export and Graphviz rendering (in [nodelink] subpackage)
//   - Visual styles shared by the SVG writers (in [styles] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(l)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [graph.Layout]: github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph#Layout
// [sink]: github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/sink
// [nodelink]: github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/nodelink
// [styles]: github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/styles
package render
