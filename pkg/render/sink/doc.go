// Package sink writes positioned tracking layouts to output formats.
//
// [RenderSVG] draws the diagram natively: one rounded box per task,
// coloured by its status, with elbow connectors from the bottom center of a
// parent to the top center of each child. [RenderPNG] and [RenderPDF]
// rasterize that SVG through rsvg-convert. [RenderJSON] emits the layout
// wire format for web clients.
//
// All renderers take functional options:
//
//	svg := sink.RenderSVG(l,
//	    sink.WithStyle(styles.Plain{}),
//	    sink.WithTitle("Công văn 12"),
//	    sink.WithInteraction(),
//	)
package sink
