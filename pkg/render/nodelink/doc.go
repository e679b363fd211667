// Package nodelink exports tracking layouts to Graphviz.
//
// # Overview
//
// The native SVG writer in pkg/render/sink covers the diagram the platform
// shows. This package exists for users who want Graphviz output: DOT files
// they can edit and re-render, or PNGs produced without librsvg.
//
// # Usage
//
// Convert a layout to DOT, then render it in-process:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//	png, err := nodelink.RenderPNG(ctx, dot, nodelink.EngineNeato)
//
// # Pinned Positions
//
// [ToDOT] writes every node with pos="x,y!" so that the neato engine keeps
// the layout engine's coordinates. Set [Options].Free to omit positions and
// render with [EngineDot] to compare against Graphviz's own ranking.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
