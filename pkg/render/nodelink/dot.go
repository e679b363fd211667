package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/styles"
)

// pointsPerInch converts layout units (treated as points) to Graphviz sizes.
const pointsPerInch = 72.0

// Engine selects the Graphviz layout program.
type Engine string

const (
	// EngineNeato keeps the positions computed by the layout engine.
	EngineNeato Engine = "neato"
	// EngineDot lets Graphviz re-rank the tree itself.
	EngineDot Engine = "dot"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the record payload in node labels.
	// When false, only the display label is shown.
	Detailed bool
	// Free drops pinned positions so Graphviz lays the tree out itself.
	Free bool
}

// ToDOT converts a layout to Graphviz DOT source.
//
// By default every node carries a pinned pos attribute taken from the
// layout, so rendering with [EngineNeato] reproduces the computed diagram
// exactly. Graphviz's y axis points up, so y is negated.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Roboto\", fontsize=24, fixedsize=true];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#9aa0a6\", penwidth=2];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), !opts.Free)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed || len(n.Data) == 0 {
		return label
	}

	var parts []string
	for _, k := range slices.Sorted(maps.Keys(n.Data)) {
		if k == "name" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Data[k]))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n graph.Node, label string, pinned bool) []string {
	p := styles.StatusPalette(n.Status())
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", p.Fill),
		fmt.Sprintf("color=%q", p.Stroke),
		fmt.Sprintf("fontcolor=%q", p.Text),
		"width=" + inches(n.Width),
		"height=" + inches(n.Height),
	}
	if pinned {
		// pos is the node center in points.
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"",
			strconv.FormatFloat(n.CenterX(), 'f', 2, 64),
			strconv.FormatFloat(-(n.Y+n.Height/2), 'f', 2, 64)))
	}
	return attrs
}

func inches(v float64) string {
	return strconv.FormatFloat(v/pointsPerInch, 'f', 4, 64)
}

// Render lays out and renders DOT source in-process with Graphviz.
func Render(ctx context.Context, dot string, engine Engine, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	switch engine {
	case EngineNeato, "":
		gv.SetLayout(graphviz.NEATO)
	case EngineDot:
		gv.SetLayout(graphviz.DOT)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported graphviz engine %q", engine)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSVG renders DOT source to SVG with a normalized root element.
func RenderSVG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	svg, err := Render(ctx, dot, engine, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders DOT source directly to PNG, without librsvg.
func RenderPNG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	return Render(ctx, dot, engine, graphviz.PNG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a pixel
// sized one so the output embeds like the native SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
