package sink

import (
	"bytes"
	"fmt"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/render/styles"
)

const pathInteractionCSS = `
    .node { transition: stroke-width 0.2s ease; }
    .node.highlight { stroke-width: 6; }
    .edge.highlight { stroke-width: 5; }`

// Hovering a box highlights the chain of boxes and connectors up to the root.
const pathInteractionJS = `
    const parentOf = {};
    document.querySelectorAll('.edge').forEach(e => { parentOf[e.dataset.to] = e.dataset.from; });
    function chain(id) {
      const ids = [];
      while (id !== undefined && !ids.includes(id)) { ids.push(id); id = parentOf[id]; }
      return ids;
    }
    function highlight(id) {
      const ids = chain(id);
      document.querySelectorAll('.node').forEach(n => n.classList.toggle('highlight', ids.includes(n.id.replace('node-', ''))));
      document.querySelectorAll('.edge').forEach(e => e.classList.toggle('highlight', ids.includes(e.dataset.to)));
    }
    function clearHighlight() {
      document.querySelectorAll('.node, .edge').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.id.replace('node-', '')));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	title       string
	interactive bool
	tooltips    bool
}

// WithStyle selects the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTitle sets the document <title>.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithInteraction embeds CSS and script that highlight a box's path to the
// root on hover.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithTooltips wraps every box in a group whose <title> shows the full label.
func WithTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = true } }

// RenderSVG draws the layout as a standalone SVG document. Node positions
// are used as-is; the whole diagram is moved down by the layout padding so
// the root keeps the same margin as the left-most box.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	pad := l.Config.Padding
	boxes := buildBoxes(l, pad)
	connectors := buildConnectors(l, boxes)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}

	r.style.RenderDefs(&buf)
	for _, c := range connectors {
		r.style.RenderConnector(&buf, c)
	}
	for _, b := range boxes {
		draw := func() {
			r.style.RenderBox(&buf, b)
			r.style.RenderText(&buf, b)
		}
		if r.tooltips {
			styles.WithTitle(&buf, b.Label, draw)
		} else {
			draw()
		}
	}
	if r.interactive && len(boxes) > 0 {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", pathInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", pathInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBoxes(l graph.Layout, pad float64) []styles.Box {
	boxes := make([]styles.Box, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		assignee, _ := n.Data["assignee"].(string)
		y := n.Y + pad
		boxes = append(boxes, styles.Box{
			ID:       n.ID,
			Label:    n.DisplayLabel(),
			Status:   n.Status(),
			Assignee: assignee,
			X:        n.X, Y: y,
			W: n.Width, H: n.Height,
			CX: n.CenterX(), CY: y + n.Height/2,
		})
	}
	return boxes
}

func buildConnectors(l graph.Layout, boxes []styles.Box) []styles.Connector {
	byID := make(map[string]styles.Box, len(boxes))
	for _, b := range boxes {
		byID[b.ID] = b
	}

	connectors := make([]styles.Connector, 0, len(l.Edges))
	for _, e := range l.Edges {
		src, okS := byID[e.From]
		dst, okD := byID[e.To]
		if !okS || !okD {
			continue
		}
		top := src.Y + src.H
		connectors = append(connectors, styles.Connector{
			FromID: e.From, ToID: e.To,
			X1: src.CX, Y1: top,
			X2: dst.CX, Y2: dst.Y,
			MidY: top + (dst.Y-top)/2,
		})
	}
	return connectors
}
