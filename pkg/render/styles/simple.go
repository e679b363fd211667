package styles

import (
	"bytes"
	"fmt"
	"strings"
)

// Palette is a fill/stroke pair.
type Palette struct {
	Fill, Stroke, Text string
}

var (
	paletteDone    = Palette{Fill: "#e6f4ea", Stroke: "#34a853", Text: "#1e4620"}
	paletteDoing   = Palette{Fill: "#e8f0fe", Stroke: "#1a73e8", Text: "#0b3d91"}
	paletteOverdue = Palette{Fill: "#fce8e6", Stroke: "#d93025", Text: "#7a1b13"}
	paletteReturn  = Palette{Fill: "#fef7e0", Stroke: "#f29900", Text: "#6b4400"}
	paletteDefault = Palette{Fill: "#ffffff", Stroke: "#5f6368", Text: "#202124"}
)

// StatusPalette maps a record status to its colours. Both the English codes
// of the REST API and the Vietnamese labels of the UI are recognised.
func StatusPalette(status string) Palette {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "done", "completed", "complete", "hoàn thành", "đã hoàn thành":
		return paletteDone
	case "doing", "in_progress", "processing", "đang xử lý", "đang thực hiện":
		return paletteDoing
	case "overdue", "late", "quá hạn":
		return paletteOverdue
	case "returned", "rejected", "trả lại", "từ chối":
		return paletteReturn
	default:
		return paletteDefault
	}
}

// Simple draws rounded boxes coloured by status with elbow connectors.
type Simple struct{}

func (Simple) Name() string { return NameSimple }

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <filter id="shadow" x="-5%" y="-5%" width="110%" height="120%">
      <feDropShadow dx="0" dy="2" stdDeviation="3" flood-opacity="0.18"/>
    </filter>
  </defs>
`)
}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	p := StatusPalette(b.Status)
	fmt.Fprintf(buf, `  <rect id="node-%s" class="node" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="12" ry="12" fill="%s" stroke="%s" stroke-width="3" filter="url(#shadow)"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H, p.Fill, p.Stroke)
}

func (Simple) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf, `  <path class="edge" data-from="%s" data-to="%s" d="M %.2f %.2f V %.2f H %.2f V %.2f" fill="none" stroke="#9aa0a6" stroke-width="3"/>`+"\n",
		EscapeXML(c.FromID), EscapeXML(c.ToID), c.X1, c.Y1, c.MidY, c.X2, c.Y2)
}

func (Simple) RenderText(buf *bytes.Buffer, b Box) {
	renderLabel(buf, b, StatusPalette(b.Status).Text)
}

// Plain draws black outlines only, for printing.
type Plain struct{}

func (Plain) Name() string { return NamePlain }

func (Plain) RenderDefs(*bytes.Buffer) {}

func (Plain) RenderBox(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <rect id="node-%s" class="node" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#ffffff" stroke="#000000" stroke-width="2"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H)
}

func (Plain) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf, `  <path class="edge" data-from="%s" data-to="%s" d="M %.2f %.2f V %.2f H %.2f V %.2f" fill="none" stroke="#000000" stroke-width="2"/>`+"\n",
		EscapeXML(c.FromID), EscapeXML(c.ToID), c.X1, c.Y1, c.MidY, c.X2, c.Y2)
}

func (Plain) RenderText(buf *bytes.Buffer, b Box) {
	renderLabel(buf, b, "#000000")
}

// renderLabel writes the label centered in the box, with the assignee as a
// smaller second line when present.
func renderLabel(buf *bytes.Buffer, b Box, color string) {
	size := FontSize(b)
	label := TruncateLabel(b.Label, b.W, size)

	if b.Assignee == "" {
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="Roboto, Arial, sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
			b.CX, b.CY, size, color, EscapeXML(label))
		return
	}

	small := max(fontSizeMin, size*0.7)
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="Roboto, Arial, sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
		b.CX, b.CY-small*0.7, size, color, EscapeXML(label))
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="Roboto, Arial, sans-serif" font-size="%.1f" fill="%s" opacity="0.75">%s</text>`+"\n",
		b.CX, b.CY+size*0.8, small, color, EscapeXML(TruncateLabel(b.Assignee, b.W, small)))
}
