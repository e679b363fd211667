package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"
)

const (
	fontHeightRatio = 0.3
	fontWidthRatio  = 0.9
	fontCharWidth   = 0.55
	fontSizeMin     = 12.0
	fontSizeMax     = 32.0
)

// FontSize picks a label size that fits the box height and, up to the
// minimum size, the label length.
func FontSize(b Box) float64 {
	n := max(1, utf8.RuneCountInString(b.Label))
	byHeight := b.H * fontHeightRatio
	byWidth := (b.W * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLabel shortens s to what fits in width at fontSize, counting
// runes so Vietnamese diacritics are never split.
func TruncateLabel(s string, width, fontSize float64) string {
	maxChars := max(3, int(width*fontWidthRatio/(fontSize*fontCharWidth)))
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxChars-1]) + "…"
}

// EscapeXML escapes text for use in SVG content and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// WithTitle wraps fn in a group carrying a <title>, which browsers show as
// a tooltip.
func WithTitle(buf *bytes.Buffer, title string, fn func()) {
	if title == "" {
		fn()
		return
	}
	fmt.Fprintf(buf, "  <g><title>%s</title>\n", EscapeXML(title))
	fn()
	buf.WriteString("  </g>\n")
}
