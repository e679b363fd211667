package styles

import "bytes"

// Style defines the visual appearance of a tracking diagram.
// Implementations control how boxes, connectors and labels are drawn.
type Style interface {
	// Name identifies the style on the command line and in API requests.
	Name() string
	// RenderDefs writes SVG <defs> content (markers, filters, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the SVG for a single task box.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderConnector writes the SVG for a parent-to-child connector.
	RenderConnector(buf *bytes.Buffer, c Connector)
	// RenderText writes the SVG for a box's label lines.
	RenderText(buf *bytes.Buffer, b Box)
}

// Box contains all data needed to render a single task.
type Box struct {
	ID         string  // Record key
	Label      string  // Display text
	Status     string  // Record status, "" when unknown
	Assignee   string  // Optional second line
	X, Y, W, H float64 // Top-left corner and size in frame coordinates
	CX, CY     float64 // Center coordinates (for text)
}

// Connector is an elbow line from the bottom center of a parent box to the
// top center of a child box, bending at MidY.
type Connector struct {
	FromID, ToID   string
	X1, Y1, X2, Y2 float64
	MidY           float64
}

// Style names.
const (
	NameSimple = "simple"
	NamePlain  = "plain"
)

// ByName returns the style registered under name, defaulting to [Simple]
// for an empty name.
func ByName(name string) (Style, bool) {
	switch name {
	case "", NameSimple:
		return Simple{}, true
	case NamePlain:
		return Plain{}, true
	}
	return nil, false
}

// Names lists the available styles.
func Names() []string { return []string{NameSimple, NamePlain} }
