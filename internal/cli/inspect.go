package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tracking"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain, noCache bool

	cmd := &cobra.Command{
		Use:   "inspect <records|layout.json>",
		Short: "Browse the positioned tree in the terminal",
		Long: `Show every node of the laid-out tree with its depth and coordinates.

Without --plain an interactive list opens: j/k or the arrow keys move,
enter shows the record payload of the selected node and q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadLayout(cmd, args[0], noCache)
			if err != nil {
				return err
			}
			if l.IsEmpty() {
				printWarning("No root record found")
				printDropped(l.Dropped)
				return nil
			}
			if plain || !isTerminal() {
				fmt.Println(nodeTable(l, -1, 0, len(l.Nodes)).Render())
				printKeyValue("Root", l.Root)
				printKeyValue("Frame", fmt.Sprintf("%.0f × %.0f", l.Width, l.Height))
				printStats(len(l.Nodes), len(l.Dropped), false)
				return nil
			}
			_, err = tea.NewProgram(newNodeListModel(l), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a static table instead of the interactive view (default when stdout is not a terminal)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the layout cache")

	return cmd
}

// loadLayout reads a layout file or lays out a records file with the
// configured geometry.
func (c *CLI) loadLayout(cmd *cobra.Command, input string, noCache bool) (graph.Layout, error) {
	if strings.HasSuffix(input, ".layout.json") {
		return graph.ReadLayoutFile(input)
	}
	records, err := tracking.Import(input)
	if err != nil {
		return graph.Layout{}, err
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return graph.Layout{}, err
	}
	defer runner.Close()

	l, _, err := runner.ComputeLayout(cmd.Context(), records, c.Config.PipelineOptions())
	return l, err
}

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing a layout.
type NodeListModel struct {
	Layout  graph.Layout
	Cursor  int
	Offset  int
	Height  int
	Details bool
}

func newNodeListModel(l graph.Layout) NodeListModel {
	return NodeListModel{Layout: l, Height: 15}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layout.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Layout.Nodes)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "enter":
			m.Details = !m.Details
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tracking Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Layout.Nodes))
	b.WriteString(nodeTable(m.Layout, m.Cursor, m.Offset, end).Render())
	b.WriteString("\n")

	if m.Details && m.Cursor < len(m.Layout.Nodes) {
		b.WriteString("\n")
		b.WriteString(nodeDetails(m.Layout.Nodes[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  frame %.0f×%.0f",
		m.Cursor+1, len(m.Layout.Nodes), m.Layout.Width, m.Layout.Height)))
	return b.String()
}

// nodeTable renders nodes[from:to] with the tree indented by depth. A
// negative cursor disables highlighting.
func nodeTable(l graph.Layout, cursor, from, to int) *table.Table {
	rows := make([][]string, 0, to-from)
	for i := from; i < to; i++ {
		n := l.Nodes[i]
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		status := n.Status()
		if status == "" {
			status = "—"
		}
		rows = append(rows, []string{
			marker,
			strings.Repeat("  ", n.Depth) + n.DisplayLabel(),
			n.ID,
			fmt.Sprintf("%.0f", n.X),
			fmt.Sprintf("%.0f", n.Y),
			fmt.Sprintf("%d", len(l.Children(n.ID))),
			status,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Task", "Key", "X", "Y", "Children", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return listHeaderStyle
			case from+row == cursor:
				return listSelectedStyle
			case col >= 3:
				return listDimStyle
			default:
				return listNormalStyle
			}
		})
}

// nodeDetails lists the record payload of n in key order.
func nodeDetails(n graph.Node) string {
	if len(n.Data) == 0 {
		return listDimStyle.Render("  no payload") + "\n"
	}
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(n.Data)) {
		fmt.Fprintf(&b, "  %s %v\n", StyleDim.Render(k+":"), n.Data[k])
	}
	return b.String()
}

// isTerminal reports whether stdout is a character device.
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
