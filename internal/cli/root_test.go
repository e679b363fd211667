package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
)

const sampleRecords = `[
  {"key": 1, "parent": 1, "name": "Công văn 12", "status": "doing"},
  {"key": 2, "parent": 1, "name": "Soạn thảo"},
  {"key": 3, "parent": 1},
  {"key": 4, "parent": 9}
]`

// run executes the root command in an isolated environment and returns
// what the command wrote to its output stream.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeRecords(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(sampleRecords), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"layout", "render", "inspect", "serve", "cache", "config", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil || root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("missing persistent flags")
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeRecords(t)
	out := filepath.Join(t.TempDir(), "tasks.layout.json")

	if _, err := run(t, "layout", input, "-o", out, "--no-cache", "--node-width", "400"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if len(l.Nodes) != 3 || l.Root != "1" {
		t.Errorf("layout = %d nodes, root %q", len(l.Nodes), l.Root)
	}
	if l.Config.NodeWidth != 400 || l.Config.NodeHeight != 120 {
		t.Errorf("config = %+v, want node width flag applied over defaults", l.Config)
	}
	if len(l.Dropped) != 1 || l.Dropped[0] != "4" {
		t.Errorf("Dropped = %v, want [4]", l.Dropped)
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeRecords(t)
	dir := t.TempDir()

	base := filepath.Join(dir, "fromrecords")
	if _, err := run(t, "render", input, "-f", "svg,dot", "-o", base, "--no-cache", "--title", "Sub-tasks"); err != nil {
		t.Fatalf("render records: %v", err)
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Sub-tasks") {
		t.Errorf("svg output missing root element or title")
	}
	if _, err := os.Stat(base + ".dot"); err != nil {
		t.Errorf("dot output: %v", err)
	}

	layoutPath := filepath.Join(dir, "saved.layout.json")
	if _, err := run(t, "layout", input, "-o", layoutPath, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	base = filepath.Join(dir, "fromlayout")
	if _, err := run(t, "render", layoutPath, "-f", "json", "-o", base, "--no-cache"); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	l, err := graph.ReadLayoutFile(base + ".layout.json")
	if err != nil {
		t.Fatalf("read rendered json: %v", err)
	}
	if len(l.Nodes) != 3 {
		t.Errorf("rendered json has %d nodes", len(l.Nodes))
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeRecords(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format", []string{"render", input, "-f", "gif", "--no-cache"}, errors.ErrCodeInvalidFormat},
		{"unknown style", []string{"render", input, "--style", "neon", "--no-cache"}, errors.ErrCodeInvalidConfig},
		{"bad geometry", []string{"render", input, "--node-width=-1", "--no-cache"}, errors.ErrCodeInvalidConfig},
		{"missing input", []string{"layout", filepath.Join(t.TempDir(), "nope.json")}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestConfigAndCacheCommands(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "c")
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := "[cache]\ndir = \"" + filepath.ToSlash(cacheDir) + "\"\n\n[server]\nlisten = \":9090\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, `listen = ":9090"`) || !strings.Contains(out, "[layout]") {
		t.Errorf("config show output:\n%s", out)
	}

	out, err = run(t, "--config", cfgPath, "config", "path")
	if err != nil || strings.TrimSpace(out) != cfgPath {
		t.Errorf("config path = %q, %v", out, err)
	}

	out, err = run(t, "--config", cfgPath, "cache", "path")
	if err != nil || strings.TrimSpace(out) != cacheDir {
		t.Errorf("cache path = %q, %v", out, err)
	}

	input := writeRecords(t)
	if _, err := run(t, "--config", cfgPath, "layout", input, "-o", filepath.Join(t.TempDir(), "x.layout.json")); err != nil {
		t.Fatalf("cached layout: %v", err)
	}
	entries, _ := os.ReadDir(cacheDir)
	if len(entries) == 0 {
		t.Fatal("layout did not populate the file cache")
	}
	if _, err := run(t, "--config", cfgPath, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ = os.ReadDir(cacheDir)
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the binary name")
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell accepted")
	}
}

func TestNodeListModel(t *testing.T) {
	dir := t.TempDir()
	input := writeRecords(t)
	layoutPath := filepath.Join(dir, "t.layout.json")
	if _, err := run(t, "layout", input, "-o", layoutPath, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	l, err := graph.ReadLayoutFile(layoutPath)
	if err != nil {
		t.Fatal(err)
	}

	var m tea.Model = newNodeListModel(l)
	key := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	if got := m.(NodeListModel).Cursor; got != 2 {
		t.Errorf("cursor after 3×down = %d, want 2 (clamped)", got)
	}
	m, _ = m.Update(key("k"))
	if got := m.(NodeListModel).Cursor; got != 1 {
		t.Errorf("cursor after up = %d, want 1", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	for _, want := range []string{"Công văn 12", "  Soạn thảo", "name:", "[2/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = m.Update(tea.WindowSizeMsg{Height: 3})
	if got := m.(NodeListModel).Height; got != 5 {
		t.Errorf("height = %d, want minimum 5", got)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestRenderFlagUsage(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	cmd, _, err := root.Find([]string{"render"})
	if err != nil {
		t.Fatal(err)
	}
	f := cmd.Flags().Lookup("tooltips")
	if f == nil {
		t.Fatal("missing --tooltips")
	}
	if !strings.Contains(f.Usage, "full-label") || strings.Contains(f.Usage, "payload") {
		t.Errorf("--tooltips usage = %q", f.Usage)
	}
}
