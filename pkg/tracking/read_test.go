package tracking

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
)

func TestReadFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{
			name:   "json array",
			format: FormatJSON,
			input: `[
				{"key": 1, "parent": 1, "name": "Công văn 12", "status": "done"},
				{"key": "2", "parent": 1, "name": "Soạn thảo"}
			]`,
		},
		{
			name:   "json wrapped",
			format: FormatJSON,
			input:  `{"records": [{"key": 1, "parent": 1, "name": "Công văn 12", "status": "done"}, {"key": 2, "parent": "1", "name": "Soạn thảo"}]}`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			input: `
- key: 1
  parent: 1
  name: Công văn 12
  status: done
- key: "2"
  parent: 1
  name: Soạn thảo
`,
		},
		{
			name:   "toml",
			format: FormatTOML,
			input: `
[[records]]
key = 1
parent = 1
name = "Công văn 12"
status = "done"

[[records]]
key = "2"
parent = 1
name = "Soạn thảo"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("got %d records, want 2", len(records))
			}

			root := records[0]
			if root.Key != "1" || root.Parent != "1" || !root.IsRoot() {
				t.Errorf("root = %+v, want key=1 parent=1", root)
			}
			if root.Name() != "Công văn 12" {
				t.Errorf("root.Name() = %q", root.Name())
			}
			if root.Data[FieldStatus] != "done" {
				t.Errorf("root status = %v, want done", root.Data[FieldStatus])
			}
			if _, ok := root.Data[FieldKey]; ok {
				t.Error("key leaked into payload")
			}

			child := records[1]
			if child.Key != "2" || child.Parent != "1" || child.IsRoot() {
				t.Errorf("child = %+v, want key=2 parent=1", child)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"malformed json", FormatJSON, `[{"key": 1,`, errors.ErrCodeInvalidInput},
		{"missing key", FormatJSON, `[{"parent": 1}]`, errors.ErrCodeInvalidRecord},
		{"missing parent", FormatJSON, `[{"key": 1}]`, errors.ErrCodeInvalidRecord},
		{"object key", FormatJSON, `[{"key": {"id": 1}, "parent": 1}]`, errors.ErrCodeInvalidRecord},
		{"unknown format", Format("xml"), `<records/>`, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (err: %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"task.json", FormatJSON, false},
		{"task.YAML", FormatYAML, false},
		{"nested/task.yml", FormatYAML, false},
		{"task.toml", FormatTOML, false},
		{"task.csv", "", true},
		{"task", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "task.json")
	if err := os.WriteFile(path, []byte(`[{"key":"a","parent":"a"},{"key":"b","parent":"a"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Import(path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(records) != 2 || records[1].Parent != "a" {
		t.Errorf("records = %+v", records)
	}

	_, err = Import(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	in := []Record{
		{Key: "1", Parent: "1", Data: map[string]any{"name": "root"}},
		{Key: "2", Parent: "1", Data: map[string]any{"name": "child", "assignee": "lan.nguyen"}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(in, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var out []Record
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d records", len(out))
	}
	if out[1].Key != "2" || out[1].Parent != "1" || out[1].Data[FieldAssignee] != "lan.nguyen" {
		t.Errorf("out[1] = %+v", out[1])
	}
}
