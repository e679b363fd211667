package tracking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
)

// Format identifies a record file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the record format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported record file %q (want .json, .yaml, .yml or .toml)", filepath.Base(path))
}

// Read decodes a record list from r.
//
// JSON and YAML inputs are a top-level array of objects. JSON may also wrap
// the array as {"records": [...]}, which is what the platform's tracking
// endpoint returns. TOML inputs use an array of tables:
//
//	[[records]]
//	key = 1
//	parent = 1
//	name = "Soạn thảo công văn"
//
// Read does not close r.
func Read(r io.Reader, format Format) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var rows []map[string]any
	switch format {
	case FormatJSON:
		rows, err = decodeJSON(data)
	case FormatYAML:
		err = yaml.Unmarshal(data, &rows)
	case FormatTOML:
		var doc struct {
			Records []map[string]any `toml:"records"`
		}
		_, err = toml.Decode(string(data), &doc)
		rows = doc.Records
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported record format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s records", format)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec, err := FromMap(row)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeJSON(data []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Records []map[string]any `json:"records"`
		}
		if err := dec.Decode(&wrapped); err != nil {
			return nil, err
		}
		return wrapped.Records, nil
	}

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Import reads the record file at path, inferring the format from its extension.
func Import(path string) ([]Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// WriteJSON encodes records as an indented JSON array.
func WriteJSON(records []Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
