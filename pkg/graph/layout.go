package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
)

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "unmarshal layout")
	}
	if err := Validate(l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks the structural integrity of a decoded layout: unique
// non-empty node IDs, a root among the nodes, and edges between known nodes.
func Validate(l Layout) error {
	if l.IsEmpty() {
		if len(l.Edges) > 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "layout has edges but no nodes")
		}
		return nil
	}
	if err := l.Config.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "layout config")
	}

	ids := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidLayout, "layout node without id")
		}
		if ids[n.ID] {
			return errors.New(errors.ErrCodeInvalidLayout, "duplicate layout node %q", n.ID)
		}
		ids[n.ID] = true
	}
	if !ids[l.Root] {
		return errors.New(errors.ErrCodeInvalidLayout, "layout root %q is not a node", l.Root)
	}
	for _, e := range l.Edges {
		if !ids[e.From] || !ids[e.To] {
			return errors.New(errors.ErrCodeInvalidLayout, "edge %s→%s references an unknown node", e.From, e.To)
		}
	}
	return nil
}

// WriteLayout writes a Layout as indented JSON to an io.Writer.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadLayout decodes and validates a JSON layout from an io.Reader.
func ReadLayout(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, fmt.Errorf("read: %w", err)
	}
	return UnmarshalLayout(data)
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
