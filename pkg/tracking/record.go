package tracking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
)

// Field names that carry tree structure; everything else is payload.
const (
	FieldKey    = "key"
	FieldParent = "parent"
)

// Well-known payload fields used by renderers for labels and colouring.
// They are optional; records without them render with their key.
const (
	FieldName     = "name"
	FieldStatus   = "status"
	FieldAssignee = "assignee"
)

// Record is one row of a task's sub-task tracking list.
//
// Parent equals Key for the root record. Data holds every other field of the
// source row untouched and is carried through layout and rendering as an
// opaque payload.
type Record struct {
	Key    string
	Parent string
	Data   map[string]any
}

// IsRoot reports whether the record marks the root of its tree.
func (r Record) IsRoot() bool { return r.Key == r.Parent }

// Name returns the display name stored in the payload, or the key.
func (r Record) Name() string {
	if s, ok := r.Data[FieldName].(string); ok && s != "" {
		return s
	}
	return r.Key
}

// MarshalJSON flattens the record back into a single JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Data)+2)
	maps.Copy(out, r.Data)
	out[FieldKey] = r.Key
	out[FieldParent] = r.Parent
	return json.Marshal(out)
}

// UnmarshalJSON accepts string or numeric key/parent values.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	rec, err := FromMap(m)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// FromMap converts a decoded row (JSON, YAML or TOML) into a Record.
// Missing parent is an error; the root must reference itself explicitly.
func FromMap(m map[string]any) (Record, error) {
	rawKey, ok := m[FieldKey]
	if !ok {
		return Record{}, errors.New(errors.ErrCodeInvalidRecord, "record is missing %q", FieldKey)
	}
	key, err := idString(rawKey)
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInvalidRecord, err, "record key")
	}

	rawParent, ok := m[FieldParent]
	if !ok {
		return Record{}, errors.New(errors.ErrCodeInvalidRecord, "record %q is missing %q", key, FieldParent)
	}
	parent, err := idString(rawParent)
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInvalidRecord, err, "record %q parent", key)
	}

	data := make(map[string]any, len(m))
	for k, v := range m {
		if k == FieldKey || k == FieldParent {
			continue
		}
		data[k] = v
	}
	return Record{Key: key, Parent: parent, Data: data}, nil
}

// idString normalizes identifiers: the platform emits numeric ids from the
// REST API but string ids from client-side stores.
func idString(v any) (string, error) {
	switch id := v.(type) {
	case string:
		return id, nil
	case json.Number:
		return id.String(), nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case uint64:
		return strconv.FormatUint(id, 10), nil
	default:
		return "", fmt.Errorf("unsupported identifier type %T", v)
	}
}
