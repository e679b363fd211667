// Package graph provides the serialization format for positioned tracking
// diagrams.
//
// This package defines the canonical wire format for tracktree layouts,
// used for *.layout.json files, API responses, the layout store and the
// render cache.
//
// # Architecture
//
// The package sits at the serialization boundary between the in-memory tree
// and external formats:
//
//   - pkg/tree.Node: mutable tree the layout engine works on
//   - [Layout]: flat, immutable result (this package)
//
// Use [FromTree] after layout.Calculate to flatten a tree.
//
// # Layout Serialization
//
//	{
//	  "root": "1",
//	  "width": 1290,
//	  "height": 520,
//	  "config": {"nodeWidth": 600, "nodeHeight": 120, ...},
//	  "nodes": [
//	    {"id": "1", "label": "Công văn 12", "x": 435, "y": 0, "width": 600, "height": 120, "depth": 0},
//	    {"id": "2", "x": 50, "y": 300, "width": 600, "height": 120, "depth": 1}
//	  ],
//	  "edges": [{"sourceId": "1", "targetId": "2"}]
//	}
//
// Nodes are in pre-order and edges in parent-to-child order. Node "data"
// carries the record payload untouched.
//
// Use [MarshalLayout]/[UnmarshalLayout] for bytes, [WriteLayout]/[ReadLayout]
// for streams and [WriteLayoutFile]/[ReadLayoutFile] for files. Decoding
// validates the structure with [Validate].
//
// # MongoDB
//
// All types carry bson tags so a [Layout] can be stored as a document
// without a separate persistence model.
package graph
