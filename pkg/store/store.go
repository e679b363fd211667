// Package store persists computed layouts so clients can fetch and render
// them again by ID.
//
// Two implementations are provided: [MemoryStore] for a single process and
// for tests, and [MongoStore] for deployments that keep diagrams across
// restarts. Both hand out IDs generated with github.com/google/uuid.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
)

// Document is one stored layout.
type Document struct {
	ID          string       `json:"id" bson:"_id"`
	Title       string       `json:"title,omitempty" bson:"title,omitempty"`
	RecordsHash string       `json:"recordsHash" bson:"records_hash"`
	CreatedAt   time.Time    `json:"createdAt" bson:"created_at"`
	Layout      graph.Layout `json:"layout" bson:"layout"`
}

// Summary is the listing view of a Document.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Nodes     int       `json:"nodes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store saves and retrieves layout documents.
//
// Get and Delete return an error with code LAYOUT_NOT_FOUND for unknown IDs.
type Store interface {
	Save(ctx context.Context, doc Document) (Document, error)
	Get(ctx context.Context, id string) (Document, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit int) ([]Summary, error)
	Close(ctx context.Context) error
}

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// prepare fills the ID and timestamp of a document about to be saved.
func prepare(doc Document, now time.Time) Document {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now.UTC()
	}
	return doc
}

// ValidateID rejects IDs that are not UUIDs before they reach a backend.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeLayoutNotFound, "layout %q not found", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %q not found", id)
}

func summarize(doc Document) Summary {
	return Summary{ID: doc.ID, Title: doc.Title, Nodes: len(doc.Layout.Nodes), CreatedAt: doc.CreatedAt}
}
