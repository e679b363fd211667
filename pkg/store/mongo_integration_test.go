//go:build integration

package store

import (
	"context"
	"os"
	"testing"
)

// Run with: TRACKTREE_TEST_MONGO=mongodb://localhost:27017 go test -tags integration ./pkg/store
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("TRACKTREE_TEST_MONGO")
	if uri == "" {
		t.Skip("TRACKTREE_TEST_MONGO not set")
	}

	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "tracktree_test"})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close(ctx)

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	exercise(t, s)
}
