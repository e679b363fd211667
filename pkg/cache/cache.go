// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the user cache directory (CLI)
//   - [RedisCache]: shared cache for multi-instance `tracktree serve` deployments
//   - [MemoryCache]: process-local cache for a single server and for tests
//   - [NullCache]: caching disabled (--no-cache)
//
// # Keys
//
// Keys are produced by a [Keyer] from content hashes, so identical records
// rendered with identical options always hit the same entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(recordsJSON), cache.LayoutKeyOpts{Config: cfg})
//
// Wrap the keyer with [NewScopedKeyer] to give each tenant its own namespace.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default entry lifetimes.
const (
	// TTLLayout covers computed layouts; records change as sub-tasks move on.
	TTLLayout = 24 * time.Hour
	// TTLArtifact covers rendered SVG/PNG/PDF/DOT bytes for a layout hash.
	TTLArtifact = 7 * 24 * time.Hour
)
