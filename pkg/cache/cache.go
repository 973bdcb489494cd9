// Package cache stores solved snapshots and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [MongoCache]: shared cache with a TTL index
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect the
// cached value, so equal inputs map to equal keys regardless of which entry
// point produced them:
//
//	docHash := cache.Hash(canonicalDocument)
//	key := keyer.SnapshotKey(docHash, cache.SnapshotKeyOpts{Width: 800, Height: 600})
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLSnapshot = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear removes every entry from c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return ErrUnsupported
}
