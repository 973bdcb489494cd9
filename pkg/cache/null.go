package cache

import (
	"context"
	"time"
)

// NullCache backs the "none" backend and --no-cache. Every lookup misses
// and every write is dropped, so each solve runs from scratch. It does not
// implement [Clearer]; [Clear] reports [ErrUnsupported] for it.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get misses, or returns the context error once ctx is done.
func (*NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	return nil, false, nil
}

// Set drops data.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete is a no-op.
func (*NullCache) Delete(context.Context, string) error { return nil }

// Close is a no-op.
func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
