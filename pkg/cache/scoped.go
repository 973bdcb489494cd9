package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The HTTP server uses it so that its entries never collide with CLI
// entries in a shared backend.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SnapshotKey generates a prefixed key for snapshot caching.
func (k *ScopedKeyer) SnapshotKey(documentHash string, opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(documentHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(snapshotHash, opts)
}
