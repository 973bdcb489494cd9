package flow

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// ID is an opaque node identity. It is stable for the lifetime of a node and
// is never used in layout arithmetic.
type ID string

// IDSource allocates node identities. Implementations must be safe for
// concurrent use.
type IDSource interface {
	Next() ID
}

// Sequence is an IDSource producing prefix1, prefix2, ... in order.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence returns a deterministic counter-based IDSource.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next id in the sequence.
func (s *Sequence) Next() ID {
	return ID(s.prefix + strconv.FormatUint(s.n.Add(1), 10))
}

// UUIDSource is an IDSource backed by random (version 4) UUIDs.
type UUIDSource struct{}

// NewUUIDSource returns an IDSource that draws random UUIDs.
func NewUUIDSource() UUIDSource { return UUIDSource{} }

// Next returns a fresh random UUID.
func (UUIDSource) Next() ID { return ID(uuid.NewString()) }

var (
	_ IDSource = (*Sequence)(nil)
	_ IDSource = UUIDSource{}
)
