package flow

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestSequence(t *testing.T) {
	s := NewSequence("n")
	for _, want := range []ID{"n1", "n2", "n3"} {
		if got := s.Next(); got != want {
			t.Errorf("Next() = %q, want %q", got, want)
		}
	}
}

func TestSequenceConcurrent(t *testing.T) {
	s := NewSequence("")
	const workers, per = 8, 100

	var (
		mu   sync.Mutex
		seen = make(map[ID]bool)
		wg   sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < per; j++ {
				id := s.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*per {
		t.Errorf("unique ids = %d, want %d", len(seen), workers*per)
	}
}

func TestUUIDSource(t *testing.T) {
	src := NewUUIDSource()
	a, b := src.Next(), src.Next()
	if a == b {
		t.Errorf("UUIDSource produced duplicate id %q", a)
	}
	if _, err := uuid.Parse(string(a)); err != nil {
		t.Errorf("id %q is not a UUID: %v", a, err)
	}
}

func TestBuilderAssignsIDs(t *testing.T) {
	b := NewBuilder(NewSequence("id-"))
	leaf := b.Empty()
	row := b.Row()
	block := b.Block(leaf)

	got := []ID{leaf.ID(), row.ID(), block.ID()}
	want := []ID{"id-1", "id-2", "id-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("id[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuilderNilSource(t *testing.T) {
	if id := NewBuilder(nil).Empty().ID(); id != "n1" {
		t.Errorf("ID() = %q, want %q", id, "n1")
	}
}

func TestBlockNilChildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Block(nil) should panic")
		}
	}()
	NewBuilder(nil).Block(nil)
}
