package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// Marshal serializes a Snapshot to pretty-printed JSON bytes.
func Marshal(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Snapshot.
// Validates that the snapshot has nodes and that every edge references them.
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Validate checks structural consistency.
func (s *Snapshot) Validate() error {
	if len(s.Nodes) == 0 {
		return fmt.Errorf("snapshot must contain nodes")
	}
	ids := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID == "" {
			return fmt.Errorf("snapshot node without id")
		}
		if ids[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range s.Edges {
		if !ids[e.From] || !ids[e.To] {
			return fmt.Errorf("edge %s->%s references unknown node", e.From, e.To)
		}
	}
	return nil
}

// Write encodes s as indented JSON to w.
func Write(s Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Read decodes a Snapshot from r. Read does not close r.
func Read(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return Unmarshal(data)
}

// WriteFile writes a Snapshot to a JSON file.
func WriteFile(s Snapshot, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Snapshot from a JSON file.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
