// Package snapshot holds the currently published snapshot and persists
// it across restarts. Publication is an atomic pointer swap: readers see
// either the entirely-old or entirely-new snapshot, never a mix.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/gigwatch/event-listings-service/internal/domain"
)

// Store is the single shared reference to the published snapshot.
type Store struct {
	current atomic.Pointer[domain.Snapshot]
}

// NewStore creates a Store publishing an empty snapshot, so readers are
// served before the first cycle completes.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(domain.EmptySnapshot())
	return s
}

// Current returns the published snapshot. The returned value must be
// treated as immutable.
func (s *Store) Current() *domain.Snapshot {
	return s.current.Load()
}

// Publish atomically replaces the published snapshot.
func (s *Store) Publish(snap *domain.Snapshot) {
	s.current.Store(snap)
}

// Save writes a snapshot to path. Failures come back as a
// domain.PersistenceError; callers log them and publish anyway.
func Save(path string, snap *domain.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", " ")
	if err != nil {
		return &domain.PersistenceError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return &domain.PersistenceError{Path: path, Err: err}
	}
	return nil
}

// Load reads a previously persisted snapshot. A missing file is not an
// error; it returns (nil, nil) and the caller starts empty.
func Load(path string) (*domain.Snapshot, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
