package catalog

import (
	"fmt"
	"sync/atomic"
)

// Store holds the current catalog and supports atomic reloads. Concurrent
// readers always observe either the previous fully-validated catalog or the
// new one, never a partially loaded state.
type Store struct {
	current atomic.Pointer[Catalog]
	load    func() (*Catalog, error)
}

// NewStore creates a Store backed by the given load function. The catalog
// is not loaded until the first call to Load or Reload.
func NewStore(load func() (*Catalog, error)) *Store {
	return &Store{load: load}
}

// Current returns the active catalog, or nil when nothing has been loaded.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Load returns the active catalog, loading it on first use.
func (s *Store) Load() (*Catalog, error) {
	if cat := s.current.Load(); cat != nil {
		return cat, nil
	}
	return s.Reload()
}

// Reload loads and validates a fresh catalog, then swaps it in. On failure
// the previous catalog stays active so a bad deploy never degrades readers.
func (s *Store) Reload() (*Catalog, error) {
	if s.load == nil {
		return nil, fmt.Errorf("no catalog loader configured")
	}
	cat, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(cat)
	return cat, nil
}
