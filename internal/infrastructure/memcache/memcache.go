package memcache

import (
	"context"
	"sync"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
)

type entry struct {
	value    []byte
	storedAt time.Time
}

// Store is the in-process TTL cache. It is unbounded and has no automatic
// eviction: entries live until explicitly removed or the process restarts,
// and staleness is bounded purely by the max-age checks callers make at
// read time. One instance is shared by every repository.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Store inserts or replaces the entry for key. An update is a replacement:
// the timestamp is stamped fresh, never mutated in place.
func (s *Store) Store(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	s.mu.Lock()
	s.entries[key] = entry{value: v, storedAt: s.now()}
	s.mu.Unlock()
	return nil
}

// Retrieve returns the stored value without any staleness check. Callers
// own the returned slice.
func (s *Store) Retrieve(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	v := make([]byte, len(e.value))
	copy(v, e.value)
	return v, true, nil
}

// IsExpired reports true when no entry exists or the entry is older than
// maxAge.
func (s *Store) IsExpired(_ context.Context, key string, maxAge time.Duration) (bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return true, nil
	}
	return s.now().Sub(e.storedAt) > maxAge, nil
}

// Remove deletes the entry for key if present.
func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// ClearAll empties the store.
func (s *Store) ClearAll(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
	return nil
}

// Len reports the number of live entries; used by the health checker.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ ports.Cache = (*Store)(nil)
