package store

import (
	"sync"
	"time"

	"github.com/i474232898/astrodash/internal/forecast"
)

// MemoryStore is a concurrency-safe in-memory holder of the current display
// sequence. Nothing outlives the process.
type MemoryStore struct {
	mu sync.RWMutex

	records   []forecast.DisplayRecord
	updatedAt time.Time

	now func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Replace swaps the stored sequence for a copy of records in one step, so
// readers see either the old sequence or the new one, never a mix.
func (s *MemoryStore) Replace(records []forecast.DisplayRecord) {
	next := make([]forecast.DisplayRecord, len(records))
	copy(next, records)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = next
	s.updatedAt = s.now().UTC()
}

// Records returns a copy of the stored sequence.
func (s *MemoryStore) Records() []forecast.DisplayRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]forecast.DisplayRecord, len(s.records))
	copy(out, s.records)
	return out
}

// UpdatedAt returns when the sequence was last replaced, or the zero time.
func (s *MemoryStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

var _ forecast.Store = (*MemoryStore)(nil)
