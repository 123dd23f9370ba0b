package store

import "sync"

// MemoryStore is a generic in-memory keyed collection. The key of a value is
// obtained from the supplied keySelector function. The file engine uses it as
// its object registry.
type MemoryStore[K comparable, T any] struct {
	mu          sync.RWMutex
	records     map[K]T
	keySelector func(T) K
}

// NewMemoryStore creates a new MemoryStore.
// keySelector extracts the record key from a value.
func NewMemoryStore[K comparable, T any](keySelector func(T) K) *MemoryStore[K, T] {
	return &MemoryStore[K, T]{
		records:     make(map[K]T),
		keySelector: keySelector,
	}
}

// Put stores or overwrites a record.
func (s *MemoryStore[K, T]) Put(v T) {
	key := s.keySelector(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = v
}

// Get returns a record by key.
func (s *MemoryStore[K, T]) Get(key K) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	return v, ok
}

// Delete removes a record; it reports whether the key was present.
func (s *MemoryStore[K, T]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return false
	}
	delete(s.records, key)
	return true
}

// Len returns the number of records.
func (s *MemoryStore[K, T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Filter returns a copy of the records accepted by match (all when nil).
func (s *MemoryStore[K, T]) Filter(match func(T) bool) map[K]T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[K]T, len(s.records))
	for k, v := range s.records {
		if match != nil && !match(v) {
			continue
		}
		out[k] = v
	}
	return out
}

// Replace swaps the whole content for records.
func (s *MemoryStore[K, T]) Replace(records map[K]T) {
	if records == nil {
		records = make(map[K]T)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}
