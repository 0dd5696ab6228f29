package cache

import "time"

// Store is a keyed in-memory map of cache entries.
// It is not safe for concurrent use; the coordinator only touches it
// from the consumer goroutine.
type Store[K comparable, V any] struct {
	entries map[K]Entry[V]
}

// NewStore creates an empty Store
func NewStore[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]Entry[V]),
	}
}

// Get returns the entry for a key regardless of freshness
func (s *Store[K, V]) Get(key K) (Entry[V], bool) {
	entry, ok := s.entries[key]
	return entry, ok
}

// Set inserts or overwrites the entry for a key
func (s *Store[K, V]) Set(key K, value V, fetchedAt time.Time) {
	s.entries[key] = Entry[V]{Value: value, FetchedAt: fetchedAt}
}

// Delete removes the entry for a key
func (s *Store[K, V]) Delete(key K) {
	delete(s.entries, key)
}

// Clear removes all entries
func (s *Store[K, V]) Clear() {
	s.entries = make(map[K]Entry[V])
}

// Keys returns the keys currently held, in map order
func (s *Store[K, V]) Keys() []K {
	keys := make([]K, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of entries
func (s *Store[K, V]) Len() int {
	return len(s.entries)
}
