package cache

import "time"

// Entry holds a cached value together with the time it was fetched.
// Entries are replaced wholesale on refresh, never partially updated.
type Entry[V any] struct {
	Value     V
	FetchedAt time.Time
}

// Fresh reports whether the entry is still within its TTL at the given time.
// Stale entries remain readable; freshness only gates re-fetching.
func (e Entry[V]) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}
