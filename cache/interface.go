package cache

// Fetcher loads the value for a key from a backing source. Fetch runs
// inside a worker goroutine, so blocking I/O is allowed. Implementations
// must not touch coordinator state; their only outward effect is the
// returned value or error. A Fetcher may retry internally before
// reporting a single success or failure.
type Fetcher[K comparable, V any] interface {
	Fetch(key K) (V, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface
type FetcherFunc[K comparable, V any] func(key K) (V, error)

// Fetch implements Fetcher
func (f FetcherFunc[K, V]) Fetch(key K) (V, error) {
	return f(key)
}
