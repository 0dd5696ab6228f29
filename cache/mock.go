package cache

// MockFetcher is a mock implementation of the Fetcher interface for testing
type MockFetcher[K comparable, V any] struct {
	FetchFunc func(key K) (V, error)
}

// Fetch implements Fetcher.Fetch
func (m *MockFetcher[K, V]) Fetch(key K) (V, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(key)
	}
	var zero V
	return zero, nil
}
