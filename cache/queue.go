package cache

import "sync"

// result carries a completed fetch from a worker to the coordinator.
// Exactly one result is produced per worker.
type result[K comparable, V any] struct {
	key   K
	value V
	err   error
	// gen is the coordinator generation the worker was spawned under.
	// Results from before a Clear carry an older generation and are dropped.
	gen uint64
}

// resultQueue is an unbounded many-producer single-consumer queue.
// It is the only concurrency boundary in the package: workers push from
// their own goroutines, the consumer drains from its own.
type resultQueue[K comparable, V any] struct {
	mu    sync.Mutex
	items []result[K, V]
}

func newResultQueue[K comparable, V any]() *resultQueue[K, V] {
	return &resultQueue[K, V]{}
}

// push appends a result; it never blocks the worker
func (q *resultQueue[K, V]) push(r result[K, V]) {
	q.mu.Lock()
	q.items = append(q.items, r)
	q.mu.Unlock()
}

// drain removes and returns everything currently queued. It does not wait
// for in-flight workers; a single call returns as soon as the queue is empty.
func (q *resultQueue[K, V]) drain() []result[K, V] {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

// len reports how many results are waiting to be drained
func (q *resultQueue[K, V]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
