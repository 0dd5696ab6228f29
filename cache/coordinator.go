package cache

import (
	"time"

	"github.com/google/uuid"

	"github.com/alorle/iptv-deck/logging"
	"github.com/alorle/iptv-deck/metrics"
)

// Default tunables applied when a Config leaves them unset
const (
	DefaultTTL      = 10 * time.Minute
	DefaultCooldown = 30 * time.Second
)

// Config contains the tunables for one coordinator instance.
// TTL and Cooldown are deliberately per-instance configuration; the
// five caches in the application disagree on their values.
type Config struct {
	// Name identifies the cache in logs and metrics
	Name string
	// TTL is how long a cached value is considered fresh
	TTL time.Duration
	// Cooldown is the minimum wait after a failed fetch before the
	// same key may be retried
	Cooldown time.Duration
	// Logger for fetch lifecycle events (optional)
	Logger *logging.Logger
}

// Coordinator serves cached values instantly, coalesces duplicate fetches
// per key, cools down failed keys and hands results back to the consumer
// without blocking it.
//
// All methods must be called from a single consumer goroutine (the render
// loop). Workers spawned by Request communicate back exclusively through
// the internal result queue, which ProcessPending drains each frame.
type Coordinator[K comparable, V any] struct {
	cfg     Config
	fetcher Fetcher[K, V]

	store     *Store[K, V]
	pending   pendingSet[K]
	cooldowns cooldownMap[K]
	queue     *resultQueue[K, V]

	lastErr string
	hasErr  bool
	gen     uint64
	now     func() time.Time
	logger  *logging.Logger
}

// New creates a Coordinator for the given fetcher. Zero TTL or Cooldown
// fall back to package defaults.
func New[K comparable, V any](cfg Config, fetcher Fetcher[K, V]) *Coordinator[K, V] {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.Name == "" {
		cfg.Name = "cache"
	}

	return &Coordinator[K, V]{
		cfg:       cfg,
		fetcher:   fetcher,
		store:     NewStore[K, V](),
		pending:   newPendingSet[K](),
		cooldowns: newCooldownMap[K](),
		queue:     newResultQueue[K, V](),
		now:       time.Now,
		logger:    cfg.Logger,
	}
}

// Request registers an idempotent intent to have a fresh value for key.
// It returns immediately: when the cached value is fresh, the key is in
// cooldown or a fetch is already in flight, nothing happens. Otherwise a
// worker goroutine is spawned to call the fetcher exactly once.
func (c *Coordinator[K, V]) Request(key K) {
	now := c.now()

	if entry, ok := c.store.Get(key); ok && entry.Fresh(now, c.cfg.TTL) {
		metrics.RecordCoalesced(c.cfg.Name, "fresh")
		return
	}
	if c.cooldowns.active(key, now, c.cfg.Cooldown) {
		metrics.RecordCoalesced(c.cfg.Name, "cooldown")
		return
	}
	if c.pending.has(key) {
		metrics.RecordCoalesced(c.cfg.Name, "pending")
		return
	}

	c.pending.add(key)
	metrics.RecordFetchStart(c.cfg.Name)

	gen := c.gen
	fetchID := uuid.NewString()
	if c.logger != nil {
		c.logger.Debug("Spawning background fetch", map[string]interface{}{
			"cache":    c.cfg.Name,
			"key":      key,
			"fetch_id": fetchID,
		})
	}

	// Fire and forget: the worker is never joined or cancelled. Its only
	// side effect is a single push onto the result queue.
	go func() {
		value, err := c.fetcher.Fetch(key)
		c.queue.push(result[K, V]{key: key, value: value, err: err, gen: gen})
	}()
}

// IsLoading reports whether a fetch for key is in flight
func (c *Coordinator[K, V]) IsLoading(key K) bool {
	return c.pending.has(key)
}

// Get returns the cached value for key regardless of freshness.
// A stale value is always better than nothing for a render frame;
// freshness only gates re-fetching, not readability.
func (c *Coordinator[K, V]) Get(key K) (V, bool) {
	entry, ok := c.store.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return entry.Value, true
}

// Keys returns the keys currently cached
func (c *Coordinator[K, V]) Keys() []K {
	return c.store.Keys()
}

// Len returns the number of cached entries
func (c *Coordinator[K, V]) Len() int {
	return c.store.Len()
}

// ProcessPending drains all currently queued results without blocking.
// Call it once per frame. Loaded results overwrite the store and clear
// any cooldown and error state for their key; failed results enter the
// key into cooldown and record the error. A failed fetch never evicts
// stale data.
func (c *Coordinator[K, V]) ProcessPending() {
	for _, r := range c.queue.drain() {
		metrics.RecordFetchSettled(c.cfg.Name)

		if r.gen != c.gen {
			// Worker was spawned before a Clear; its result belongs to
			// data the caller already discarded.
			metrics.RecordStaleResult(c.cfg.Name)
			if c.logger != nil {
				c.logger.Debug("Dropping result from cleared generation", map[string]interface{}{
					"cache": c.cfg.Name,
					"key":   r.key,
				})
			}
			continue
		}

		c.pending.remove(r.key)

		if r.err != nil {
			c.cooldowns.record(r.key, c.now())
			c.lastErr = r.err.Error()
			c.hasErr = true
			metrics.RecordFetchError(c.cfg.Name)
			if c.logger != nil {
				c.logger.Warn("Background fetch failed", map[string]interface{}{
					"cache": c.cfg.Name,
					"key":   r.key,
					"error": r.err.Error(),
				})
			}
			continue
		}

		c.store.Set(r.key, r.value, c.now())
		c.cooldowns.clear(r.key)
		c.lastErr = ""
		c.hasErr = false
	}

	metrics.SetEntriesCached(c.cfg.Name, c.store.Len())
}

// Clear empties the store, pending set, cooldowns and last error, and
// bumps the generation so results from workers already in flight are
// dropped on drain instead of repopulating the cache.
func (c *Coordinator[K, V]) Clear() {
	c.store.Clear()
	c.pending = newPendingSet[K]()
	c.cooldowns = newCooldownMap[K]()
	c.lastErr = ""
	c.hasErr = false
	c.gen++
	metrics.SetEntriesCached(c.cfg.Name, 0)
}

// Invalidate forgets the cached value, cooldown and error state for a
// single key so the next Request re-fetches it. An in-flight fetch for
// the key is left alone.
func (c *Coordinator[K, V]) Invalidate(key K) {
	c.store.Delete(key)
	c.cooldowns.clear(key)
	c.lastErr = ""
	c.hasErr = false
}

// LastError returns the most recent fetch error, if any. It is cleared
// by the next successful fetch, Clear or Invalidate.
func (c *Coordinator[K, V]) LastError() (string, bool) {
	return c.lastErr, c.hasErr
}
