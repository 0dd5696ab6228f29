package cache

import "time"

// pendingSet tracks keys with an in-flight worker. A key stays in the set
// from worker spawn until its result message is drained, so duplicate
// requests for the same key are no-ops.
type pendingSet[K comparable] map[K]struct{}

func newPendingSet[K comparable]() pendingSet[K] {
	return make(pendingSet[K])
}

func (p pendingSet[K]) has(key K) bool {
	_, ok := p[key]
	return ok
}

func (p pendingSet[K]) add(key K) {
	p[key] = struct{}{}
}

func (p pendingSet[K]) remove(key K) {
	delete(p, key)
}

// cooldownMap records the last failure time per key. While the cooldown
// has not elapsed, requests for the key are suppressed even when the key
// is neither cached nor pending.
type cooldownMap[K comparable] map[K]time.Time

func newCooldownMap[K comparable]() cooldownMap[K] {
	return make(cooldownMap[K])
}

func (c cooldownMap[K]) active(key K, now time.Time, cooldown time.Duration) bool {
	failedAt, ok := c[key]
	if !ok {
		return false
	}
	return now.Sub(failedAt) < cooldown
}

func (c cooldownMap[K]) record(key K, now time.Time) {
	c[key] = now
}

func (c cooldownMap[K]) clear(key K) {
	delete(c, key)
}
