package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchesStarted tracks background fetches spawned per cache
	FetchesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_cache_fetches_total",
		Help: "Total number of background fetches spawned",
	}, []string{"cache"})

	// FetchErrors tracks failed fetches per cache
	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_cache_fetch_errors_total",
		Help: "Total number of failed background fetches",
	}, []string{"cache"})

	// FetchesInFlight tracks workers between spawn and result drain
	FetchesInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "iptv_cache_inflight_fetches",
		Help: "Number of background fetches currently in flight",
	}, []string{"cache"})

	// RequestsCoalesced tracks requests that were satisfied without a fetch,
	// by reason: fresh, pending or cooldown
	RequestsCoalesced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_cache_coalesced_requests_total",
		Help: "Total number of requests absorbed without spawning a fetch",
	}, []string{"cache", "reason"})

	// StaleResultsDropped tracks results discarded because a Clear raced the worker
	StaleResultsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_cache_stale_results_total",
		Help: "Total number of worker results dropped after a cache clear",
	}, []string{"cache"})

	// EntriesCached tracks the number of entries held per cache
	EntriesCached = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "iptv_cache_entries",
		Help: "Number of entries currently cached",
	}, []string{"cache"})

	// BreakerState tracks the circuit breaker state per upstream source
	// 0=closed, 1=open, 2=half-open
	BreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "iptv_upstream_breaker_state",
		Help: "Current state of upstream circuit breaker (0=closed, 1=open, 2=half-open)",
	}, []string{"source"})

	// BreakerTrips tracks how many times a breaker transitioned to OPEN
	BreakerTrips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_upstream_breaker_trips_total",
		Help: "Total number of times an upstream circuit breaker opened",
	}, []string{"source"})
)

// RecordFetchStart increments the fetch counter and in-flight gauge
func RecordFetchStart(cache string) {
	FetchesStarted.WithLabelValues(cache).Inc()
	FetchesInFlight.WithLabelValues(cache).Inc()
}

// RecordFetchSettled decrements the in-flight gauge once a result is drained
func RecordFetchSettled(cache string) {
	FetchesInFlight.WithLabelValues(cache).Dec()
}

// RecordFetchError increments the error counter for a cache
func RecordFetchError(cache string) {
	FetchErrors.WithLabelValues(cache).Inc()
}

// RecordCoalesced increments the coalesced-request counter
func RecordCoalesced(cache, reason string) {
	RequestsCoalesced.WithLabelValues(cache, reason).Inc()
}

// RecordStaleResult increments the dropped-result counter
func RecordStaleResult(cache string) {
	StaleResultsDropped.WithLabelValues(cache).Inc()
}

// SetEntriesCached sets the number of entries held by a cache
func SetEntriesCached(cache string, count int) {
	EntriesCached.WithLabelValues(cache).Set(float64(count))
}

// SetBreakerState updates the circuit breaker state metric
// state should be one of: "CLOSED" (0), "OPEN" (1), "HALF-OPEN" (2)
func SetBreakerState(source, state string) {
	var value float64
	switch state {
	case "CLOSED":
		value = 0
	case "OPEN":
		value = 1
	case "HALF-OPEN":
		value = 2
	}
	BreakerState.WithLabelValues(source).Set(value)
}

// RecordBreakerTrip increments the breaker trip counter
func RecordBreakerTrip(source string) {
	BreakerTrips.WithLabelValues(source).Inc()
}
