package xtream

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alorle/iptv-deck/circuitbreaker"
)

func newTestGuideFetcher(t *testing.T, handler http.HandlerFunc) *GuideFetcher {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	fetcher := NewGuideFetcher(NewClient(server.URL, "user", "pass"), nil)
	fetcher.pause = time.Millisecond
	return fetcher
}

func TestGuideFetcherRetriesOnce(t *testing.T) {
	var calls int32
	fetcher := newTestGuideFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"epg_listings": [
			{"id": "1", "epg_id": "ch1", "title": "TmV3cw==",
				"start_timestamp": "100", "stop_timestamp": "200"}
		]}`))
	})

	programs, err := fetcher.Fetch("101")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("Expected 2 attempts, got %d", calls)
	}
	if len(programs) != 1 || programs[0].Title != "News" {
		t.Errorf("Unexpected programs: %+v", programs)
	}
}

func TestGuideFetcherGivesUpAfterTwoAttempts(t *testing.T) {
	var calls int32
	fetcher := newTestGuideFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := fetcher.Fetch("101"); err == nil {
		t.Fatal("Expected error from dead portal")
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("Expected 2 attempts, got %d", calls)
	}
}

func TestGuideFetcherBreakerOpens(t *testing.T) {
	var calls int32
	fetcher := newTestGuideFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	// Default threshold is five consecutive failures
	for i := 0; i < 5; i++ {
		if _, err := fetcher.Fetch("101"); err == nil {
			t.Fatalf("Expected failure on fetch %d", i+1)
		}
	}
	if fetcher.breaker.State() != circuitbreaker.StateOpen {
		t.Fatalf("Expected breaker OPEN, got %s", fetcher.breaker.State())
	}

	before := atomic.LoadInt32(&calls)
	if _, err := fetcher.Fetch("101"); err != circuitbreaker.ErrCircuitOpen {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
	if atomic.LoadInt32(&calls) != before {
		t.Error("Expected no portal requests while the breaker is open")
	}
}
