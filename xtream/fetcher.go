package xtream

import (
	"strings"
	"time"

	"github.com/alorle/iptv-deck/circuitbreaker"
	"github.com/alorle/iptv-deck/epg"
	"github.com/alorle/iptv-deck/logging"
)

// retryPause is how long to wait before the second short-EPG attempt
const retryPause = 500 * time.Millisecond

// GuideFetcher loads short-EPG data for the guide cache. Each fetch
// makes up to two attempts with a short pause in between; the retry is
// invisible to the caller, which only sees one result. A circuit
// breaker keeps a dead portal from being hammered.
type GuideFetcher struct {
	client  *Client
	breaker circuitbreaker.CircuitBreaker
	logger  *logging.Logger
	pause   time.Duration
}

// NewGuideFetcher creates a GuideFetcher with default breaker settings
func NewGuideFetcher(client *Client, logger *logging.Logger) *GuideFetcher {
	return NewGuideFetcherWithBreaker(client, logger, circuitbreaker.Config{})
}

// NewGuideFetcherWithBreaker creates a GuideFetcher with explicit
// circuit breaker settings
func NewGuideFetcherWithBreaker(client *Client, logger *logging.Logger, cfg circuitbreaker.Config) *GuideFetcher {
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	if cfg.Source == "" {
		cfg.Source = "xtream"
	}
	return &GuideFetcher{
		client:  client,
		breaker: circuitbreaker.New(cfg),
		logger:  logger,
		pause:   retryPause,
	}
}

// Fetch implements cache.Fetcher for stream IDs
func (f *GuideFetcher) Fetch(streamID string) ([]epg.Program, error) {
	var programs []epg.Program
	err := f.breaker.Execute(func() error {
		var lastErr error
		for attempt := 0; attempt < 2; attempt++ {
			if attempt > 0 {
				time.Sleep(f.pause)
			}
			p, err := f.client.GetShortEPG(streamID, DefaultShortEPGLimit)
			if err == nil {
				programs = p
				return nil
			}
			lastErr = err
		}

		// Overloaded portals answer 503 routinely, not worth a log line
		if f.logger != nil && !strings.Contains(lastErr.Error(), "503") {
			f.logger.Warn("Failed to load short EPG", map[string]interface{}{
				"stream_id": streamID,
				"error":     lastErr.Error(),
			})
		}
		return lastErr
	})
	if err != nil {
		return nil, err
	}
	return programs, nil
}
