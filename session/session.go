// Package session wires the five content caches behind one struct and
// drives their refresh lifecycle. The session is the single consumer
// of every coordinator: all coordinator methods are called from the
// goroutine running the poll loop.
package session

import (
	"context"
	"time"

	"github.com/alorle/iptv-deck/cache"
	"github.com/alorle/iptv-deck/config"
	"github.com/alorle/iptv-deck/discover"
	"github.com/alorle/iptv-deck/epg"
	"github.com/alorle/iptv-deck/football"
	"github.com/alorle/iptv-deck/logging"
)

// Fetchers bundles the five fetch strategies the session caches over
type Fetchers struct {
	Discover cache.Fetcher[discover.Category, []discover.Item]
	Shows    cache.Fetcher[discover.ShowCategory, []discover.Item]
	Football cache.Fetcher[football.Category, []football.Fixture]
	Guide    cache.Fetcher[string, []epg.Program]
	Posters  cache.Fetcher[string, []byte]
}

// Session owns the content caches. Typed accessors expose each
// coordinator directly; the aggregate operations below fan out to all
// of them.
type Session struct {
	Discover *cache.Coordinator[discover.Category, []discover.Item]
	Shows    *cache.Coordinator[discover.ShowCategory, []discover.Item]
	Football *cache.Coordinator[football.Category, []football.Fixture]
	Guide    *cache.Coordinator[string, []epg.Program]
	Posters  *cache.Coordinator[string, []byte]

	logger *logging.Logger
	now    func() time.Time
}

// New builds a Session from the configured cache tunables and fetchers
func New(cfg *config.Config, fetchers Fetchers, logger *logging.Logger) *Session {
	build := func(name string, settings config.CacheSettings) cache.Config {
		return cache.Config{
			Name:     name,
			TTL:      settings.TTL,
			Cooldown: settings.Cooldown,
			Logger:   logger,
		}
	}

	return &Session{
		Discover: cache.New(build("discover", cfg.Caches.Discover), fetchers.Discover),
		Shows:    cache.New(build("shows", cfg.Caches.Shows), fetchers.Shows),
		Football: cache.New(build("football", cfg.Caches.Football), fetchers.Football),
		Guide:    cache.New(build("guide", cfg.Caches.Guide), fetchers.Guide),
		Posters:  cache.New(build("posters", cfg.Caches.Posters), fetchers.Posters),
		logger:   logger,
		now:      time.Now,
	}
}

// ProcessPending drains every cache's completed results. Called once
// per tick.
func (s *Session) ProcessPending() {
	s.Discover.ProcessPending()
	s.Shows.ProcessPending()
	s.Football.ProcessPending()
	s.Guide.ProcessPending()
	s.Posters.ProcessPending()
}

// Clear empties every cache, used on profile switch or logout
func (s *Session) Clear() {
	s.Discover.Clear()
	s.Shows.Clear()
	s.Football.Clear()
	s.Guide.Clear()
	s.Posters.Clear()
}

// RefreshGuide requests short-EPG data for the given streams. Fresh,
// pending and cooling-down streams are skipped by the coordinator.
func (s *Session) RefreshGuide(streamIDs []string) {
	for _, id := range streamIDs {
		s.Guide.Request(id)
	}
}

// CurrentProgram returns what is on air now for a stream, if the guide
// cache holds data for it
func (s *Session) CurrentProgram(streamID string) (epg.Program, bool) {
	programs, ok := s.Guide.Get(streamID)
	if !ok {
		return epg.Program{}, false
	}
	return epg.NewTimeline(programs).Current(s.now().Unix())
}

// NextProgram returns the upcoming program for a stream
func (s *Session) NextProgram(streamID string) (epg.Program, bool) {
	programs, ok := s.Guide.Get(streamID)
	if !ok {
		return epg.Program{}, false
	}
	return epg.NewTimeline(programs).Next(s.now().Unix())
}

// Run drives the poll loop until the context is cancelled. onTick runs
// before each drain so callers can issue Requests for the keys they
// currently care about.
func (s *Session) Run(ctx context.Context, interval time.Duration, onTick func(*Session)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if onTick != nil {
				onTick(s)
			}
			s.ProcessPending()
		}
	}
}
