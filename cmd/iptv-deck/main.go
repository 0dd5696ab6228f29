package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alorle/iptv-deck/circuitbreaker"
	"github.com/alorle/iptv-deck/config"
	"github.com/alorle/iptv-deck/discover"
	"github.com/alorle/iptv-deck/diskcache"
	"github.com/alorle/iptv-deck/football"
	"github.com/alorle/iptv-deck/images"
	"github.com/alorle/iptv-deck/logging"
	"github.com/alorle/iptv-deck/session"
	"github.com/alorle/iptv-deck/xtream"
)

// snapshot keys for the channel list warm-up
const (
	channelsSnapshotKey   = "channels"
	categoriesSnapshotKey = "live_categories"
)

// guideWarmupStreams caps how many channels get short-EPG requests
// per tick
const guideWarmupStreams = 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	level := logging.ParseLogLevel(cfg.Log.Level)
	logger := logging.New(level, "main")

	storage, err := diskcache.NewFileStorage(cfg.Snapshot.Dir)
	if err != nil {
		logger.Error("Failed to initialize snapshot storage", map[string]interface{}{
			"dir":   cfg.Snapshot.Dir,
			"error": err.Error(),
		})
		os.Exit(1)
	}

	portal := xtream.NewClient(cfg.Portal.ServerURL, cfg.Portal.Username, cfg.Portal.Password)
	if ok, err := portal.Authenticate(); err != nil {
		logger.Warn("Portal authentication check failed", map[string]interface{}{
			"error": err.Error(),
		})
	} else if !ok {
		logger.Warn("Portal rejected the configured credentials", nil)
	}

	channels := loadChannels(portal, storage, cfg.Snapshot.TTL, logger)

	var fixtures *football.Store
	if cfg.Football.DatabasePath != "" {
		fixtures, err = football.Open(cfg.Football.DatabasePath)
		if err != nil {
			logger.Warn("Fixtures database unavailable", map[string]interface{}{
				"path":  cfg.Football.DatabasePath,
				"error": err.Error(),
			})
			fixtures = nil
		} else {
			defer func() {
				_ = fixtures.Close()
			}()
		}
	}

	fetchers := session.Fetchers{
		Discover: discover.NewTraktFetcher(
			discover.NewTraktClient(cfg.Trakt.APIKey, 15*time.Second),
			discover.DefaultTraktLimit,
		),
		Shows:    discover.NewTVMazeFetcher(discover.NewTVMazeClient(15 * time.Second)),
		Football: football.NewFetcher(fixtures),
		Guide: xtream.NewGuideFetcherWithBreaker(
			portal,
			logger.WithComponent("xtream"),
			circuitbreaker.Config{
				FailureThreshold: cfg.Breaker.FailureThreshold,
				Timeout:          cfg.Breaker.Timeout,
				HalfOpenRequests: cfg.Breaker.HalfOpenRequests,
			},
		),
		Posters: images.NewFetcher(),
	}

	sess := session.New(cfg, fetchers, logger.WithComponent("session"))

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("Serving metrics", map[string]interface{}{
				"address": cfg.Metrics.Address,
			})
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				logger.Error("Metrics server stopped", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}()
	}

	guideStreams := warmupStreamIDs(channels, guideWarmupStreams)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting poll loop", map[string]interface{}{
		"tick":          cfg.Tick.String(),
		"channels":      len(channels),
		"guide_streams": len(guideStreams),
	})

	sess.Run(ctx, cfg.Tick, func(s *session.Session) {
		for _, category := range discover.Categories() {
			s.Discover.Request(category)
		}
		for _, category := range discover.ShowCategories() {
			s.Shows.Request(category)
		}
		for _, category := range football.Categories() {
			s.Football.Request(category)
		}
		s.RefreshGuide(guideStreams)
	})

	logger.Info("Shutting down", nil)
}

// loadChannels serves the channel list from the snapshot when it is
// still valid, refreshing from the portal otherwise. A portal failure
// falls back to an expired snapshot rather than an empty deck.
func loadChannels(portal *xtream.Client, storage diskcache.Storage, ttl time.Duration, logger *logging.Logger) []xtream.Channel {
	if channels, ok := diskcache.Load[[]xtream.Channel](storage, channelsSnapshotKey, ttl); ok {
		logger.Info("Loaded channels from snapshot", map[string]interface{}{
			"count": len(channels),
		})
		return channels
	}

	channels, err := portal.GetLiveStreams()
	if err != nil {
		logger.Warn("Failed to load channels from portal", map[string]interface{}{
			"error": err.Error(),
		})
		channels, _ := diskcache.Load[[]xtream.Channel](storage, channelsSnapshotKey, 0)
		return channels
	}

	if err := diskcache.Save(storage, channelsSnapshotKey, channels); err != nil {
		logger.Warn("Failed to snapshot channels", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if categories, err := portal.GetLiveCategories(); err == nil {
		_ = diskcache.Save(storage, categoriesSnapshotKey, categories)
	}

	logger.Info("Loaded channels from portal", map[string]interface{}{
		"count": len(channels),
	})
	return channels
}

// warmupStreamIDs picks the streams whose short EPG is kept warm
func warmupStreamIDs(channels []xtream.Channel, limit int) []string {
	if len(channels) > limit {
		channels = channels[:limit]
	}
	ids := make([]string, 0, len(channels))
	for _, ch := range channels {
		if ch.StreamID != "" {
			ids = append(ids, ch.StreamID.String())
		}
	}
	return ids
}
