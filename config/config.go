// Package config loads the application configuration from a YAML file
// with environment variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/alorle/iptv-deck/player"
)

// CacheSettings are the per-cache refresh tunables
type CacheSettings struct {
	TTL      time.Duration `yaml:"ttl" env:"TTL"`
	Cooldown time.Duration `yaml:"cooldown" env:"COOLDOWN"`
}

// Config holds the complete application configuration
type Config struct {
	// Xtream portal credentials
	Portal struct {
		ServerURL string `yaml:"server_url" env:"PORTAL_SERVER_URL"`
		Username  string `yaml:"username" env:"PORTAL_USERNAME"`
		Password  string `yaml:"password" env:"PORTAL_PASSWORD"`
	} `yaml:"portal"`

	// Trakt API access for the discover shelves
	Trakt struct {
		APIKey string `yaml:"api_key" env:"TRAKT_API_KEY"`
	} `yaml:"trakt"`

	// Per-cache refresh tunables
	Caches struct {
		Discover CacheSettings `yaml:"discover" envPrefix:"DISCOVER_CACHE_"`
		Shows    CacheSettings `yaml:"shows" envPrefix:"SHOWS_CACHE_"`
		Football CacheSettings `yaml:"football" envPrefix:"FOOTBALL_CACHE_"`
		Guide    CacheSettings `yaml:"guide" envPrefix:"GUIDE_CACHE_"`
		Posters  CacheSettings `yaml:"posters" envPrefix:"POSTERS_CACHE_"`
	} `yaml:"caches"`

	// On-disk snapshot settings
	Snapshot struct {
		Dir string        `yaml:"dir" env:"SNAPSHOT_DIR"`
		TTL time.Duration `yaml:"ttl" env:"SNAPSHOT_TTL"`
	} `yaml:"snapshot"`

	// Football fixtures database produced by the scraper
	Football struct {
		DatabasePath string `yaml:"database_path" env:"FOOTBALL_DB_PATH"`
	} `yaml:"football"`

	// Circuit breaker settings for the portal
	Breaker struct {
		FailureThreshold int           `yaml:"failure_threshold" env:"CB_FAILURE_THRESHOLD"`
		Timeout          time.Duration `yaml:"timeout" env:"CB_TIMEOUT"`
		HalfOpenRequests int           `yaml:"half_open_requests" env:"CB_HALF_OPEN_REQUESTS"`
	} `yaml:"breaker"`

	// External media player
	Player player.Settings `yaml:"player"`

	// Prometheus metrics endpoint
	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Address string `yaml:"address" env:"METRICS_ADDRESS"`
	} `yaml:"metrics"`

	// Logging
	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL"`
	} `yaml:"log"`

	// How often the poll loop drains the caches
	Tick time.Duration `yaml:"tick" env:"TICK_INTERVAL"`
}

// Default returns a Config with sensible default values. Portal
// credentials and the snapshot directory have no defaults.
func Default() *Config {
	cfg := &Config{}

	cfg.Caches.Discover = CacheSettings{TTL: 10 * time.Minute, Cooldown: 30 * time.Second}
	cfg.Caches.Shows = CacheSettings{TTL: 10 * time.Minute, Cooldown: 30 * time.Second}
	cfg.Caches.Football = CacheSettings{TTL: 5 * time.Minute, Cooldown: 30 * time.Second}
	cfg.Caches.Guide = CacheSettings{TTL: 5 * time.Minute, Cooldown: 30 * time.Second}
	cfg.Caches.Posters = CacheSettings{TTL: 30 * time.Minute, Cooldown: 30 * time.Second}

	cfg.Snapshot.TTL = 24 * time.Hour

	cfg.Breaker.FailureThreshold = 5
	cfg.Breaker.Timeout = 30 * time.Second
	cfg.Breaker.HalfOpenRequests = 1

	cfg.Player = player.DefaultSettings()

	cfg.Metrics.Address = "127.0.0.1:9090"

	cfg.Log.Level = "INFO"
	cfg.Tick = 500 * time.Millisecond

	return cfg
}

// Validate collects every configuration problem into a single error
func (c *Config) Validate() error {
	var errors []string

	if c.Portal.ServerURL == "" {
		errors = append(errors, "Portal server URL is required")
	}
	if c.Portal.Username == "" {
		errors = append(errors, "Portal username is required")
	}
	if c.Portal.Password == "" {
		errors = append(errors, "Portal password is required")
	}

	caches := map[string]CacheSettings{
		"discover": c.Caches.Discover,
		"shows":    c.Caches.Shows,
		"football": c.Caches.Football,
		"guide":    c.Caches.Guide,
		"posters":  c.Caches.Posters,
	}
	for name, settings := range caches {
		if settings.TTL <= 0 {
			errors = append(errors, fmt.Sprintf("Cache %s: TTL must be positive", name))
		}
		if settings.Cooldown <= 0 {
			errors = append(errors, fmt.Sprintf("Cache %s: cooldown must be positive", name))
		}
	}

	if c.Snapshot.Dir == "" {
		errors = append(errors, "Snapshot directory is required")
	}
	if c.Snapshot.TTL <= 0 {
		errors = append(errors, "Snapshot TTL must be positive")
	}

	if c.Breaker.FailureThreshold <= 0 {
		errors = append(errors, "Breaker failure threshold must be positive")
	}
	if c.Breaker.Timeout <= 0 {
		errors = append(errors, "Breaker timeout must be positive")
	}
	if c.Breaker.HalfOpenRequests <= 0 {
		errors = append(errors, "Breaker half-open requests must be positive")
	}

	if err := c.Player.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("Player: %v", err))
	}

	if c.Metrics.Enabled && c.Metrics.Address == "" {
		errors = append(errors, "Metrics address is required when metrics are enabled")
	}

	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errors = append(errors, fmt.Sprintf("Invalid log level %q (use DEBUG, INFO, WARN or ERROR)", c.Log.Level))
	}

	if c.Tick <= 0 {
		errors = append(errors, "Tick interval must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Load loads configuration from CONFIG_FILE (default config.yaml) when
// the file exists, applies environment overrides, and validates
func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg = Default()
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
