package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gigwatch/event-listings-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Feed fetching.
	FeedBaseURL     string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration

	// Static data and persisted state.
	GazetteerPath string
	SnapshotPath  string

	// Optional YAML file overriding the built-in region table.
	RegionsFile string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := durationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := durationOrDefault("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := durationOrDefault("REFRESH_INTERVAL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		FeedBaseURL:     envOrDefault("FEED_BASE_URL", "https://19hz.info/events_"),
		FetchTimeout:    fetchTimeout,
		RefreshInterval: refreshInterval,
		GazetteerPath:   envOrDefault("GAZETTEER_PATH", "cities.csv"),
		SnapshotPath:    envOrDefault("SNAPSHOT_PATH", "state.json"),
		RegionsFile:     os.Getenv("REGIONS_FILE"),
	}

	if cfg.FeedBaseURL == "" {
		return nil, errors.New("FEED_BASE_URL is required")
	}
	if cfg.GazetteerPath == "" {
		return nil, errors.New("GAZETTEER_PATH is required")
	}
	if cfg.SnapshotPath == "" {
		return nil, errors.New("SNAPSHOT_PATH is required")
	}

	return cfg, nil
}

// Regions returns the configured region table: the built-in set, or the
// contents of RegionsFile when one is given.
func (c *Config) Regions() ([]domain.Region, error) {
	if c.RegionsFile == "" {
		return domain.DefaultRegions(), nil
	}

	b, err := os.ReadFile(c.RegionsFile)
	if err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}

	var doc struct {
		Regions []domain.Region `yaml:"regions"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse regions file: %w", err)
	}
	if len(doc.Regions) == 0 {
		return nil, fmt.Errorf("regions file %s defines no regions", c.RegionsFile)
	}
	for i, r := range doc.Regions {
		if r.Key == "" || r.Name == "" || r.Timezone == "" {
			return nil, fmt.Errorf("regions file %s: entry %d needs key, name, and timezone", c.RegionsFile, i)
		}
	}
	return doc.Regions, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationOrDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}
