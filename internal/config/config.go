package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port      string `env:"PORT" envDefault:"4000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	// AdminToken guards mutating endpoints when set.
	AdminToken string `env:"ADMIN_TOKEN"`

	League      LeagueConfig
	Autoplay    AutoplayConfig
	Storage     StorageConfig
	Archive     ArchiveConfig
	Balldontlie BalldontlieConfig
	Metrics     MetricsConfig
	Live        LiveConfig
}

// Load reads configuration from environment variables with sensible defaults.
// Non-positive durations and counts fall back to their defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Port == "" {
		c.Port = defaultPort
	}
	c.League.normalize()
	c.Autoplay.normalize()
	c.Storage.normalize()
	c.Archive.normalize()
	if c.Live.MaxConnections <= 0 {
		c.Live.MaxConnections = defaultLiveMaxConnections
	}
}

// LiveConfig controls the WebSocket feed.
type LiveConfig struct {
	MaxConnections int `env:"LIVE_MAX_CONNECTIONS" envDefault:"500"`
}
