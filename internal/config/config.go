// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server settings
type Config struct {
	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"8080"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	// DefaultGame is the game id used when room creation omits one
	DefaultGame string `env:"DEFAULT_GAME" envDefault:"guess"`

	// PurgeSchedule is a cron expression for the stale-room sweep
	PurgeSchedule string `env:"PURGE_SCHEDULE" envDefault:"0 * * * *"`
	// PurgeMaxAge is the age past which untouched rooms are purged
	PurgeMaxAge time.Duration `env:"PURGE_MAX_AGE" envDefault:"24h"`
}

// Load parses configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
