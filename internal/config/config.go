package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Version     string `envconfig:"VERSION" default:"dev"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"true"`

	PokeAPIBaseURL  string        `envconfig:"POKEAPI_BASE_URL" default:"https://pokeapi.co/api/v2"`
	PokeAPITimeout  time.Duration `envconfig:"POKEAPI_TIMEOUT" default:"10s"`
	PokeAPICacheTTL time.Duration `envconfig:"POKEAPI_CACHE_TTL" default:"1h"`
	RedisURL        string        `envconfig:"REDIS_URL" default:""`

	// AdminPassword and AdminPasswordHash gate trainer deletion. When both are
	// empty every deletion is rejected.
	AdminPassword     string `envconfig:"ADMIN_PASSWORD" default:""`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" default:""`

	TimeZone string `envconfig:"TIME_ZONE" default:"UTC"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", cfg.TimeZone, err)
	}
	return &cfg, nil
}

// Location returns the configured time zone. Load has already validated it,
// so a failure here falls back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
