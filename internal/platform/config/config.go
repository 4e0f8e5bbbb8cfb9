// Package config reads process configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"time"
)

// Config captures everything the server needs to wire itself.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// PostgresDSN selects the PostgreSQL stores. Empty means in-memory
	// stores, which is the development and test default.
	PostgresDSN string
	// RedisURL enables the exchange-rate cache. Empty disables caching.
	RedisURL string
	// NBPBaseURL is the base address of the NBP exchange-rates API.
	NBPBaseURL string
	// RateCacheTTL bounds how long a fetched rate factor is reused. NBP
	// publishes table C once per business day.
	RateCacheTTL time.Duration
}

// FromEnv builds the config from environment variables, with defaults that
// let the service start with no environment at all.
func FromEnv() Config {
	cfg := Config{
		Addr:         getenv("KANTOR_ADDR", ":8080"),
		PostgresDSN:  os.Getenv("KANTOR_POSTGRES_DSN"),
		RedisURL:     os.Getenv("KANTOR_REDIS_URL"),
		NBPBaseURL:   getenv("KANTOR_NBP_URL", "https://api.nbp.pl"),
		RateCacheTTL: 15 * time.Minute,
	}

	if raw := os.Getenv("KANTOR_RATE_CACHE_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil && ttl > 0 {
			cfg.RateCacheTTL = ttl
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
