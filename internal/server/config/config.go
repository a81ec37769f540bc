// Package config handles configuration for the authkeeper server,
// including defaults, JSON overlay, environment variables, and
// command-line flags (applied in that order).
package config

import "time"

// InMemoryDSN is the DatabaseDSN value that selects the in-process
// credential store instead of Postgres.
const InMemoryDSN = "inmemory"

// Config holds runtime settings for the authkeeper server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx), or "inmemory" for the in-process store.
//   - RedisURL: shared token-cache URL; empty disables the shared cache.
//   - SecretKey: HMAC secret for signing tokens (HS256). Do not use test defaults in prod.
//   - TokenValidity: lifetime of issued tokens.
//   - LocalCacheTTL / LocalCacheMaxSize: bounds for the process-local account cache.
//   - BcryptCost: bcrypt work factor for password hashing.
//   - LogLevel: silent, debug, info, warn, or error.
type Config struct {
	EndpointAddr      string
	DatabaseDSN       string
	RedisURL          string
	SecretKey         string
	TokenValidity     time.Duration
	LocalCacheTTL     time.Duration
	LocalCacheMaxSize int
	BcryptCost        int
	LogLevel          string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = InMemoryDSN
	c.RedisURL = ""
	c.SecretKey = "secretKey"
	c.TokenValidity = 14 * 24 * time.Hour
	c.LocalCacheTTL = 60 * time.Second
	c.LocalCacheMaxSize = 1000
	c.BcryptCost = 10
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
