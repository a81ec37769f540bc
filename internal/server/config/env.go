package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. The names
// follow the deployment conventions of the service:
//
//	SERVER_ADDR       HTTP bind address
//	DATABASE_DSN      PostgreSQL DSN, or "inmemory"
//	REDIS_URL         shared token-cache URL
//	JWT_HMAC_SECRET   token signing secret
//	TOKEN_VALIDITY    token lifetime, Go duration string (e.g. "336h")
//	LOCAL_CACHE_TTL   local account-cache TTL, seconds
//	BCRYPT_COST       bcrypt work factor
//	LOGGER_LEVEL      silent, debug, info, warn, error
//
// Malformed numeric or duration values are ignored and the previous value
// is kept.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("SERVER_ADDR"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("REDIS_URL"); ok {
		config.RedisURL = v
	}
	if v, ok := os.LookupEnv("JWT_HMAC_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidity = d
		}
	}
	if v, ok := os.LookupEnv("LOCAL_CACHE_TTL"); ok {
		if seconds, err := strconv.Atoi(v); err == nil {
			config.LocalCacheTTL = time.Duration(seconds) * time.Second
		}
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if cost, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = cost
		}
	}
	if v, ok := os.LookupEnv("LOGGER_LEVEL"); ok {
		config.LogLevel = v
	}
}
