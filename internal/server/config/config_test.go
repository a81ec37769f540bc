package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"authkeeper"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, InMemoryDSN, cfg.DatabaseDSN)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 14*24*time.Hour, cfg.TokenValidity)
	assert.Equal(t, 60*time.Second, cfg.LocalCacheTTL)
	assert.Equal(t, 1000, cfg.LocalCacheMaxSize)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("DATABASE_DSN", "postgres://localhost/auth")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_HMAC_SECRET", "env-secret")
	t.Setenv("TOKEN_VALIDITY", "24h")
	t.Setenv("LOCAL_CACHE_TTL", "15")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOGGER_LEVEL", "debug")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "postgres://localhost/auth", cfg.DatabaseDSN)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.TokenValidity)
	assert.Equal(t, 15*time.Second, cfg.LocalCacheTTL)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseEnv_MalformedValuesKeepPrevious(t *testing.T) {
	t.Setenv("TOKEN_VALIDITY", "fortnight")
	t.Setenv("LOCAL_CACHE_TTL", "soon")
	t.Setenv("BCRYPT_COST", "high")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 14*24*time.Hour, cfg.TokenValidity)
	assert.Equal(t, 60*time.Second, cfg.LocalCacheTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestParseFlags(t *testing.T) {
	withArgs(t, "-a", ":7070", "-d", "postgres://db/auth", "-s", "flag-secret", "-t", "48", "-l", "30")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "postgres://db/auth", cfg.DatabaseDSN)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 48*time.Hour, cfg.TokenValidity)
	assert.Equal(t, 30*time.Second, cfg.LocalCacheTTL)
}

func TestParseJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	body := `{
		"endpoint_addr": ":6060",
		"redis_url": "redis://cache:6379/1",
		"token_validity": "72h",
		"local_cache_ttl": "90s",
		"bcrypt_cost": 12
	}`
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))

	withArgs(t, "-c", file)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddr)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 72*time.Hour, cfg.TokenValidity)
	assert.Equal(t, 90*time.Second, cfg.LocalCacheTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	// untouched fields keep defaults
	assert.Equal(t, InMemoryDSN, cfg.DatabaseDSN)
}

func TestLoadConfig_Precedence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"endpoint_addr": ":1111", "secret_key": "json-secret"}`), 0o600))

	t.Setenv("SERVER_ADDR", ":2222")
	withArgs(t, "-c", file, "-a", ":3333")

	cfg := LoadConfig()

	// flags beat env, env beats json
	assert.Equal(t, ":3333", cfg.EndpointAddr)
	assert.Equal(t, "json-secret", cfg.SecretKey)
}
