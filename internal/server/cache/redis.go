package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// Redis is the shared token to account-id index. Every operation failure is
// absorbed here: a failed read is a miss, a failed write is skipped. An
// unreachable Redis therefore degrades authentication to per-request
// signature verification, never to an error.
type Redis struct {
	client *redis.Client
	logger logging.Logger
}

// NewRedis builds a client from a redis:// URL. No connection is made
// until Open.
func NewRedis(redisURL string, logger logging.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return &Redis{
		client: redis.NewClient(opts),
		logger: logger.With("module", "token_cache"),
	}, nil
}

// Open pings the server, retrying with exponential backoff so a
// slow-starting Redis does not fail the boot. The returned error is
// advisory: the cache stays usable and later operations keep degrading
// gracefully.
func (c *Redis) Open(ctx context.Context) error {
	b := retry.WithMaxRetries(5, retry.NewExponential(100*time.Millisecond))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := c.client.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (c *Redis) Close() error {
	return c.client.Close()
}

// SetToken records the token to userID binding with the given TTL. The TTL is the
// token's remaining lifetime at call time, so the entry never outlives
// the token's cryptographic validity. Writes with a non-positive TTL are
// dropped.
func (c *Redis) SetToken(ctx context.Context, token, userID string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, tokenKey(token), userID, ttl).Err(); err != nil {
		c.logger.Warn(ctx, "token cache write failed", "error", err)
	}
}

// GetToken looks up the account id for token. Both absence and failure
// come back as a miss.
func (c *Redis) GetToken(ctx context.Context, token string) (string, bool) {
	userID, err := c.client.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn(ctx, "token cache read failed", "error", err)
		}
		return "", false
	}
	return userID, true
}

func tokenKey(token string) string {
	return "token:" + token
}
