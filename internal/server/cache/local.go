// Package cache contains the two lookup accelerators of the server: a
// process-local TTL cache for account records and a Redis-backed shared
// index from issued token to account id. Both are pure performance
// artifacts; correctness must hold with either of them empty or gone.
package cache

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Local is a process-local, TTL-bounded cache of account snapshots keyed
// by email or account id. Entries are populated only from confirmed store
// reads; returning stale-but-unexpired data is an accepted trade-off for
// authentication lookups.
type Local struct {
	mu      sync.RWMutex
	entries map[string]localEntry
	ttl     time.Duration
	maxSize int
}

type localEntry struct {
	user     *models.User
	cachedAt time.Time
}

// NewLocal returns a cache with the given TTL and size bound.
// Non-positive values fall back to 60s and 1000 entries.
func NewLocal(ttl time.Duration, maxSize int) *Local {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &Local{
		entries: make(map[string]localEntry),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get returns the cached snapshot for key. Entries older than the TTL are
// treated as absent and dropped.
func (c *Local) Get(key string) (*models.User, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(e.cachedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.user, true
}

// Set stores a snapshot under key. When the cache is full an arbitrary
// entry is evicted; a dropped entry only costs a store round trip.
func (c *Local) Set(key string, user *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}

	c.entries[key] = localEntry{user: user, cachedAt: time.Now()}
}

// Len returns the number of cached entries, expired or not.
func (c *Local) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
