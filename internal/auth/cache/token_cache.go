// Package cache keeps SG bearer tokens in memory, one per entity.
package cache

import (
	"sync"
	"time"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// TokenCache maps entity ids to their current token. It is safe for
// concurrent use; all access goes through a single mutex.
type TokenCache struct {
	mu      sync.Mutex
	entries map[string]entry
	leeway  time.Duration
	clock   func() time.Time
}

// Option configures a TokenCache.
type Option func(*TokenCache)

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *TokenCache) {
		c.clock = clock
	}
}

// NewTokenCache creates an empty cache. A token is served only while its
// expiry is later than now plus leeway.
func NewTokenCache(leeway time.Duration, opts ...Option) *TokenCache {
	c := &TokenCache{
		entries: make(map[string]entry),
		leeway:  leeway,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetValid returns the token for entityID if it is still valid after leeway.
func (c *TokenCache) GetValid(entityID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[entityID]
	if !ok {
		return "", false
	}
	if !e.expiresAt.After(c.clock().Add(c.leeway)) {
		return "", false
	}
	return e.token, true
}

// Set stores token for entityID, replacing any previous entry.
func (c *TokenCache) Set(entityID, token string, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entityID] = entry{token: token, expiresAt: expiresAt}
}

// Inspect reports the stored entry without applying leeway. The token itself
// is never part of the result.
func (c *TokenCache) Inspect(entityID string) authDomain.CacheStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := authDomain.CacheStatus{EntityID: entityID}
	e, ok := c.entries[entityID]
	if !ok {
		return status
	}

	status.Exists = true
	status.ExpiresAt = e.expiresAt
	status.SecondsRemaining = int64(e.expiresAt.Sub(c.clock()) / time.Second)
	return status
}

// Leeway returns the renewal margin the cache was built with.
func (c *TokenCache) Leeway() time.Duration {
	return c.leeway
}
