// Package usecase implements the SG session: token caching, login and diagnostics.
package usecase

import (
	"context"
	"time"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
	"github.com/maasoft/sg-gateway/internal/sgclient"
)

// SGClient sends requests to the SG API.
type SGClient interface {
	BaseURL() string
	Do(ctx context.Context, method, path string, headers map[string]string, body any) (*sgclient.Response, error)
}

// TokenCache stores one token per entity.
type TokenCache interface {
	GetValid(entityID string) (string, bool)
	Set(entityID, token string, expiresAt time.Time)
	Inspect(entityID string) authDomain.CacheStatus
}

// SessionUseCase manages SG bearer tokens for one or more entities.
type SessionUseCase interface {
	// GetOrRefreshToken returns a cached token when it is valid beyond the leeway,
	// otherwise logs in, caches the new token and returns it. Concurrent misses
	// for the same entity share a single login. An empty entityID falls back to
	// the configured default.
	GetOrRefreshToken(ctx context.Context, entityID string) (string, error)

	// AuthHeaders returns the Authorization header for calls to SG.
	AuthHeaders(ctx context.Context, entityID string) (map[string]string, error)

	// EnsureToken obtains a token if needed and reports the resulting cache state.
	EnsureToken(ctx context.Context, entityID string) (authDomain.CacheStatus, error)

	// LoginDebug always performs a login and returns a redacted summary of the
	// response. The cache is left untouched.
	LoginDebug(ctx context.Context, entityID string) (*authDomain.DebugSummary, error)

	// CacheStatus reports the cache state of the entity.
	CacheStatus(ctx context.Context, entityID string) (authDomain.CacheStatus, error)
}
