// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
)

// isoZLayout renders cache expiries as "yyyy-MM-ddTHH:mm:ssZ".
const isoZLayout = "2006-01-02T15:04:05Z"

// CacheStatusResponse represents the cache state of an entity.
// Expiry fields are omitted when no token is cached.
type CacheStatusResponse struct {
	Exists      bool   `json:"exists"`
	EntityID    string `json:"entidad_id"`
	ExpiresAt   string `json:"expires_at,omitempty"`
	SecondsLeft *int64 `json:"seconds_left,omitempty"`
}

// MapCacheStatusToResponse converts a domain cache status to an API response.
func MapCacheStatusToResponse(status authDomain.CacheStatus) CacheStatusResponse {
	response := CacheStatusResponse{
		Exists:   status.Exists,
		EntityID: status.EntityID,
	}
	if status.Exists {
		secondsLeft := status.SecondsRemaining
		response.ExpiresAt = status.ExpiresAt.UTC().Format(isoZLayout)
		response.SecondsLeft = &secondsLeft
	}
	return response
}

// TokenClaimsResponse holds the unverified JWT claims of the token.
type TokenClaimsResponse struct {
	ExpiresAt *time.Time `json:"exp,omitempty"`
	IssuedAt  *time.Time `json:"iat,omitempty"`
	Issuer    string     `json:"iss,omitempty"`
}

// LoginDebugResponse is the redacted result of a forced login.
// SECURITY: never carries the full token nor any secret-bearing field.
type LoginDebugResponse struct {
	OK          bool                 `json:"ok"`
	TokenPrefix *string              `json:"token_prefix"`
	ExpiresIn   any                  `json:"expires_in"`
	ExpiresAt   any                  `json:"expires_at"`
	RawKeys     []string             `json:"raw_keys"`
	RawSample   authDomain.RawObject `json:"raw_sample"`
	Claims      *TokenClaimsResponse `json:"claims,omitempty"`
}

// MapDebugSummaryToResponse converts a domain debug summary to an API response.
func MapDebugSummaryToResponse(summary *authDomain.DebugSummary) LoginDebugResponse {
	response := LoginDebugResponse{
		OK:        summary.OK,
		ExpiresIn: summary.ExpiresIn,
		ExpiresAt: summary.ExpiresAt,
		RawKeys:   summary.RawKeys,
		RawSample: summary.RawSample,
	}
	if response.RawKeys == nil {
		response.RawKeys = []string{}
	}
	if summary.TokenPrefix != "" {
		prefix := summary.TokenPrefix
		response.TokenPrefix = &prefix
	}
	if summary.Claims != nil {
		response.Claims = &TokenClaimsResponse{
			ExpiresAt: summary.Claims.ExpiresAt,
			IssuedAt:  summary.Claims.IssuedAt,
			Issuer:    summary.Claims.Issuer,
		}
	}
	return response
}
