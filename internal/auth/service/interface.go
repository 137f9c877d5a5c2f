// Package service provides the technical services behind SG authentication:
// the WS-Security password digest used on login and the static token that
// guards inbound notifications.
package service

import (
	"time"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
)

// DigestSigner builds the credentials of an SG login. Implementations are
// stateless and safe for concurrent use.
type DigestSigner interface {
	// NewNonce returns 16 fresh random bytes, standard base64 encoded.
	NewNonce() (string, error)

	// Created formats now in UTC as "yyyy-MM-ddTHH:mm:ssZ".
	Created(now time.Time) string

	// Sign computes base64(SHA1(nonce || created || password)). A single
	// trailing "Z" is removed from created before hashing.
	Sign(nonceB64, created, rawPassword string) (string, error)

	// NewLoginRequest assembles a signed login body for the entity.
	NewLoginRequest(userName, rawPassword, entityID string, now time.Time) (*authDomain.LoginRequest, error)
}

// TokenService defines operations for the static bearer token that SG presents
// when calling back this service.
type TokenService interface {
	// GenerateToken creates a new random token and returns it with its SHA-256 hash.
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a plain text token using SHA-256.
	HashToken(plainToken string) string

	// CompareToken reports whether presented equals expected, in constant time.
	CompareToken(presented, expected string) bool
}
