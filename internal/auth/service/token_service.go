package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/maasoft/sg-gateway/internal/errors"
)

// inboundTokenBytes yields a 32 character token once base64url encoded without padding.
const inboundTokenBytes = 24

// tokenService implements TokenService using SHA-256 for token hashing.
type tokenService struct{}

// GenerateToken creates a new cryptographically secure 24-byte random token.
// The token is unpadded base64 URL-encoded so it can be pasted in a .env file.
// Returns the plain token and its SHA-256 hash.
func (t *tokenService) GenerateToken() (plainToken string, tokenHash string, error error) {
	randomBytes := make([]byte, inboundTokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken = base64.RawURLEncoding.EncodeToString(randomBytes)
	tokenHash = t.HashToken(plainToken)

	return plainToken, tokenHash, nil
}

// HashToken hashes a plain text token using SHA-256.
// Returns the hash as a hexadecimal string.
func (t *tokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// CompareToken hashes both values first so the comparison time depends on
// neither their content nor their length.
func (t *tokenService) CompareToken(presented, expected string) bool {
	presentedHash := sha256.Sum256([]byte(presented))
	expectedHash := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(presentedHash[:], expectedHash[:]) == 1
}

// Fingerprint shortens a token hash to the prefix logged at startup and
// printed on rotation, enough to tell two tokens apart.
func Fingerprint(tokenHash string) string {
	const size = 12
	return "sha256:" + tokenHash[:min(size, len(tokenHash))]
}

// NewTokenService creates a new TokenService instance using SHA-256 for token hashing.
func NewTokenService() TokenService {
	return &tokenService{}
}
