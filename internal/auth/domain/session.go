// Package domain defines the types exchanged with the SG login endpoint and
// the session state kept for each entity.
package domain

import "time"

// RedactedValue replaces secret-bearing values in diagnostic output.
const RedactedValue = "***redacted***"

// LoginRequest is the WS-Security style body posted to the SG login endpoint.
// Password carries the digest, never the raw secret.
type LoginRequest struct {
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	Nonce     string `json:"nonce"`
	Created   string `json:"created"`
	IDEntidad string `json:"idEntidad"`
}

// Session is a normalized SG login response.
type Session struct {
	Token     string
	ExpiresAt time.Time
	// Raw keeps the decoded response, in the order SG sent its keys.
	Raw RawObject
}

// CacheStatus is the raw cache view of an entity, without leeway filtering.
type CacheStatus struct {
	EntityID         string
	Exists           bool
	ExpiresAt        time.Time
	SecondsRemaining int64
}

// TokenClaims are the diagnostic claims read from a JWT token without verifying it.
type TokenClaims struct {
	ExpiresAt *time.Time
	IssuedAt  *time.Time
	Issuer    string
}

// DebugSummary is the redacted result of a forced login.
type DebugSummary struct {
	OK          bool
	TokenPrefix string
	// ExpiresIn and ExpiresAt echo what SG returned, untouched.
	ExpiresIn any
	ExpiresAt any
	RawKeys   []string
	RawSample RawObject
	Claims    *TokenClaims
}
