package usecase

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
	"github.com/maasoft/sg-gateway/internal/timeutil"
)

const (
	// defaultTokenLifetime applies when SG does not say when the token expires.
	defaultTokenLifetime = 50 * time.Minute
	minExpiresIn         = 60 * time.Second
	tokenPrefixLen       = 16
	rawSampleSize        = 6

	// maxExpiresInSeconds keeps expiresIn within time.Duration range.
	maxExpiresInSeconds = int64(math.MaxInt64 / int64(time.Second))
)

var (
	tokenKeys          = []string{"accessToken", "token", "bearerToken"}
	absoluteExpiryKeys = []string{"expiresAt", "expiration"}
	relativeExpiryKey  = "expiresIn"

	secretKeys = map[string]struct{}{
		"token":        {},
		"accesstoken":  {},
		"bearertoken":  {},
		"refreshtoken": {},
		"password":     {},
	}
)

// firstPresent returns the first key holding a non-empty value.
func firstPresent(raw authDomain.RawObject, keys []string) (any, bool) {
	for _, key := range keys {
		value, ok := raw.Get(key)
		if ok && !isEmptyValue(value) {
			return value, true
		}
	}
	return nil, false
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

func extractToken(raw authDomain.RawObject) string {
	for _, key := range tokenKeys {
		value, _ := raw.Get(key)
		if s, ok := value.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// resolveExpiry applies the absolute expiry when present, else expiresIn, else
// the default lifetime. An absolute expiry that cannot be parsed also falls back
// to the default lifetime without looking at expiresIn.
func resolveExpiry(raw authDomain.RawObject, now time.Time) time.Time {
	if value, ok := firstPresent(raw, absoluteExpiryKeys); ok {
		s, isString := value.(string)
		if !isString {
			return now.Add(defaultTokenLifetime)
		}
		expiresAt, err := timeutil.ParseFlexible(s)
		if err != nil {
			return now.Add(defaultTokenLifetime)
		}
		return expiresAt
	}

	if value, ok := raw.Get(relativeExpiryKey); ok {
		if n, isNumber := value.(json.Number); isNumber {
			if seconds, err := n.Int64(); err == nil {
				seconds = min(seconds, maxExpiresInSeconds)
				lifetime := max(time.Duration(seconds)*time.Second, minExpiresIn)
				return now.Add(lifetime)
			}
		}
	}

	return now.Add(defaultTokenLifetime)
}

// tokenPrefix shows at most half of the token so short tokens are never echoed whole.
func tokenPrefix(token string) string {
	runes := []rune(token)
	n := min(tokenPrefixLen, len(runes)/2)
	return string(runes[:n]) + "…"
}

func redactedSample(raw authDomain.RawObject, token string) authDomain.RawObject {
	size := min(rawSampleSize, len(raw))
	sample := make(authDomain.RawObject, 0, size)
	for _, field := range raw[:size] {
		sample = append(sample, authDomain.RawField{Key: field.Key, Value: redactField(field.Key, field.Value, token)})
	}
	return sample
}

// redactField masks secret keys and copies of the token at any depth.
func redactField(key string, value any, token string) any {
	if _, secret := secretKeys[strings.ToLower(key)]; secret {
		return authDomain.RedactedValue
	}
	return redactValue(value, token)
}

func redactValue(value any, token string) any {
	switch v := value.(type) {
	case string:
		if token != "" && v == token {
			return authDomain.RedactedValue
		}
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, nested := range v {
			out[key] = redactField(key, nested, token)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, nested := range v {
			out[i] = redactValue(nested, token)
		}
		return out
	case authDomain.RawObject:
		out := make(authDomain.RawObject, 0, len(v))
		for _, field := range v {
			out = append(out, authDomain.RawField{Key: field.Key, Value: redactField(field.Key, field.Value, token)})
		}
		return out
	}
	return value
}

// tokenClaims reads exp, iat and iss from a JWT without verifying its signature.
// Tokens that are not JWTs yield nil.
func tokenClaims(token string) *authDomain.TokenClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	result := &authDomain.TokenClaims{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.UTC()
		result.ExpiresAt = &t
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.UTC()
		result.IssuedAt = &t
	}
	if iss, err := claims.GetIssuer(); err == nil {
		result.Issuer = iss
	}
	return result
}

func newDebugSummary(raw authDomain.RawObject) *authDomain.DebugSummary {
	token := extractToken(raw)
	summary := &authDomain.DebugSummary{
		OK:        token != "",
		RawKeys:   raw.Keys(),
		RawSample: redactedSample(raw, token),
	}
	summary.ExpiresIn, _ = raw.Get(relativeExpiryKey)
	summary.ExpiresAt, _ = firstPresent(raw, absoluteExpiryKeys)
	if token != "" {
		summary.TokenPrefix = tokenPrefix(token)
		summary.Claims = tokenClaims(token)
	}
	return summary
}
