package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
	apperrors "github.com/maasoft/sg-gateway/internal/errors"
)

const zeroNonce = "AAAAAAAAAAAAAAAAAAAAAA=="

func TestDigestSigner_Sign(t *testing.T) {
	signer := NewDigestSigner()

	tests := []struct {
		name     string
		nonce    string
		created  string
		password string
		want     string
	}{
		{
			name:     "zero nonce",
			nonce:    zeroNonce,
			created:  "2025-01-01T00:00:00Z",
			password: "secret",
			want:     "cRGQinzczoimwauz6RJOwv6Z/4U=",
		},
		{
			name:     "created without Z hashes the same bytes",
			nonce:    zeroNonce,
			created:  "2025-01-01T00:00:00",
			password: "secret",
			want:     "cRGQinzczoimwauz6RJOwv6Z/4U=",
		},
		{
			name:     "utf-8 password",
			nonce:    "AAECAwQFBgcICQoLDA0ODw==",
			created:  "2024-06-30T23:59:59Z",
			password: "p@ss wörd",
			want:     "7S1pzf2+/wry9t1CnwIhf050hAU=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := signer.Sign(tt.nonce, tt.created, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDigestSigner_SignStripsOnlyTrailingZ(t *testing.T) {
	signer := NewDigestSigner()

	withZ, err := signer.Sign(zeroNonce, "2025-01-01T00:00:00ZZ", "secret")
	require.NoError(t, err)

	// One Z survives, so the digest must differ from the canonical one.
	assert.NotEqual(t, "cRGQinzczoimwauz6RJOwv6Z/4U=", withZ)
	assert.Equal(t, "WkqyZtHDRKDlBDAMwJT4zQkTgJA=", withZ)
}

func TestDigestSigner_SignInvalidNonce(t *testing.T) {
	signer := NewDigestSigner()

	_, err := signer.Sign("not base64!", "2025-01-01T00:00:00Z", "secret")
	assert.ErrorIs(t, err, authDomain.ErrInvalidNonce)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestDigestSigner_Created(t *testing.T) {
	signer := NewDigestSigner()
	art := time.FixedZone("ART", -3*60*60)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{name: "utc", now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), want: "2025-01-01T00:00:00Z"},
		{name: "converts to utc", now: time.Date(2024, 12, 31, 21, 0, 0, 0, art), want: "2025-01-01T00:00:00Z"},
		{
			name: "drops fractional seconds",
			now:  time.Date(2025, 3, 4, 5, 6, 7, 999_000_000, time.UTC),
			want: "2025-03-04T05:06:07Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, signer.Created(tt.now))
		})
	}
}

func TestDigestSigner_NewNonce(t *testing.T) {
	signer := NewDigestSigner()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		nonce, err := signer.NewNonce()
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(nonce)
		require.NoError(t, err)
		assert.Len(t, raw, 16)

		_, dup := seen[nonce]
		assert.False(t, dup, "nonce reused")
		seen[nonce] = struct{}{}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestDigestSigner_NewNonceError(t *testing.T) {
	signer := &digestSigner{random: failingReader{}}

	_, err := signer.NewNonce()
	assert.Error(t, err)

	_, err = signer.NewLoginRequest("user", "secret", "ENT", time.Now())
	assert.Error(t, err)
}

func TestDigestSigner_NewLoginRequest(t *testing.T) {
	signer := &digestSigner{random: bytes.NewReader(make([]byte, 16))}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	req, err := signer.NewLoginRequest("api-user", "secret", "ENT-1", now)
	require.NoError(t, err)

	assert.Equal(t, &authDomain.LoginRequest{
		UserName:  "api-user",
		Password:  "cRGQinzczoimwauz6RJOwv6Z/4U=",
		Nonce:     zeroNonce,
		Created:   "2025-01-01T00:00:00Z",
		IDEntidad: "ENT-1",
	}, req)
	assert.NotContains(t, req.Password, "secret")
}

func TestDigestSigner_ConcurrentSign(t *testing.T) {
	signer := NewDigestSigner()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := signer.Sign(zeroNonce, "2025-01-01T00:00:00Z", "secret")
			assert.NoError(t, err)
			assert.Equal(t, "cRGQinzczoimwauz6RJOwv6Z/4U=", got)
		}()
	}
	wg.Wait()
}
