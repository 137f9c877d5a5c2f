package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
)

func TestMapCacheStatusToResponse(t *testing.T) {
	t.Run("Success_Missing", func(t *testing.T) {
		response := MapCacheStatusToResponse(authDomain.CacheStatus{EntityID: "ENT"})

		data, err := json.Marshal(response)
		require.NoError(t, err)
		assert.JSONEq(t, `{"exists":false,"entidad_id":"ENT"}`, string(data))
	})

	t.Run("Success_Existing", func(t *testing.T) {
		response := MapCacheStatusToResponse(authDomain.CacheStatus{
			EntityID:         "ENT",
			Exists:           true,
			ExpiresAt:        time.Date(2025, 1, 1, 13, 0, 0, 0, time.FixedZone("ART", -3*60*60)),
			SecondsRemaining: 0,
		})

		data, err := json.Marshal(response)
		require.NoError(t, err)
		assert.JSONEq(
			t,
			`{"exists":true,"entidad_id":"ENT","expires_at":"2025-01-01T16:00:00Z","seconds_left":0}`,
			string(data),
		)
	})
}

func TestMapDebugSummaryToResponse(t *testing.T) {
	t.Run("Success_WithToken", func(t *testing.T) {
		exp := time.Date(2025, 1, 1, 13, 0, 0, 0, time.UTC)
		summary := &authDomain.DebugSummary{
			OK:          true,
			TokenPrefix: "abcdefghijklmnop…",
			ExpiresIn:   json.Number("3600"),
			RawKeys:     []string{"token", "expiresIn"},
			RawSample: authDomain.RawObject{
				{Key: "token", Value: authDomain.RedactedValue},
				{Key: "expiresIn", Value: json.Number("3600")},
			},
			Claims: &authDomain.TokenClaims{ExpiresAt: &exp, Issuer: "sg"},
		}

		data, err := json.Marshal(MapDebugSummaryToResponse(summary))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"ok": true,
			"token_prefix": "abcdefghijklmnop…",
			"expires_in": 3600,
			"expires_at": null,
			"raw_keys": ["token", "expiresIn"],
			"raw_sample": {"token": "***redacted***", "expiresIn": 3600},
			"claims": {"exp": "2025-01-01T13:00:00Z", "iss": "sg"}
		}`, string(data))
	})

	t.Run("Success_WithoutToken", func(t *testing.T) {
		data, err := json.Marshal(MapDebugSummaryToResponse(&authDomain.DebugSummary{}))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"ok": false,
			"token_prefix": null,
			"expires_in": null,
			"expires_at": null,
			"raw_keys": [],
			"raw_sample": {}
		}`, string(data))
	})
}
