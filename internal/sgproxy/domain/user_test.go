package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/maasoft/sg-gateway/internal/errors"
)

func TestNormalizeCUIT(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "digits", input: "20123456789", want: "20123456789"},
		{name: "dashes", input: "20-12345678-9", want: "20123456789"},
		{name: "spaces", input: " 20 12345678 9 ", want: "20123456789"},
		{name: "letters", input: "20-1234567X-9", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "only dashes", input: "--", wantErr: true},
		{name: "dots", input: "20.123.456.789", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCUIT(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCUIT)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCUITNumber(t *testing.T) {
	n, err := CUITNumber("20123456789")
	require.NoError(t, err)
	assert.Equal(t, int64(20123456789), n)

	_, err = CUITNumber("99999999999999999999999")
	assert.ErrorIs(t, err, ErrInvalidCUIT)
}

func decode(t *testing.T, body string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestParseUserLookup(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *UserLookup
	}{
		{
			name: "list with user and accounts",
			body: `[{"usuario":["U-1","U-2"],"cuentas":[{"cvu":"000"}]},{"usuario":["U-3"]}]`,
			want: &UserLookup{
				Exists:   true,
				UserID:   "U-1",
				Accounts: []any{map[string]any{"cvu": "000"}},
				RawCount: 2,
			},
		},
		{
			name: "single object",
			body: `{"usuario":["U-1"]}`,
			want: &UserLookup{Exists: true, UserID: "U-1", Accounts: []any{}, RawCount: 1},
		},
		{
			name: "accounts only",
			body: `{"usuario":[],"cuentas":[1]}`,
			want: &UserLookup{Exists: true, Accounts: []any{float64(1)}, RawCount: 1},
		},
		{
			name: "empty list",
			body: `[]`,
			want: &UserLookup{Accounts: []any{}, RawCount: 0},
		},
		{
			name: "first object wins over later ones",
			body: `["noise",{"usuario":null},{"usuario":["U-9"]}]`,
			want: &UserLookup{Accounts: []any{}, RawCount: 3},
		},
		{
			name: "usuario not a list",
			body: `{"usuario":"U-1"}`,
			want: &UserLookup{Accounts: []any{}, RawCount: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUserLookup(decode(t, tt.body)))
		})
	}
}

func TestUpstreamProxyError(t *testing.T) {
	err := NewUpstreamProxyError(409, map[string]any{"mensaje": "CVU existente"})

	var responder apperrors.UpstreamResponder
	require.ErrorAs(t, apperrors.Wrap(err, "forward"), &responder)
	assert.Equal(t, 409, responder.UpstreamStatus())
	assert.Equal(t, map[string]any{"mensaje": "CVU existente"}, responder.UpstreamDetail())
	assert.Equal(t, "SG responded with status 409", err.Error())

	nonJSON := NewNonJSONResponseError()
	assert.Equal(t, 502, nonJSON.UpstreamStatus())
	assert.Equal(t, "Respuesta no JSON desde SG", nonJSON.UpstreamDetail())
}

func TestSentinelErrors(t *testing.T) {
	assert.ErrorIs(t, ErrDocumentTypeNotConfigured, apperrors.ErrConfiguration)
}
