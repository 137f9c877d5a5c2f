package kms

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/maasoft/sg-gateway/internal/errors"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

type mockKeeper struct {
	mock.Mock
}

func (m *mockKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKeeper) Close() error {
	return m.Called().Error(0)
}

func TestService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	service := NewService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := service.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		require.NotNil(t, keeper)
		assert.NoError(t, keeper.Close())
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := service.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("Error_EmptyURI", func(t *testing.T) {
		keeper, err := service.OpenKeeper(ctx, "")
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		assert.Nil(t, keeper)
	})
}

func TestService_EncryptDecryptString(t *testing.T) {
	ctx := context.Background()
	service := NewService()
	keyURI := generateLocalSecretsURI(t)

	testCases := []struct {
		name      string
		plaintext string
	}{
		{name: "Password", plaintext: "s3cr3t-P@ss"},
		{name: "Unicode", plaintext: "contraseña-ñandú"},
		{name: "Empty", plaintext: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext, err := service.EncryptString(ctx, keyURI, tc.plaintext)
			require.NoError(t, err)
			assert.NotEqual(t, tc.plaintext, ciphertext)

			_, err = base64.StdEncoding.DecodeString(ciphertext)
			require.NoError(t, err)

			plaintext, err := service.DecryptString(ctx, keyURI, ciphertext)
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, plaintext)
		})
	}
}

func TestService_DecryptString_Errors(t *testing.T) {
	ctx := context.Background()
	service := NewService()

	t.Run("InvalidBase64", func(t *testing.T) {
		_, err := service.DecryptString(ctx, generateLocalSecretsURI(t), "not base64 !!")
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		assert.NotContains(t, err.Error(), "not base64 !!")
	})

	t.Run("WrongKey", func(t *testing.T) {
		ciphertext, err := service.EncryptString(ctx, generateLocalSecretsURI(t), "hunter2")
		require.NoError(t, err)

		plaintext, err := service.DecryptString(ctx, generateLocalSecretsURI(t), ciphertext)
		assert.Error(t, err)
		assert.Empty(t, plaintext)
		assert.NotContains(t, err.Error(), "hunter2")
	})

	t.Run("MissingKeyURI", func(t *testing.T) {
		_, err := service.DecryptString(ctx, "", base64.StdEncoding.EncodeToString([]byte("x")))
		assert.ErrorIs(t, err, ErrKeyURIRequired)
	})
}

func TestService_ClosesKeeper(t *testing.T) {
	ctx := context.Background()
	keeper := &mockKeeper{}
	service := &kmsService{
		open: func(ctx context.Context, keyURI string) (Keeper, error) {
			return keeper, nil
		},
	}

	keeper.On("Decrypt", ctx, []byte("cipher")).Return([]byte("plain"), nil).Once()
	keeper.On("Encrypt", ctx, []byte("plain")).Return(nil, errors.New("kms down")).Once()
	keeper.On("Close").Return(nil).Twice()

	plaintext, err := service.DecryptString(ctx, "mock://key", base64.StdEncoding.EncodeToString([]byte("cipher")))
	require.NoError(t, err)
	assert.Equal(t, "plain", plaintext)

	_, err = service.EncryptString(ctx, "mock://key", "plain")
	assert.ErrorContains(t, err, "failed to encrypt secret")

	keeper.AssertExpectations(t)
}
