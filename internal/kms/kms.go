// Package kms opens gocloud.dev secrets keepers to protect configuration
// secrets such as the SG shared password.
package kms

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	apperrors "github.com/maasoft/sg-gateway/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// ErrKeyURIRequired is returned when an operation needs a keeper but KMS_KEY_URI is empty.
var ErrKeyURIRequired = apperrors.Wrap(apperrors.ErrConfiguration, "KMS_KEY_URI not defined")

// Keeper is the subset of *secrets.Keeper used by this package.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// Service encrypts and decrypts configuration secrets with a KMS key.
// Ciphertexts travel as standard base64 so they fit in environment variables.
type Service interface {
	// OpenKeeper opens a keeper for keyURI.
	// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
	OpenKeeper(ctx context.Context, keyURI string) (Keeper, error)

	// EncryptString encrypts plaintext and returns the base64 ciphertext.
	EncryptString(ctx context.Context, keyURI, plaintext string) (string, error)

	// DecryptString decodes and decrypts a base64 ciphertext produced by EncryptString.
	DecryptString(ctx context.Context, keyURI, ciphertext string) (string, error)
}

type kmsService struct {
	open func(ctx context.Context, keyURI string) (Keeper, error)
}

// NewService creates a KMS service backed by gocloud.dev/secrets.
func NewService() Service {
	return &kmsService{
		open: func(ctx context.Context, keyURI string) (Keeper, error) {
			return secrets.OpenKeeper(ctx, keyURI)
		},
	}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (Keeper, error) {
	if keyURI == "" {
		return nil, ErrKeyURIRequired
	}
	keeper, err := k.open(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

func (k *kmsService) EncryptString(ctx context.Context, keyURI, plaintext string) (string, error) {
	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() { _ = keeper.Close() }()

	ciphertext, err := keeper.Encrypt(ctx, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (k *kmsService) DecryptString(ctx context.Context, keyURI, ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		// The value is never echoed back.
		return "", apperrors.Wrap(apperrors.ErrConfiguration, "secret ciphertext is not valid base64")
	}

	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() { _ = keeper.Close() }()

	plaintext, err := keeper.Decrypt(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt secret: %w", err)
	}
	defer zero(plaintext)

	return string(plaintext), nil
}

// zero overwrites b so the decrypted bytes do not linger in the buffer.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
