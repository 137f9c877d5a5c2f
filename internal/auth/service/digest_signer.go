package service

import (
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // SHA-1 is mandated by the SG login protocol
	"encoding/base64"
	"io"
	"strings"
	"time"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
	apperrors "github.com/maasoft/sg-gateway/internal/errors"
)

const (
	nonceSize     = 16
	createdLayout = "2006-01-02T15:04:05"
)

type digestSigner struct {
	random io.Reader
}

// NewDigestSigner creates a DigestSigner reading nonces from crypto/rand.
func NewDigestSigner() DigestSigner {
	return &digestSigner{random: rand.Reader}
}

func (d *digestSigner) NewNonce() (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(d.random, nonce); err != nil {
		return "", apperrors.Wrap(err, "failed to generate nonce")
	}
	return base64.StdEncoding.EncodeToString(nonce), nil
}

func (d *digestSigner) Created(now time.Time) string {
	return now.UTC().Format(createdLayout) + "Z"
}

func (d *digestSigner) Sign(nonceB64, created, rawPassword string) (string, error) {
	nonce, err := base64.StdEncoding.DecodeString(nonceB64)
	if err != nil {
		return "", authDomain.ErrInvalidNonce
	}

	h := sha1.New() //nolint:gosec
	h.Write(nonce)
	h.Write([]byte(strings.TrimSuffix(created, "Z")))
	h.Write([]byte(rawPassword))

	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

func (d *digestSigner) NewLoginRequest(
	userName, rawPassword, entityID string,
	now time.Time,
) (*authDomain.LoginRequest, error) {
	nonce, err := d.NewNonce()
	if err != nil {
		return nil, err
	}
	created := d.Created(now)

	digest, err := d.Sign(nonce, created, rawPassword)
	if err != nil {
		return nil, err
	}

	return &authDomain.LoginRequest{
		UserName:  userName,
		Password:  digest,
		Nonce:     nonce,
		Created:   created,
		IDEntidad: entityID,
	}, nil
}
