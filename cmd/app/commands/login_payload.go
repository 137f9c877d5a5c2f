package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	authService "github.com/maasoft/sg-gateway/internal/auth/service"
)

// LoginPayloadInput holds what is needed to sign a login body by hand.
type LoginPayloadInput struct {
	UserName    string
	RawPassword string
	EntityID    string
	// OutputPath, when set, also receives the payload.
	OutputPath string
}

// RunLoginPayload prints a signed SG login body ready to paste in an API client.
// The body carries the password digest, never the raw secret.
func RunLoginPayload(
	signer authService.DigestSigner,
	input LoginPayloadInput,
	now time.Time,
	writer io.Writer,
) error {
	if input.UserName == "" || input.RawPassword == "" || input.EntityID == "" {
		return fmt.Errorf("SG_USER_NAME, SG_PASSWORD and an entity id are required")
	}

	request, err := signer.NewLoginRequest(input.UserName, input.RawPassword, input.EntityID, now)
	if err != nil {
		return fmt.Errorf("failed to sign login request: %w", err)
	}

	var payload bytes.Buffer
	if err := writeJSON(&payload, request); err != nil {
		return err
	}

	if _, err := writer.Write(payload.Bytes()); err != nil {
		return err
	}

	if input.OutputPath == "" {
		return nil
	}

	if err := os.WriteFile(input.OutputPath, payload.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write login payload: %w", err)
	}
	_, _ = fmt.Fprintf(writer, "\nLogin payload written to %s\n", input.OutputPath)

	return nil
}
