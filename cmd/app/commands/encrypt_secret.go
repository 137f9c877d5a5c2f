package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/maasoft/sg-gateway/internal/kms"
)

// RunEncryptSecret encrypts a secret with the KMS key so it can be stored as
// SG_PASSWORD. When plaintext is empty the secret is read from the first line
// of the reader, keeping it out of the shell history.
func RunEncryptSecret(
	ctx context.Context,
	kmsService kms.Service,
	keyURI string,
	plaintext string,
	streams IOTuple,
) error {
	if keyURI == "" {
		return fmt.Errorf(
			"--kms-key-uri is required\n\nFor local development, use:\n  --kms-key-uri=\"base64key://<32-byte-base64-key>\"",
		)
	}

	if plaintext == "" {
		_, _ = fmt.Fprint(streams.Writer, "Enter secret: ")
		line, err := readLine(streams.Reader)
		if err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
		plaintext = line
	}
	if plaintext == "" {
		return fmt.Errorf("secret cannot be empty")
	}

	ciphertext, err := kmsService.EncryptString(ctx, keyURI, plaintext)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(streams.Writer)
	_, _ = fmt.Fprintln(streams.Writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintf(streams.Writer, "KMS_KEY_URI=\"%s\"\n", keyURI)
	_, _ = fmt.Fprintf(streams.Writer, "SG_PASSWORD=\"%s\"\n", ciphertext)

	return nil
}

func readLine(reader io.Reader) (string, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
