package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	authService "github.com/maasoft/sg-gateway/internal/auth/service"
)

// inboundTokenKey is the .env entry holding the notification bearer token.
const inboundTokenKey = "AUTH_TOKEN"

// RunRotateInboundToken generates a new notification bearer token and stores
// it as AUTH_TOKEN in the .env file at envPath. The new token is printed once
// so it can be handed to SG. The running server picks it up on restart.
func RunRotateInboundToken(tokenService authService.TokenService, envPath string, writer io.Writer) error {
	info, err := os.Stat(envPath)
	if err != nil {
		return fmt.Errorf("env file not found: %s", envPath)
	}

	content, err := os.ReadFile(envPath)
	if err != nil {
		return fmt.Errorf("failed to read env file: %w", err)
	}

	plainToken, tokenHash, err := tokenService.GenerateToken()
	if err != nil {
		return err
	}

	updated := replaceEnvLine(string(content), inboundTokenKey, plainToken)

	values, err := godotenv.Unmarshal(updated)
	if err != nil {
		return fmt.Errorf("failed to parse updated env file: %w", err)
	}
	if values[inboundTokenKey] != plainToken {
		return fmt.Errorf("env file does not resolve %s to the new token", inboundTokenKey)
	}

	if err := os.WriteFile(envPath, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Token updated in %s\n", envPath)
	_, _ = fmt.Fprintf(writer, "New token: %s\n", plainToken)
	_, _ = fmt.Fprintf(writer, "Fingerprint: %s\n", authService.Fingerprint(tokenHash))
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The token is shown only once. Share it with SG and restart the server.")

	return nil
}

// replaceEnvLine rewrites every assignment of key and leaves all other lines
// untouched. The assignment is appended when the key is absent.
func replaceEnvLine(content, key, value string) string {
	lines := strings.Split(content, "\n")
	found := false
	for i, line := range lines {
		if !isEnvAssignment(line, key) {
			continue
		}
		prefix, ending := "", ""
		if strings.HasPrefix(strings.TrimSpace(line), "export ") {
			prefix = "export "
		}
		if strings.HasSuffix(line, "\r") {
			ending = "\r"
		}
		lines[i] = prefix + key + "=" + value + ending
		found = true
	}
	if found {
		return strings.Join(lines, "\n")
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + key + "=" + value + "\n"
}

func isEnvAssignment(line, key string) bool {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	name, _, ok := strings.Cut(trimmed, "=")
	return ok && strings.TrimSpace(name) == key
}
