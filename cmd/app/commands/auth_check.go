package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	authDTO "github.com/maasoft/sg-gateway/internal/auth/http/dto"
	authUseCase "github.com/maasoft/sg-gateway/internal/auth/usecase"
)

// RunAuthCheck performs a forced SG login and prints its redacted summary.
// The token is not cached.
func RunAuthCheck(
	ctx context.Context,
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	entityID string,
	format string,
) error {
	logger.Info("checking sg credentials", slog.String("entity_id", entityID))

	summary, err := sessionUseCase.LoginDebug(ctx, entityID)
	if err != nil {
		return fmt.Errorf("sg login failed: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, authDTO.MapDebugSummaryToResponse(summary))
	}

	_, _ = fmt.Fprintln(writer, "SG login succeeded")
	_, _ = fmt.Fprintf(writer, "Token prefix: %s\n", summary.TokenPrefix)
	_, _ = fmt.Fprintf(writer, "Expires in: %v\n", summary.ExpiresIn)
	_, _ = fmt.Fprintf(writer, "Expires at: %v\n", summary.ExpiresAt)
	_, _ = fmt.Fprintf(writer, "Response keys: %s\n", strings.Join(summary.RawKeys, ", "))
	if summary.Claims != nil && summary.Claims.ExpiresAt != nil {
		_, _ = fmt.Fprintf(writer, "JWT exp: %s\n", summary.Claims.ExpiresAt.UTC().Format(time.RFC3339))
	}

	return nil
}
