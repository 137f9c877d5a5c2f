// Package commands implements the sg-gateway subcommands. Each Run function
// takes its collaborators and output streams explicitly so it can be driven
// from tests without a container.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"

	"github.com/maasoft/sg-gateway/internal/app"
)

const containerCloseTimeout = 10 * time.Second

// IOTuple bundles the streams a command reads secrets from and prints to.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO is stdin/stdout.
func DefaultIO() IOTuple {
	return IOTuple{Reader: os.Stdin, Writer: os.Stdout}
}

func closeContainer(container *app.Container, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), containerCloseTimeout)
	defer cancel()

	if err := container.Shutdown(ctx); err != nil {
		logger.Error("failed to release container resources", slog.Any("error", err))
	}
}

func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		logger.Error("failed to close migrate",
			slog.Any("source_error", srcErr),
			slog.Any("database_error", dbErr),
		)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
