package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/maasoft/sg-gateway/internal/database"
)

// migrationsPath maps a DB_DRIVER value to its migrations directory,
// relative to the working directory.
func migrationsPath(driver string) (string, error) {
	switch driver {
	case database.DriverPostgres:
		return "file://migrations/postgresql", nil
	case database.DriverMySQL:
		return "file://migrations/mysql", nil
	}
	return "", fmt.Errorf("unsupported database driver: %q", driver)
}

// RunMigrations brings the schema to the latest version. Running it on an
// up to date database is a no-op.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	sourceURL, err := migrationsPath(dbDriver)
	if err != nil {
		return err
	}

	m, err := migrate.New(sourceURL, dbConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("schema already up to date", slog.String("driver", dbDriver))
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	logger.Info("migrations applied",
		slog.String("driver", dbDriver),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}
