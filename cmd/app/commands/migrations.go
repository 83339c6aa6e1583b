package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/dreamcrypt/internal/config"
)

// RunMigrations creates the storage_entries table for the SQL storage drivers.
// The memory driver has nothing to migrate.
func RunMigrations(logger *slog.Logger, storageDriver, connectionString string) error {
	if storageDriver == config.StorageDriverMemory {
		logger.Info("memory storage selected, nothing to migrate")
		return nil
	}

	logger.Info("running database migrations", slog.String("driver", storageDriver))

	migrationsPath := "file://migrations/postgresql"
	if storageDriver == config.StorageDriverMySQL {
		migrationsPath = "file://migrations/mysql"
	}

	m, err := migrate.New(migrationsPath, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
