// Package postgresql provides a PostgreSQL Storage backend.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/dreamcrypt/internal/database"
	apperrors "github.com/allisson/dreamcrypt/internal/errors"
	keystoreDomain "github.com/allisson/dreamcrypt/internal/keystore/domain"
)

// PostgreSQLStorage implements Storage on the storage_entries table.
// Participates in transactions via database.GetTx().
type PostgreSQLStorage struct {
	db *sql.DB
}

// Get retrieves the value stored under key.
func (p *PostgreSQLStorage) Get(ctx context.Context, key string) (string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT storage_value FROM storage_entries WHERE storage_key = $1`

	var value string
	if err := querier.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", keystoreDomain.ErrEntryNotFound
		}
		return "", apperrors.Wrap(err, "failed to get storage entry")
	}
	return value, nil
}

// Set upserts value under key in a single statement.
func (p *PostgreSQLStorage) Set(ctx context.Context, key, value string) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO storage_entries (storage_key, storage_value, updated_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (storage_key) DO UPDATE
			  SET storage_value = EXCLUDED.storage_value, updated_at = EXCLUDED.updated_at`

	if _, err := querier.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return apperrors.Wrap(err, "failed to set storage entry")
	}
	return nil
}

// Remove deletes key if present.
func (p *PostgreSQLStorage) Remove(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM storage_entries WHERE storage_key = $1`

	if _, err := querier.ExecContext(ctx, query, key); err != nil {
		return apperrors.Wrap(err, "failed to remove storage entry")
	}
	return nil
}

// NewPostgreSQLStorage creates a new PostgreSQL storage backend.
func NewPostgreSQLStorage(db *sql.DB) *PostgreSQLStorage {
	return &PostgreSQLStorage{db: db}
}
