// Package mysql provides a MySQL Storage backend.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/dreamcrypt/internal/database"
	apperrors "github.com/allisson/dreamcrypt/internal/errors"
	keystoreDomain "github.com/allisson/dreamcrypt/internal/keystore/domain"
)

// MySQLStorage implements Storage on the storage_entries table.
// Participates in transactions via database.GetTx().
type MySQLStorage struct {
	db *sql.DB
}

// Get retrieves the value stored under key.
func (m *MySQLStorage) Get(ctx context.Context, key string) (string, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT storage_value FROM storage_entries WHERE storage_key = ?`

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
func (m *MySQLStorage) Set(ctx context.Context, key, value string) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO storage_entries (storage_key, storage_value, updated_at)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE storage_value = VALUES(storage_value), updated_at = VALUES(updated_at)`

	if _, err := querier.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return apperrors.Wrap(err, "failed to set storage entry")
	}
	return nil
}

// Remove deletes key if present.
func (m *MySQLStorage) Remove(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM storage_entries WHERE storage_key = ?`

	if _, err := querier.ExecContext(ctx, query, key); err != nil {
		return apperrors.Wrap(err, "failed to remove storage entry")
	}
	return nil
}

// NewMySQLStorage creates a new MySQL storage backend.
func NewMySQLStorage(db *sql.DB) *MySQLStorage {
	return &MySQLStorage{db: db}
}
