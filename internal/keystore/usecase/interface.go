// Package usecase implements the per-user device key lifecycle.
//
// A device key is created lazily on the first encryption for a user, exported to its
// portable form and written to Storage in a single Set call. It is imported fresh on
// every use and never cached between calls.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
)

// Storage is the string key-value store that holds portable device keys.
//
// Implementations must make Set atomic per key so a failed write never leaves a
// partially written value behind. Remove must be idempotent.
//
// Available implementations:
//   - memory.MemoryStorage: in-process map, for tests and the CLI
//   - postgresql.PostgreSQLStorage: INSERT ... ON CONFLICT upsert
//   - mysql.MySQLStorage: INSERT ... ON DUPLICATE KEY UPDATE upsert
type Storage interface {
	// Get returns the stored value or keystoreDomain.ErrEntryNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// KeyStore owns the lifecycle of one device key per user.
type KeyStore interface {
	// GetOrCreateUserKey returns the user's device key, creating and persisting it on first use.
	// The caller owns the returned key and must Destroy it. Any failure is
	// cryptoDomain.ErrKeyManagement.
	GetOrCreateUserKey(ctx context.Context, userID string) (*cryptoDomain.Key, error)

	// ClearUserKeys removes the user's stored device key. Idempotent.
	// Envelopes encrypted under the removed key become permanently undecryptable.
	ClearUserKeys(ctx context.Context, userID string) error
}
