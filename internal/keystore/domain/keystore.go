// Package domain defines storage keys and errors for per-user device key persistence.
package domain

import (
	"github.com/allisson/dreamcrypt/internal/errors"
)

// ErrEntryNotFound indicates the storage backend has no value for the requested key.
var ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "storage entry not found")

// StorageKey returns the deterministic storage key for a user's device key: "<prefix>_<userID>".
func StorageKey(prefix, userID string) string {
	return prefix + "_" + userID
}
