// Package errors defines the root error kinds shared by every domain.
//
// Domain packages declare their own sentinels by wrapping one of these roots, so the HTTP
// layer can choose a status code with Is without knowing the domain:
//
//	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "failed to decrypt data")
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the request is incompatible with current state.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates input the caller must correct before retrying.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooManyRequests indicates the caller exceeded its request budget.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrInternal indicates a failure the caller cannot fix by changing its input.
	ErrInternal = errors.New("internal error")
)

// Wrap prefixes err with message, keeping err in the chain. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
