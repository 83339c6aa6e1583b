package domain

import (
	"github.com/allisson/dreamcrypt/internal/errors"
)

// Dream encryption error definitions.
var (
	// ErrInvalidDream indicates a record lacks a non-empty string id.
	ErrInvalidDream = errors.Wrap(errors.ErrInvalidInput, "dream record must have a non-empty string id")

	// ErrInvalidPassword indicates a password change request with an empty password.
	ErrInvalidPassword = errors.Wrap(errors.ErrInvalidInput, "password must not be empty")

	// ErrInvalidStateTransition indicates a settings transition not allowed from the current state.
	ErrInvalidStateTransition = errors.Wrap(errors.ErrConflict, "invalid encryption settings transition")

	// ErrEncryptionSelfTestFailed indicates the encrypt/decrypt probe failed while enabling encryption.
	ErrEncryptionSelfTestFailed = errors.Wrap(errors.ErrInternal, "encryption self-test failed")
)
