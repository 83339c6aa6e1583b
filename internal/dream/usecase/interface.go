// Package usecase implements the dream encryption facade and the encryption settings flow.
//
// EncryptionUseCase is the public surface other collaborators call: the dream store
// encrypts records before persisting them, the export flow encrypts arbitrary JSON
// values, and the settings flow probes the provider before enabling the feature.
//
// Keys are obtained per call (device key from the KeyStore, or a password key from
// the KeyDeriver) and destroyed before the call returns.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
)

// EncryptionUseCase encrypts and decrypts dream data into Envelopes.
//
// password selects the key source: an empty string uses the user's device key, any other
// value derives a key from the password and the Envelope's salt. Decryption must use the
// same userID and password that were used to encrypt; the Envelope does not record which.
//
// Every decryption failure is returned as cryptoDomain.ErrDecryptionFailed with no cause.
type EncryptionUseCase interface {
	// EncryptData serializes data to JSON and seals it into a new Envelope.
	EncryptData(ctx context.Context, data any, userID, password string) (*cryptoDomain.Envelope, error)

	// DecryptData opens envelope and returns the decoded JSON value.
	DecryptData(ctx context.Context, envelope *cryptoDomain.Envelope, userID, password string) (any, error)

	// EncryptContent encrypts {"content": content}.
	EncryptContent(ctx context.Context, content, userID, password string) (*cryptoDomain.Envelope, error)

	// DecryptContent returns the content string of an Envelope made by EncryptContent.
	DecryptContent(ctx context.Context, envelope *cryptoDomain.Envelope, userID, password string) (string, error)

	// EncryptDream keeps id, createdAt and updatedAt in clear and encrypts the rest of the record.
	EncryptDream(
		ctx context.Context,
		record dreamDomain.Record,
		userID, password string,
	) (*dreamDomain.EncryptedDream, error)

	// DecryptDream reassembles the original record from an EncryptedDream.
	DecryptDream(
		ctx context.Context,
		dream *dreamDomain.EncryptedDream,
		userID, password string,
	) (dreamDomain.Record, error)

	// ChangeUserPassword verifies that oldPassword round-trips a probe payload.
	// It re-encrypts nothing and writes nothing to storage.
	ChangeUserPassword(ctx context.Context, userID, oldPassword, newPassword string) (bool, error)

	// TestEncryption round-trips a diagnostic payload under the user's device key.
	// Failures are reported as false, never as an error.
	TestEncryption(ctx context.Context, userID string) bool

	// IsEncrypted reports whether value has the Envelope shape.
	IsEncrypted(value any) bool

	// EncryptionInfo reports the algorithm, key size, format version and provider availability.
	EncryptionInfo() dreamDomain.EncryptionInfo

	// ClearUserKeys erases the user's device key. Data encrypted under it becomes unrecoverable.
	ClearUserKeys(ctx context.Context, userID string) error
}

// SettingsUseCase drives the enable/disable flow of the encryption feature.
type SettingsUseCase interface {
	// Get returns the user's settings, disabled when none are stored.
	Get(ctx context.Context, userID string) (*dreamDomain.Settings, error)

	// Enable runs the self-test and moves the user to enabled.
	// On a failed self-test the user stays disabled and ErrEncryptionSelfTestFailed is returned.
	Enable(ctx context.Context, userID string) (*dreamDomain.Settings, error)

	// Disable turns encryption off after explicit confirmation, optionally erasing the device key.
	Disable(ctx context.Context, userID string, confirmed, clearKeys bool) (*dreamDomain.Settings, error)
}
