package domain

import (
	"github.com/allisson/dreamcrypt/internal/errors"
)

// Cryptographic error definitions.
//
// Only ErrKeyManagement, ErrEncryptionFailed and ErrDecryptionFailed leave the dream
// encryption use case. A wrong password, a tampered envelope and another user's key all
// produce the same ErrDecryptionFailed.
var (
	// ErrKeyManagement indicates key creation, export, import or storage access failed.
	ErrKeyManagement = errors.Wrap(errors.ErrInternal, "key management failed")

	// ErrEncryptionFailed indicates the encrypt step itself failed.
	ErrEncryptionFailed = errors.Wrap(errors.ErrInternal, "failed to encrypt data")

	// ErrDecryptionFailed covers every decryption failure: wrong key or password, tampered
	// or truncated ciphertext, malformed or unknown-version envelope, empty or non-JSON result.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "failed to decrypt data")

	// ErrInvalidKeySize indicates key material is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidIVSize indicates a nonce is not exactly IVSize bytes.
	ErrInvalidIVSize = errors.Wrap(errors.ErrInvalidInput, "invalid iv size")

	// ErrKeyNotExtractable indicates an attempt to export a key derived from a password.
	ErrKeyNotExtractable = errors.Wrap(errors.ErrInvalidInput, "key is not extractable")

	// ErrInvalidPortableKey indicates stored key data could not be parsed or imported.
	ErrInvalidPortableKey = errors.Wrap(errors.ErrInvalidInput, "invalid portable key")

	// ErrCryptoUnavailable indicates the crypto provider cannot be used in this runtime.
	ErrCryptoUnavailable = errors.Wrap(errors.ErrInternal, "crypto provider unavailable")
)
