package domain

// Algorithm represents the authenticated cipher used to seal dream data.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM: 256-bit key, 12-byte nonce, 16-byte tag appended to the ciphertext.
	AESGCM Algorithm = "AES-GCM"
)

// Sizes and parameters of the envelope format. Changing any of them requires a new FormatVersion.
const (
	// KeySize is the symmetric key length in bytes (AES-256).
	KeySize = 32

	// IVSize is the GCM nonce length in bytes (96 bits).
	IVSize = 12

	// SaltSize is the PBKDF2 salt length in bytes (128 bits).
	SaltSize = 16

	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16

	// PBKDF2Iterations is the fixed PBKDF2 work factor for password mode.
	PBKDF2Iterations = 100000

	// PBKDF2Hash names the PRF used by PBKDF2.
	PBKDF2Hash = "SHA-256"

	// FormatVersion tags every envelope produced by this package.
	FormatVersion = "1.0"

	// DefaultKeyStoragePrefix is prepended to user IDs to build key storage entries.
	DefaultKeyStoragePrefix = "dream_encryption_key"
)
