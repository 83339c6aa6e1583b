// Package service provides the cryptographic building blocks for dream encryption:
// the CryptoProvider primitives (AES-256-GCM, PBKDF2-HMAC-SHA256, secure random),
// the base64 Codec, the KeyDeriver and CipherEngine wrappers, and optional KMS sealing
// of device keys before they reach storage.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
)

// CryptoProvider abstracts the platform's authenticated encryption and key derivation primitives.
type CryptoProvider interface {
	// GenerateKey returns a fresh random AES-256 key usable for encrypt and decrypt.
	GenerateKey() (*cryptoDomain.Key, error)

	// ExportKey converts an extractable key to its portable form.
	ExportKey(key *cryptoDomain.Key) (cryptoDomain.PortableKey, error)

	// ImportKey converts a portable key back into live key material.
	ImportKey(pk cryptoDomain.PortableKey) (*cryptoDomain.Key, error)

	// DeriveKey runs PBKDF2-HMAC-SHA256 over password and salt. Derived keys are not extractable.
	DeriveKey(password, salt []byte, iterations int) (*cryptoDomain.Key, error)

	// Encrypt seals plaintext with AES-GCM under key and iv; the tag is appended to the ciphertext.
	Encrypt(key *cryptoDomain.Key, iv, plaintext []byte) ([]byte, error)

	// Decrypt opens ciphertext, failing if the tag does not verify.
	Decrypt(key *cryptoDomain.Key, iv, ciphertext []byte) ([]byte, error)

	// RandomBytes returns n cryptographically secure random bytes.
	RandomBytes(n int) ([]byte, error)

	// Available reports whether the primitives are usable in this runtime.
	Available() bool
}

// Codec converts binary values to and from their transportable text form.
type Codec interface {
	Encode(data []byte) string
	Decode(text string) ([]byte, error)
}

// KeyDeriver turns a password and salt into a key for password-gated encryption.
type KeyDeriver interface {
	Derive(password string, salt []byte) (*cryptoDomain.Key, error)
}

// CipherEngine performs authenticated encryption with internally generated nonces.
type CipherEngine interface {
	// Encrypt seals plaintext under a freshly generated IV and returns both.
	Encrypt(key *cryptoDomain.Key, plaintext []byte) (ciphertext, iv []byte, err error)

	// Decrypt opens ciphertext. Any failure is reported as ErrDecryptionFailed.
	Decrypt(key *cryptoDomain.Key, iv, ciphertext []byte) ([]byte, error)
}

// KeySealer protects serialized device keys before they are written to storage.
type KeySealer interface {
	Seal(ctx context.Context, plaintext []byte) ([]byte, error)
	Unseal(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
