package service

import (
	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
)

// PBKDF2KeyDeriver derives password keys with a fixed iteration count.
//
// Nothing derived here is ever persisted: the key lives for one encrypt or decrypt
// call and is re-derived from the password next time.
type PBKDF2KeyDeriver struct {
	provider CryptoProvider
}

// NewPBKDF2KeyDeriver creates a KeyDeriver backed by provider.
func NewPBKDF2KeyDeriver(provider CryptoProvider) *PBKDF2KeyDeriver {
	return &PBKDF2KeyDeriver{provider: provider}
}

// Derive returns the key for (password, salt). Identical inputs always yield
// interchangeable keys; a different salt yields a different key.
func (d *PBKDF2KeyDeriver) Derive(password string, salt []byte) (*cryptoDomain.Key, error) {
	return d.provider.DeriveKey([]byte(password), salt, cryptoDomain.PBKDF2Iterations)
}
