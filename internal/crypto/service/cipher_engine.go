package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
)

// AEADCipherEngine wraps a CryptoProvider so that every encryption gets a fresh IV.
// Encrypt never accepts an IV from the caller.
type AEADCipherEngine struct {
	provider CryptoProvider
}

// NewAEADCipherEngine creates a CipherEngine backed by provider.
func NewAEADCipherEngine(provider CryptoProvider) *AEADCipherEngine {
	return &AEADCipherEngine{provider: provider}
}

// Encrypt seals plaintext under a new random 12-byte IV.
func (e *AEADCipherEngine) Encrypt(key *cryptoDomain.Key, plaintext []byte) (ciphertext, iv []byte, err error) {
	iv, err = e.provider.RandomBytes(cryptoDomain.IVSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate iv: %w", err)
	}
	if len(iv) != cryptoDomain.IVSize {
		return nil, nil, cryptoDomain.ErrInvalidIVSize
	}

	ciphertext, err = e.provider.Encrypt(key, iv, plaintext)
	if err != nil {
		return nil, nil, err
	}
	return ciphertext, iv, nil
}

// Decrypt opens ciphertext. Every failure becomes ErrDecryptionFailed with no cause attached.
func (e *AEADCipherEngine) Decrypt(key *cryptoDomain.Key, iv, ciphertext []byte) ([]byte, error) {
	plaintext, err := e.provider.Decrypt(key, iv, ciphertext)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
