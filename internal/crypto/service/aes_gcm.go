package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
)

// AESGCMProvider implements CryptoProvider with AES-256-GCM, PBKDF2-HMAC-SHA256 and crypto/rand.
//
// Security properties:
//   - 256-bit keys
//   - 12-byte nonce supplied by the caller, never reused by CipherEngine
//   - 16-byte authentication tag appended to the ciphertext
//
// The provider is stateless and safe for concurrent use.
type AESGCMProvider struct{}

// NewAESGCMProvider creates a new AESGCMProvider.
func NewAESGCMProvider() *AESGCMProvider {
	return &AESGCMProvider{}
}

// GenerateKey returns a new random, extractable AES-256 key.
func (p *AESGCMProvider) GenerateKey() (*cryptoDomain.Key, error) {
	material, err := p.RandomBytes(cryptoDomain.KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	defer cryptoDomain.Zero(material)

	return cryptoDomain.NewKey(material, true)
}

// ExportKey returns the portable form of key. Password-derived keys cannot be exported.
func (p *AESGCMProvider) ExportKey(key *cryptoDomain.Key) (cryptoDomain.PortableKey, error) {
	if key == nil || len(key.Material) != cryptoDomain.KeySize {
		return cryptoDomain.PortableKey{}, cryptoDomain.ErrInvalidKeySize
	}
	if !key.Extractable {
		return cryptoDomain.PortableKey{}, cryptoDomain.ErrKeyNotExtractable
	}
	return cryptoDomain.NewPortableKey(key.Material), nil
}

// ImportKey validates a portable key and returns it as live key material.
func (p *AESGCMProvider) ImportKey(pk cryptoDomain.PortableKey) (*cryptoDomain.Key, error) {
	if err := pk.Validate(); err != nil {
		return nil, err
	}

	material, err := pk.Material()
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(material)

	return cryptoDomain.NewKey(material, pk.Ext)
}

// DeriveKey derives a non-extractable AES-256 key with PBKDF2-HMAC-SHA256.
func (p *AESGCMProvider) DeriveKey(password, salt []byte, iterations int) (*cryptoDomain.Key, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("invalid iteration count: %d", iterations)
	}

	material := pbkdf2.Key(password, salt, iterations, cryptoDomain.KeySize, sha256.New)
	defer cryptoDomain.Zero(material)

	return cryptoDomain.NewKey(material, false)
}

// Encrypt seals plaintext with AES-256-GCM. The returned ciphertext has the tag appended.
func (p *AESGCMProvider) Encrypt(key *cryptoDomain.Key, iv, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key, iv)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, iv, plaintext, nil), nil
}

// Decrypt opens an AES-256-GCM ciphertext, verifying its tag.
func (p *AESGCMProvider) Decrypt(key *cryptoDomain.Key, iv, ciphertext []byte) ([]byte, error) {
	aead, err := newGCM(key, iv)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// RandomBytes returns n bytes read from crypto/rand.
func (p *AESGCMProvider) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}

// Available always reports true: every primitive comes from the Go standard library and x/crypto.
func (p *AESGCMProvider) Available() bool {
	return true
}

func newGCM(key *cryptoDomain.Key, iv []byte) (cipher.AEAD, error) {
	if key == nil || len(key.Material) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	if len(iv) != cryptoDomain.IVSize {
		return nil, cryptoDomain.ErrInvalidIVSize
	}

	block, err := aes.NewCipher(key.Material)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}
