// Package mocks provides mock implementations of the crypto service interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
)

// MockCryptoProvider is a mock implementation of CryptoProvider for testing.
type MockCryptoProvider struct {
	mock.Mock
}

// GenerateKey mocks the GenerateKey method of CryptoProvider.
func (m *MockCryptoProvider) GenerateKey() (*cryptoDomain.Key, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Key), args.Error(1)
}

// ExportKey mocks the ExportKey method of CryptoProvider.
func (m *MockCryptoProvider) ExportKey(key *cryptoDomain.Key) (cryptoDomain.PortableKey, error) {
	args := m.Called(key)
	return args.Get(0).(cryptoDomain.PortableKey), args.Error(1)
}

// ImportKey mocks the ImportKey method of CryptoProvider.
func (m *MockCryptoProvider) ImportKey(pk cryptoDomain.PortableKey) (*cryptoDomain.Key, error) {
	args := m.Called(pk)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Key), args.Error(1)
}

// DeriveKey mocks the DeriveKey method of CryptoProvider.
func (m *MockCryptoProvider) DeriveKey(password, salt []byte, iterations int) (*cryptoDomain.Key, error) {
	args := m.Called(password, salt, iterations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Key), args.Error(1)
}

// Encrypt mocks the Encrypt method of CryptoProvider.
func (m *MockCryptoProvider) Encrypt(key *cryptoDomain.Key, iv, plaintext []byte) ([]byte, error) {
	args := m.Called(key, iv, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of CryptoProvider.
func (m *MockCryptoProvider) Decrypt(key *cryptoDomain.Key, iv, ciphertext []byte) ([]byte, error) {
	args := m.Called(key, iv, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// RandomBytes mocks the RandomBytes method of CryptoProvider.
func (m *MockCryptoProvider) RandomBytes(n int) ([]byte, error) {
	args := m.Called(n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Available mocks the Available method of CryptoProvider.
func (m *MockCryptoProvider) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockKeySealer is a mock implementation of KeySealer for testing.
type MockKeySealer struct {
	mock.Mock
}

// Seal mocks the Seal method of KeySealer.
func (m *MockKeySealer) Seal(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Unseal mocks the Unseal method of KeySealer.
func (m *MockKeySealer) Unseal(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Close mocks the Close method of KeySealer.
func (m *MockKeySealer) Close() error {
	args := m.Called()
	return args.Error(0)
}
