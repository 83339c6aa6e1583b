// Package mocks provides mock implementations of the key store interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
)

// MockStorage is a mock implementation of Storage for testing.
type MockStorage struct {
	mock.Mock
}

// Get mocks the Get method of Storage.
func (m *MockStorage) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// Set mocks the Set method of Storage.
func (m *MockStorage) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Remove mocks the Remove method of Storage.
func (m *MockStorage) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockKeyStore is a mock implementation of KeyStore for testing.
type MockKeyStore struct {
	mock.Mock
}

// GetOrCreateUserKey mocks the GetOrCreateUserKey method of KeyStore.
func (m *MockKeyStore) GetOrCreateUserKey(ctx context.Context, userID string) (*cryptoDomain.Key, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Key), args.Error(1)
}

// ClearUserKeys mocks the ClearUserKeys method of KeyStore.
func (m *MockKeyStore) ClearUserKeys(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
