// Package mocks provides mock implementations of the dream use cases for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
)

// MockEncryptionUseCase is a mock implementation of EncryptionUseCase for testing.
type MockEncryptionUseCase struct {
	mock.Mock
}

// EncryptData mocks the EncryptData method of EncryptionUseCase.
func (m *MockEncryptionUseCase) EncryptData(
	ctx context.Context,
	data any,
	userID, password string,
) (*cryptoDomain.Envelope, error) {
	args := m.Called(ctx, data, userID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Envelope), args.Error(1)
}

// DecryptData mocks the DecryptData method of EncryptionUseCase.
func (m *MockEncryptionUseCase) DecryptData(
	ctx context.Context,
	envelope *cryptoDomain.Envelope,
	userID, password string,
) (any, error) {
	args := m.Called(ctx, envelope, userID, password)
	return args.Get(0), args.Error(1)
}

// EncryptContent mocks the EncryptContent method of EncryptionUseCase.
func (m *MockEncryptionUseCase) EncryptContent(
	ctx context.Context,
	content, userID, password string,
) (*cryptoDomain.Envelope, error) {
	args := m.Called(ctx, content, userID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Envelope), args.Error(1)
}

// DecryptContent mocks the DecryptContent method of EncryptionUseCase.
func (m *MockEncryptionUseCase) DecryptContent(
	ctx context.Context,
	envelope *cryptoDomain.Envelope,
	userID, password string,
) (string, error) {
	args := m.Called(ctx, envelope, userID, password)
	return args.String(0), args.Error(1)
}

// EncryptDream mocks the EncryptDream method of EncryptionUseCase.
func (m *MockEncryptionUseCase) EncryptDream(
	ctx context.Context,
	record dreamDomain.Record,
	userID, password string,
) (*dreamDomain.EncryptedDream, error) {
	args := m.Called(ctx, record, userID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dreamDomain.EncryptedDream), args.Error(1)
}

// DecryptDream mocks the DecryptDream method of EncryptionUseCase.
func (m *MockEncryptionUseCase) DecryptDream(
	ctx context.Context,
	dream *dreamDomain.EncryptedDream,
	userID, password string,
) (dreamDomain.Record, error) {
	args := m.Called(ctx, dream, userID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dreamDomain.Record), args.Error(1)
}

// ChangeUserPassword mocks the ChangeUserPassword method of EncryptionUseCase.
func (m *MockEncryptionUseCase) ChangeUserPassword(
	ctx context.Context,
	userID, oldPassword, newPassword string,
) (bool, error) {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Bool(0), args.Error(1)
}

// TestEncryption mocks the TestEncryption method of EncryptionUseCase.
func (m *MockEncryptionUseCase) TestEncryption(ctx context.Context, userID string) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}

// IsEncrypted mocks the IsEncrypted method of EncryptionUseCase.
func (m *MockEncryptionUseCase) IsEncrypted(value any) bool {
	args := m.Called(value)
	return args.Bool(0)
}

// EncryptionInfo mocks the EncryptionInfo method of EncryptionUseCase.
func (m *MockEncryptionUseCase) EncryptionInfo() dreamDomain.EncryptionInfo {
	args := m.Called()
	return args.Get(0).(dreamDomain.EncryptionInfo)
}

// ClearUserKeys mocks the ClearUserKeys method of EncryptionUseCase.
func (m *MockEncryptionUseCase) ClearUserKeys(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockSettingsUseCase is a mock implementation of SettingsUseCase for testing.
type MockSettingsUseCase struct {
	mock.Mock
}

// Get mocks the Get method of SettingsUseCase.
func (m *MockSettingsUseCase) Get(ctx context.Context, userID string) (*dreamDomain.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dreamDomain.Settings), args.Error(1)
}

// Enable mocks the Enable method of SettingsUseCase.
func (m *MockSettingsUseCase) Enable(ctx context.Context, userID string) (*dreamDomain.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dreamDomain.Settings), args.Error(1)
}

// Disable mocks the Disable method of SettingsUseCase.
func (m *MockSettingsUseCase) Disable(
	ctx context.Context,
	userID string,
	confirmed, clearKeys bool,
) (*dreamDomain.Settings, error) {
	args := m.Called(ctx, userID, confirmed, clearKeys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dreamDomain.Settings), args.Error(1)
}
