package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/dreamcrypt/internal/crypto/service"
	cryptoMocks "github.com/allisson/dreamcrypt/internal/crypto/service/mocks"
	keystoreDomain "github.com/allisson/dreamcrypt/internal/keystore/domain"
	"github.com/allisson/dreamcrypt/internal/keystore/repository/memory"
	"github.com/allisson/dreamcrypt/internal/keystore/usecase/mocks"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLocalSealer(t *testing.T) cryptoService.KeySealer {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	sealer, err := cryptoService.OpenKeySealer(context.Background(), "base64key://"+base64.URLEncoding.EncodeToString(key))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sealer.Close()
	})
	return sealer
}

func TestKeyStore_GetOrCreateUserKey(t *testing.T) {
	ctx := context.Background()
	provider := cryptoService.NewAESGCMProvider()

	t.Run("Success_CreatesAndPersistsOnFirstUse", func(t *testing.T) {
		storage := memory.NewMemoryStorage()
		keyStore := NewKeyStore(storage, provider, nil, "", newTestLogger())

		key, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		require.NoError(t, err)
		defer key.Destroy()

		value, err := storage.Get(ctx, "dream_encryption_key_u1")
		require.NoError(t, err)

		pk, err := cryptoDomain.ParsePortableKey([]byte(value))
		require.NoError(t, err)
		material, err := pk.Material()
		require.NoError(t, err)
		assert.Equal(t, key.Material, material)
	})

	t.Run("Success_ReturnsSameKeyOnSubsequentCalls", func(t *testing.T) {
		storage := memory.NewMemoryStorage()
		keyStore := NewKeyStore(storage, provider, nil, "custom", newTestLogger())

		k1, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		require.NoError(t, err)
		k2, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		require.NoError(t, err)

		assert.Equal(t, k1.Material, k2.Material)
		assert.NotSame(t, k1, k2)
		assert.Equal(t, 1, storage.Len())

		_, err = storage.Get(ctx, "custom_u1")
		assert.NoError(t, err)
	})

	t.Run("Success_DifferentUsersDifferentKeys", func(t *testing.T) {
		keyStore := NewKeyStore(memory.NewMemoryStorage(), provider, nil, "", newTestLogger())

		k1, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		require.NoError(t, err)
		k2, err := keyStore.GetOrCreateUserKey(ctx, "u2")
		require.NoError(t, err)

		assert.NotEqual(t, k1.Material, k2.Material)
	})

	t.Run("Success_SealedStorage", func(t *testing.T) {
		storage := memory.NewMemoryStorage()
		keyStore := NewKeyStore(storage, provider, newLocalSealer(t), "", newTestLogger())

		k1, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		require.NoError(t, err)

		value, err := storage.Get(ctx, "dream_encryption_key_u1")
		require.NoError(t, err)
		assert.False(t, strings.HasPrefix(value, "{"))
		_, err = base64.StdEncoding.DecodeString(value)
		assert.NoError(t, err)

		k2, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, k1.Material, k2.Material)
	})

	t.Run("Success_ConcurrentFirstUseSharesKey", func(t *testing.T) {
		storage := memory.NewMemoryStorage()
		keyStore := NewKeyStore(storage, provider, nil, "", newTestLogger())

		const callers = 20
		keys := make([]*cryptoDomain.Key, callers)
		var wg sync.WaitGroup
		for i := range callers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key, err := keyStore.GetOrCreateUserKey(ctx, "u1")
				assert.NoError(t, err)
				keys[i] = key
			}(i)
		}
		wg.Wait()

		stored, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		require.NoError(t, err)
		for _, key := range keys {
			require.NotNil(t, key)
			assert.Len(t, key.Material, cryptoDomain.KeySize)
		}
		assert.Equal(t, 1, storage.Len())
		assert.Len(t, stored.Material, cryptoDomain.KeySize)
	})

	t.Run("Success_CreationSurvivesCallerCancellation", func(t *testing.T) {
		cancelledCtx, cancel := context.WithCancel(ctx)
		cancel()

		notCancelled := mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil })
		storage := &mocks.MockStorage{}
		storage.On("Get", cancelledCtx, "dream_encryption_key_u1").
			Return("", keystoreDomain.ErrEntryNotFound).
			Once()
		storage.On("Get", notCancelled, "dream_encryption_key_u1").
			Return("", keystoreDomain.ErrEntryNotFound).
			Once()
		storage.On("Set", notCancelled, "dream_encryption_key_u1", mock.AnythingOfType("string")).
			Return(nil).
			Once()

		keyStore := NewKeyStore(storage, provider, nil, "", newTestLogger())

		key, err := keyStore.GetOrCreateUserKey(cancelledCtx, "u1")
		require.NoError(t, err)
		assert.NotNil(t, key)
		storage.AssertExpectations(t)
	})

	t.Run("Error_StorageReadFailure", func(t *testing.T) {
		storage := &mocks.MockStorage{}
		storage.On("Get", ctx, "dream_encryption_key_u1").
			Return("", errors.New("connection refused"))

		keyStore := NewKeyStore(storage, provider, nil, "", newTestLogger())

		_, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		assert.Equal(t, cryptoDomain.ErrKeyManagement, err)
		storage.AssertExpectations(t)
	})

	t.Run("Error_StorageWriteFailure", func(t *testing.T) {
		storage := &mocks.MockStorage{}
		storage.On("Get", mock.Anything, "dream_encryption_key_u1").
			Return("", keystoreDomain.ErrEntryNotFound)
		storage.On("Set", mock.Anything, "dream_encryption_key_u1", mock.AnythingOfType("string")).
			Return(errors.New("quota exceeded"))

		keyStore := NewKeyStore(storage, provider, nil, "", newTestLogger())

		_, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		assert.Equal(t, cryptoDomain.ErrKeyManagement, err)
		storage.AssertExpectations(t)
	})

	t.Run("Error_MalformedStoredKey", func(t *testing.T) {
		storage := memory.NewMemoryStorage()
		require.NoError(t, storage.Set(ctx, "dream_encryption_key_u1", "not-json"))

		keyStore := NewKeyStore(storage, provider, nil, "", newTestLogger())

		_, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		assert.Equal(t, cryptoDomain.ErrKeyManagement, err)

		value, err := storage.Get(ctx, "dream_encryption_key_u1")
		require.NoError(t, err)
		assert.Equal(t, "not-json", value)
	})

	t.Run("Error_GenerateKeyFailure", func(t *testing.T) {
		storage := memory.NewMemoryStorage()
		mockProvider := &cryptoMocks.MockCryptoProvider{}
		mockProvider.On("GenerateKey").Return(nil, errors.New("no entropy"))

		keyStore := NewKeyStore(storage, mockProvider, nil, "", newTestLogger())

		_, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		assert.Equal(t, cryptoDomain.ErrKeyManagement, err)
		assert.Equal(t, 0, storage.Len())
		mockProvider.AssertExpectations(t)
	})

	t.Run("Error_SealFailureLeavesNothingStored", func(t *testing.T) {
		storage := memory.NewMemoryStorage()
		sealer := &cryptoMocks.MockKeySealer{}
		sealer.On("Seal", ctx, mock.Anything).Return(nil, errors.New("kms unavailable"))

		keyStore := NewKeyStore(storage, provider, sealer, "", newTestLogger())

		_, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		assert.Equal(t, cryptoDomain.ErrKeyManagement, err)
		assert.Equal(t, 0, storage.Len())
	})
}

func TestKeyStore_ClearUserKeys(t *testing.T) {
	ctx := context.Background()
	provider := cryptoService.NewAESGCMProvider()

	t.Run("Success_NewKeyAfterClear", func(t *testing.T) {
		storage := memory.NewMemoryStorage()
		keyStore := NewKeyStore(storage, provider, nil, "", newTestLogger())

		before, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		require.NoError(t, err)

		require.NoError(t, keyStore.ClearUserKeys(ctx, "u1"))
		assert.Equal(t, 0, storage.Len())

		after, err := keyStore.GetOrCreateUserKey(ctx, "u1")
		require.NoError(t, err)
		assert.NotEqual(t, before.Material, after.Material)
	})

	t.Run("Success_Idempotent", func(t *testing.T) {
		keyStore := NewKeyStore(memory.NewMemoryStorage(), provider, nil, "", newTestLogger())

		assert.NoError(t, keyStore.ClearUserKeys(ctx, "never-used"))
		assert.NoError(t, keyStore.ClearUserKeys(ctx, "never-used"))
	})

	t.Run("Error_StorageFailure", func(t *testing.T) {
		storage := &mocks.MockStorage{}
		storage.On("Remove", ctx, "dream_encryption_key_u1").Return(errors.New("read-only"))

		keyStore := NewKeyStore(storage, provider, nil, "", newTestLogger())

		err := keyStore.ClearUserKeys(ctx, "u1")
		assert.Equal(t, cryptoDomain.ErrKeyManagement, err)
		storage.AssertExpectations(t)
	})
}
