package usecase

import (
	"context"
	"encoding/base64"
	"log/slog"

	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/dreamcrypt/internal/crypto/service"
	"github.com/allisson/dreamcrypt/internal/errors"
	keystoreDomain "github.com/allisson/dreamcrypt/internal/keystore/domain"
)

// keyStore implements KeyStore on top of a Storage backend.
//
// Concurrent first-use calls for the same user inside this process share one key
// creation. Across processes the storage entry is last-writer-wins.
type keyStore struct {
	storage  Storage
	provider cryptoService.CryptoProvider
	sealer   cryptoService.KeySealer
	prefix   string
	logger   *slog.Logger
	group    singleflight.Group
}

// GetOrCreateUserKey loads the user's portable key or creates one when none is stored.
func (k *keyStore) GetOrCreateUserKey(ctx context.Context, userID string) (*cryptoDomain.Key, error) {
	storageKey := keystoreDomain.StorageKey(k.prefix, userID)

	pk, err := k.load(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, keystoreDomain.ErrEntryNotFound) {
			k.logger.Error("failed to load user key", slog.String("storage_key", storageKey), slog.Any("error", err))
			return nil, cryptoDomain.ErrKeyManagement
		}

		// Callers joining the group wait on this creation, so it must outlive the first caller.
		createCtx := context.WithoutCancel(ctx)
		v, err, _ := k.group.Do(storageKey, func() (any, error) {
			// A caller that finished creating the key may have just released the group.
			if pk, err := k.load(createCtx, storageKey); err == nil {
				return pk, nil
			}
			return k.create(createCtx, storageKey)
		})
		if err != nil {
			k.logger.Error("failed to create user key", slog.String("storage_key", storageKey), slog.Any("error", err))
			return nil, cryptoDomain.ErrKeyManagement
		}
		pk = v.(cryptoDomain.PortableKey)
		k.logger.Debug("user key ready", slog.String("storage_key", storageKey))
	}

	key, err := k.provider.ImportKey(pk)
	if err != nil {
		k.logger.Error("failed to import user key", slog.String("storage_key", storageKey), slog.Any("error", err))
		return nil, cryptoDomain.ErrKeyManagement
	}
	return key, nil
}

// ClearUserKeys removes the stored device key for userID.
func (k *keyStore) ClearUserKeys(ctx context.Context, userID string) error {
	storageKey := keystoreDomain.StorageKey(k.prefix, userID)

	if err := k.storage.Remove(ctx, storageKey); err != nil {
		k.logger.Error("failed to clear user key", slog.String("storage_key", storageKey), slog.Any("error", err))
		return cryptoDomain.ErrKeyManagement
	}
	return nil
}

func (k *keyStore) load(ctx context.Context, storageKey string) (cryptoDomain.PortableKey, error) {
	value, err := k.storage.Get(ctx, storageKey)
	if err != nil {
		return cryptoDomain.PortableKey{}, err
	}

	data := []byte(value)
	if k.sealer != nil {
		sealed, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return cryptoDomain.PortableKey{}, errors.Wrap(err, "failed to decode sealed key")
		}
		data, err = k.sealer.Unseal(ctx, sealed)
		if err != nil {
			return cryptoDomain.PortableKey{}, errors.Wrap(err, "failed to unseal key")
		}
		defer cryptoDomain.Zero(data)
	}

	return cryptoDomain.ParsePortableKey(data)
}

func (k *keyStore) create(ctx context.Context, storageKey string) (cryptoDomain.PortableKey, error) {
	key, err := k.provider.GenerateKey()
	if err != nil {
		return cryptoDomain.PortableKey{}, err
	}
	defer key.Destroy()

	pk, err := k.provider.ExportKey(key)
	if err != nil {
		return cryptoDomain.PortableKey{}, err
	}

	data, err := pk.Marshal()
	if err != nil {
		return cryptoDomain.PortableKey{}, err
	}

	value := string(data)
	if k.sealer != nil {
		sealed, err := k.sealer.Seal(ctx, data)
		if err != nil {
			return cryptoDomain.PortableKey{}, errors.Wrap(err, "failed to seal key")
		}
		value = base64.StdEncoding.EncodeToString(sealed)
	}
	cryptoDomain.Zero(data)

	if err := k.storage.Set(ctx, storageKey, value); err != nil {
		return cryptoDomain.PortableKey{}, err
	}
	return pk, nil
}

// NewKeyStore creates a KeyStore. When sealer is nil portable keys are stored as plain JSON,
// otherwise as base64 of the sealed JSON.
func NewKeyStore(
	storage Storage,
	provider cryptoService.CryptoProvider,
	sealer cryptoService.KeySealer,
	prefix string,
	logger *slog.Logger,
) KeyStore {
	if prefix == "" {
		prefix = cryptoDomain.DefaultKeyStoragePrefix
	}
	return &keyStore{
		storage:  storage,
		provider: provider,
		sealer:   sealer,
		prefix:   prefix,
		logger:   logger,
	}
}
