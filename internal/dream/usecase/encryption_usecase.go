package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/dreamcrypt/internal/crypto/service"
	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
	keystoreUsecase "github.com/allisson/dreamcrypt/internal/keystore/usecase"
)

const contentField = "content"

// encryptionUseCase implements EncryptionUseCase. It holds no per-user state.
type encryptionUseCase struct {
	provider cryptoService.CryptoProvider
	keyStore keystoreUsecase.KeyStore
	deriver  cryptoService.KeyDeriver
	engine   cryptoService.CipherEngine
	codec    cryptoService.Codec
	logger   *slog.Logger
}

// EncryptData serializes data and seals it under a fresh IV and salt.
func (e *encryptionUseCase) EncryptData(
	ctx context.Context,
	data any,
	userID, password string,
) (*cryptoDomain.Envelope, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		e.logger.Error("failed to serialize data", slog.String("user_id", userID), slog.Any("error", err))
		return nil, cryptoDomain.ErrEncryptionFailed
	}
	defer cryptoDomain.Zero(plaintext)

	salt, err := e.provider.RandomBytes(cryptoDomain.SaltSize)
	if err != nil || len(salt) != cryptoDomain.SaltSize {
		e.logger.Error("failed to generate salt", slog.String("user_id", userID), slog.Any("error", err))
		return nil, cryptoDomain.ErrEncryptionFailed
	}

	key, err := e.resolveKey(ctx, userID, password, salt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	ciphertext, iv, err := e.engine.Encrypt(key, plaintext)
	if err != nil {
		e.logger.Error("failed to encrypt data", slog.String("user_id", userID), slog.Any("error", err))
		return nil, cryptoDomain.ErrEncryptionFailed
	}

	return &cryptoDomain.Envelope{
		EncryptedContent: e.codec.Encode(ciphertext),
		IV:               e.codec.Encode(iv),
		Salt:             e.codec.Encode(salt),
		Timestamp:        time.Now().UnixMilli(),
		Version:          cryptoDomain.FormatVersion,
	}, nil
}

// DecryptData checks the version, opens the envelope and decodes the JSON payload.
func (e *encryptionUseCase) DecryptData(
	ctx context.Context,
	envelope *cryptoDomain.Envelope,
	userID, password string,
) (any, error) {
	if envelope == nil || !envelope.SupportedVersion() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	ciphertext, err := e.codec.Decode(envelope.EncryptedContent)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	iv, err := e.codec.Decode(envelope.IV)
	if err != nil || len(iv) != cryptoDomain.IVSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	salt, err := e.codec.Decode(envelope.Salt)
	if err != nil || len(salt) != cryptoDomain.SaltSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	key, err := e.resolveKey(ctx, userID, password, salt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	plaintext, err := e.engine.Decrypt(key, iv, ciphertext)
	if err != nil {
		e.logger.Debug("decryption failed", slog.String("user_id", userID))
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	defer cryptoDomain.Zero(plaintext)

	if len(plaintext) == 0 {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	var data any
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return data, nil
}

// EncryptContent encrypts a single text body.
func (e *encryptionUseCase) EncryptContent(
	ctx context.Context,
	content, userID, password string,
) (*cryptoDomain.Envelope, error) {
	return e.EncryptData(ctx, map[string]any{contentField: content}, userID, password)
}

// DecryptContent decrypts an envelope produced by EncryptContent.
func (e *encryptionUseCase) DecryptContent(
	ctx context.Context,
	envelope *cryptoDomain.Envelope,
	userID, password string,
) (string, error) {
	data, err := e.DecryptData(ctx, envelope, userID, password)
	if err != nil {
		return "", err
	}

	obj, ok := data.(map[string]any)
	if !ok {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	content, ok := obj[contentField].(string)
	if !ok {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return content, nil
}

// EncryptDream encrypts everything except the record's metadata.
func (e *encryptionUseCase) EncryptDream(
	ctx context.Context,
	record dreamDomain.Record,
	userID, password string,
) (*dreamDomain.EncryptedDream, error) {
	metadata, sensitive, err := record.Split()
	if err != nil {
		return nil, err
	}

	envelope, err := e.EncryptData(ctx, sensitive, userID, password)
	if err != nil {
		return nil, err
	}

	return &dreamDomain.EncryptedDream{
		ID:            record.ID(),
		Metadata:      metadata,
		EncryptedData: *envelope,
	}, nil
}

// DecryptDream decrypts the sensitive part and merges it back with the metadata.
func (e *encryptionUseCase) DecryptDream(
	ctx context.Context,
	dream *dreamDomain.EncryptedDream,
	userID, password string,
) (dreamDomain.Record, error) {
	if dream == nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	data, err := e.DecryptData(ctx, &dream.EncryptedData, userID, password)
	if err != nil {
		return nil, err
	}

	sensitive, ok := data.(map[string]any)
	if !ok {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return dreamDomain.Merge(dream.Metadata, sensitive), nil
}

// ChangeUserPassword round-trips a probe payload under oldPassword.
// newPassword is only validated; previously stored envelopes are not migrated.
func (e *encryptionUseCase) ChangeUserPassword(
	ctx context.Context,
	userID, oldPassword, newPassword string,
) (bool, error) {
	if oldPassword == "" || newPassword == "" {
		return false, dreamDomain.ErrInvalidPassword
	}

	probe := map[string]any{"test": "password_verification", "nonce": uuid.NewString()}

	envelope, err := e.EncryptData(ctx, probe, userID, oldPassword)
	if err != nil {
		return false, err
	}

	decrypted, err := e.DecryptData(ctx, envelope, userID, oldPassword)
	if err != nil {
		e.logger.Warn("password verification failed", slog.String("user_id", userID))
		return false, nil
	}
	return sameJSON(probe, decrypted), nil
}

// TestEncryption round-trips a diagnostic payload under the device key.
func (e *encryptionUseCase) TestEncryption(ctx context.Context, userID string) bool {
	payload := map[string]any{
		"test":      "encryption_test",
		"nonce":     uuid.NewString(),
		"timestamp": time.Now().UnixMilli(),
	}

	envelope, err := e.EncryptData(ctx, payload, userID, "")
	if err != nil {
		e.logger.Warn("encryption self-test failed", slog.String("user_id", userID), slog.Any("error", err))
		return false
	}

	decrypted, err := e.DecryptData(ctx, envelope, userID, "")
	if err != nil {
		e.logger.Warn("encryption self-test failed", slog.String("user_id", userID), slog.Any("error", err))
		return false
	}
	return sameJSON(payload, decrypted)
}

// IsEncrypted reports whether value looks like an Envelope.
func (e *encryptionUseCase) IsEncrypted(value any) bool {
	return cryptoDomain.IsEncrypted(value)
}

// EncryptionInfo returns static capability information.
func (e *encryptionUseCase) EncryptionInfo() dreamDomain.EncryptionInfo {
	return dreamDomain.EncryptionInfo{
		Algorithm:       string(cryptoDomain.AESGCM),
		KeySize:         cryptoDomain.KeySize * 8,
		Version:         cryptoDomain.FormatVersion,
		CryptoAvailable: e.provider.Available(),
	}
}

// ClearUserKeys erases the user's device key.
func (e *encryptionUseCase) ClearUserKeys(ctx context.Context, userID string) error {
	if err := e.keyStore.ClearUserKeys(ctx, userID); err != nil {
		return err
	}
	e.logger.Info("user keys cleared", slog.String("user_id", userID))
	return nil
}

// resolveKey derives a password key when password is set, otherwise loads the device key.
func (e *encryptionUseCase) resolveKey(
	ctx context.Context,
	userID, password string,
	salt []byte,
) (*cryptoDomain.Key, error) {
	if password == "" {
		return e.keyStore.GetOrCreateUserKey(ctx, userID)
	}

	key, err := e.deriver.Derive(password, salt)
	if err != nil {
		e.logger.Error("failed to derive key", slog.String("user_id", userID), slog.Any("error", err))
		return nil, cryptoDomain.ErrKeyManagement
	}
	return key, nil
}

// sameJSON compares a Go value with a decoded JSON value after normalizing the former through JSON.
func sameJSON(original, decoded any) bool {
	data, err := json.Marshal(original)
	if err != nil {
		return false
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return false
	}
	return reflect.DeepEqual(normalized, decoded)
}

// NewEncryptionUseCase creates a new EncryptionUseCase.
func NewEncryptionUseCase(
	provider cryptoService.CryptoProvider,
	keyStore keystoreUsecase.KeyStore,
	deriver cryptoService.KeyDeriver,
	engine cryptoService.CipherEngine,
	codec cryptoService.Codec,
	logger *slog.Logger,
) EncryptionUseCase {
	return &encryptionUseCase{
		provider: provider,
		keyStore: keyStore,
		deriver:  deriver,
		engine:   engine,
		codec:    codec,
		logger:   logger,
	}
}
