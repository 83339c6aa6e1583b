package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/allisson/dreamcrypt/internal/database"
	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
	apperrors "github.com/allisson/dreamcrypt/internal/errors"
	keystoreDomain "github.com/allisson/dreamcrypt/internal/keystore/domain"
	keystoreUsecase "github.com/allisson/dreamcrypt/internal/keystore/usecase"
)

// settingsUseCase persists encryption settings as JSON next to the device keys.
type settingsUseCase struct {
	txManager  database.TxManager
	storage    keystoreUsecase.Storage
	encryption EncryptionUseCase
	logger     *slog.Logger
}

// Get loads the user's settings, defaulting to disabled.
func (s *settingsUseCase) Get(ctx context.Context, userID string) (*dreamDomain.Settings, error) {
	value, err := s.storage.Get(ctx, settingsStorageKey(userID))
	if err != nil {
		if apperrors.Is(err, keystoreDomain.ErrEntryNotFound) {
			return dreamDomain.NewSettings(userID), nil
		}
		return nil, apperrors.Wrap(err, "failed to load encryption settings")
	}

	var settings dreamDomain.Settings
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode encryption settings")
	}
	return &settings, nil
}

// Enable moves the user through pending_password_setup to enabled, gated by the self-test.
func (s *settingsUseCase) Enable(ctx context.Context, userID string) (*dreamDomain.Settings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	// A setup interrupted after BeginSetup is resumed rather than rejected.
	if settings.State != dreamDomain.StatePendingPasswordSetup {
		if err := settings.BeginSetup(); err != nil {
			return nil, err
		}
		if err := s.save(ctx, settings); err != nil {
			return nil, err
		}
	}

	passed := s.encryption.TestEncryption(ctx, userID)
	if err := settings.CompleteSetup(passed); err != nil {
		return nil, err
	}
	if err := s.save(ctx, settings); err != nil {
		return nil, err
	}

	if !passed {
		s.logger.Warn("encryption not enabled", slog.String("user_id", userID))
		return nil, dreamDomain.ErrEncryptionSelfTestFailed
	}

	s.logger.Info("encryption enabled", slog.String("user_id", userID))
	return settings, nil
}

// Disable turns encryption off. With clearKeys the device key is erased in the same transaction.
func (s *settingsUseCase) Disable(
	ctx context.Context,
	userID string,
	confirmed, clearKeys bool,
) (*dreamDomain.Settings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := settings.Disable(confirmed); err != nil {
		return nil, err
	}

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.save(txCtx, settings); err != nil {
			return err
		}
		if clearKeys {
			return s.encryption.ClearUserKeys(txCtx, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("encryption disabled", slog.String("user_id", userID), slog.Bool("keys_cleared", clearKeys))
	return settings, nil
}

func (s *settingsUseCase) save(ctx context.Context, settings *dreamDomain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode encryption settings")
	}
	if err := s.storage.Set(ctx, settingsStorageKey(settings.UserID), string(data)); err != nil {
		return apperrors.Wrap(err, "failed to save encryption settings")
	}
	return nil
}

func settingsStorageKey(userID string) string {
	return keystoreDomain.StorageKey(dreamDomain.SettingsStoragePrefix, userID)
}

// NewSettingsUseCase creates a new SettingsUseCase.
func NewSettingsUseCase(
	txManager database.TxManager,
	storage keystoreUsecase.Storage,
	encryption EncryptionUseCase,
	logger *slog.Logger,
) SettingsUseCase {
	return &settingsUseCase{
		txManager:  txManager,
		storage:    storage,
		encryption: encryption,
		logger:     logger,
	}
}
