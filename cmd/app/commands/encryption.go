package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
	dreamUseCase "github.com/allisson/dreamcrypt/internal/dream/usecase"
)

// RunEncrypt reads one JSON document from io.Reader, encrypts it for userID and writes the
// envelope as JSON. An empty password selects the user's device key.
func RunEncrypt(
	ctx context.Context,
	encryptionUseCase dreamUseCase.EncryptionUseCase,
	logger *slog.Logger,
	io IOTuple,
	userID string,
	password string,
) error {
	if userID == "" {
		return errors.New("--user is required")
	}

	var data any
	if err := readJSON(io.Reader, &data); err != nil {
		return err
	}

	envelope, err := encryptionUseCase.EncryptData(ctx, data, userID, password)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	logger.Debug("data encrypted", slog.String("user_id", userID), slog.Bool("password_mode", password != ""))
	return writeJSON(io.Writer, envelope)
}

// RunDecrypt reads an envelope from io.Reader, decrypts it for userID and writes the
// recovered JSON document.
func RunDecrypt(
	ctx context.Context,
	encryptionUseCase dreamUseCase.EncryptionUseCase,
	logger *slog.Logger,
	io IOTuple,
	userID string,
	password string,
) error {
	if userID == "" {
		return errors.New("--user is required")
	}

	var envelope cryptoDomain.Envelope
	if err := readJSON(io.Reader, &envelope); err != nil {
		return err
	}

	data, err := encryptionUseCase.DecryptData(ctx, &envelope, userID, password)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}

	logger.Debug("data decrypted", slog.String("user_id", userID), slog.Bool("password_mode", password != ""))
	return writeJSON(io.Writer, data)
}

// RunSelfTest round-trips a probe through the user's device key. A failing self-test is
// reported as an error so the process exits non-zero.
func RunSelfTest(
	ctx context.Context,
	encryptionUseCase dreamUseCase.EncryptionUseCase,
	logger *slog.Logger,
	io IOTuple,
	userID string,
	format string,
) error {
	if userID == "" {
		return errors.New("--user is required")
	}

	success := encryptionUseCase.TestEncryption(ctx, userID)
	logger.Info("encryption self-test finished", slog.String("user_id", userID), slog.Bool("success", success))

	if format == "json" {
		if err := writeJSON(io.Writer, map[string]any{"userId": userID, "success": success}); err != nil {
			return err
		}
	} else {
		status := "PASSED"
		if !success {
			status = "FAILED"
		}
		_, _ = fmt.Fprintf(io.Writer, "Encryption self-test for %s: %s\n", userID, status)
	}

	if !success {
		return dreamDomain.ErrEncryptionSelfTestFailed
	}
	return nil
}

// RunInfo prints the algorithm parameters and whether the crypto provider is usable.
func RunInfo(encryptionUseCase dreamUseCase.EncryptionUseCase, io IOTuple, format string) error {
	info := encryptionUseCase.EncryptionInfo()

	if format == "json" {
		return writeJSON(io.Writer, info)
	}

	_, _ = fmt.Fprintf(io.Writer, "Algorithm:        %s\n", info.Algorithm)
	_, _ = fmt.Fprintf(io.Writer, "Key size:         %d bits\n", info.KeySize)
	_, _ = fmt.Fprintf(io.Writer, "Envelope version: %s\n", info.Version)
	_, _ = fmt.Fprintf(io.Writer, "Crypto available: %t\n", info.CryptoAvailable)
	return nil
}

// RunClearKeys erases the user's device key. Anything encrypted with it becomes
// permanently unreadable.
func RunClearKeys(
	ctx context.Context,
	encryptionUseCase dreamUseCase.EncryptionUseCase,
	logger *slog.Logger,
	io IOTuple,
	userID string,
) error {
	if userID == "" {
		return errors.New("--user is required")
	}

	if err := encryptionUseCase.ClearUserKeys(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear user keys: %w", err)
	}

	logger.Info("user keys cleared", slog.String("user_id", userID))
	_, _ = fmt.Fprintf(io.Writer, "Keys cleared for %s\n", userID)
	return nil
}
