package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/dreamcrypt/internal/crypto/service"
)

const sealKeySize = 32

// RunGenerateSealKey creates a random local seal key and prints it as a KEY_SEAL_URI
// for gocloud.dev localsecrets. The key is opened once before printing to prove it works.
//
// Local keys suit development only; production deployments should point KEY_SEAL_URI at
// a cloud KMS or Vault (awskms://, gcpkms://, azurekeyvault://, hashivault://).
func RunGenerateSealKey(ctx context.Context, logger *slog.Logger, w io.Writer) error {
	key := make([]byte, sealKeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate seal key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	uri := "base64key://" + base64.URLEncoding.EncodeToString(key)

	sealer, err := cryptoService.OpenKeySealer(ctx, uri)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sealer.Close(); closeErr != nil {
			logger.Warn("failed to close key sealer", slog.Any("error", closeErr))
		}
	}()

	probe := []byte("seal-probe")
	sealed, err := sealer.Seal(ctx, probe)
	if err != nil {
		return fmt.Errorf("failed to verify seal key: %w", err)
	}
	if _, err := sealer.Unseal(ctx, sealed); err != nil {
		return fmt.Errorf("failed to verify seal key: %w", err)
	}

	_, _ = fmt.Fprintln(w, "# Local key sealing (development only)")
	_, _ = fmt.Fprintln(w, "# Copy this variable to your .env file; losing it makes every stored user key unreadable")
	_, _ = fmt.Fprintf(w, "KEY_SEAL_URI=\"%s\"\n", uri)
	return nil
}
