package service

import (
	"context"
	"errors"
	"fmt"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// OpenKeySealer opens a KeySealer for sealURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func OpenKeySealer(ctx context.Context, sealURI string) (KeySealer, error) {
	if sealURI == "" {
		return nil, errors.New("key seal URI is required")
	}

	keeper, err := secrets.OpenKeeper(ctx, sealURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open key sealer: %w", err)
	}
	return NewKeeperKeySealer(keeper), nil
}

// KeeperKeySealer seals device keys with a gocloud.dev secrets keeper.
type KeeperKeySealer struct {
	keeper *secrets.Keeper
}

// NewKeeperKeySealer wraps keeper.
func NewKeeperKeySealer(keeper *secrets.Keeper) *KeeperKeySealer {
	return &KeeperKeySealer{keeper: keeper}
}

// Seal encrypts plaintext with the keeper.
func (s *KeeperKeySealer) Seal(ctx context.Context, plaintext []byte) ([]byte, error) {
	return s.keeper.Encrypt(ctx, plaintext)
}

// Unseal decrypts ciphertext with the keeper.
func (s *KeeperKeySealer) Unseal(ctx context.Context, ciphertext []byte) ([]byte, error) {
	return s.keeper.Decrypt(ctx, ciphertext)
}

// Close releases the keeper.
func (s *KeeperKeySealer) Close() error {
	return s.keeper.Close()
}
