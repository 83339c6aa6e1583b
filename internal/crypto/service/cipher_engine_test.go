package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
)

type failingRandomProvider struct {
	*AESGCMProvider
}

func (failingRandomProvider) RandomBytes(int) ([]byte, error) {
	return nil, errors.New("entropy exhausted")
}

func TestAEADCipherEngine(t *testing.T) {
	provider := NewAESGCMProvider()
	engine := NewAEADCipherEngine(provider)
	key, err := provider.GenerateKey()
	require.NoError(t, err)

	t.Run("Success_RoundTrip", func(t *testing.T) {
		ciphertext, iv, err := engine.Encrypt(key, []byte("dream"))
		require.NoError(t, err)
		assert.Len(t, iv, cryptoDomain.IVSize)

		plaintext, err := engine.Decrypt(key, iv, ciphertext)
		require.NoError(t, err)
		assert.Equal(t, []byte("dream"), plaintext)
	})

	t.Run("Success_FreshIVPerCall", func(t *testing.T) {
		c1, iv1, err := engine.Encrypt(key, []byte("same"))
		require.NoError(t, err)
		c2, iv2, err := engine.Encrypt(key, []byte("same"))
		require.NoError(t, err)

		assert.NotEqual(t, iv1, iv2)
		assert.NotEqual(t, c1, c2)
	})

	t.Run("Error_DecryptionFailedIsGeneric", func(t *testing.T) {
		ciphertext, iv, err := engine.Encrypt(key, []byte("dream"))
		require.NoError(t, err)
		ciphertext[len(ciphertext)-1] ^= 0x01

		_, err = engine.Decrypt(key, iv, ciphertext)
		assert.Equal(t, cryptoDomain.ErrDecryptionFailed, err)
	})

	t.Run("Error_RandomFailure", func(t *testing.T) {
		failing := NewAEADCipherEngine(failingRandomProvider{provider})

		_, _, err := failing.Encrypt(key, []byte("dream"))
		assert.ErrorContains(t, err, "entropy exhausted")
	})
}

func TestPBKDF2KeyDeriver(t *testing.T) {
	deriver := NewPBKDF2KeyDeriver(NewAESGCMProvider())
	salt := make([]byte, cryptoDomain.SaltSize)

	k1, err := deriver.Derive("correct horse", salt)
	require.NoError(t, err)
	k2, err := deriver.Derive("correct horse", salt)
	require.NoError(t, err)
	k3, err := deriver.Derive("battery staple", salt)
	require.NoError(t, err)

	assert.Equal(t, k1.Material, k2.Material)
	assert.NotEqual(t, k1.Material, k3.Material)
	assert.False(t, k1.Extractable)
}
