package app

import (
	"fmt"

	cryptoService "github.com/allisson/dreamcrypt/internal/crypto/service"
)

// CryptoProvider returns the AES-256-GCM provider.
func (c *Container) CryptoProvider() *cryptoService.AESGCMProvider {
	c.cryptoProviderInit.Do(func() {
		c.cryptoProvider = cryptoService.NewAESGCMProvider()
	})
	return c.cryptoProvider
}

// Codec returns the envelope field codec.
func (c *Container) Codec() cryptoService.Codec {
	c.codecInit.Do(func() {
		c.codec = cryptoService.NewBase64Codec()
	})
	return c.codec
}

// KeyDeriver returns the PBKDF2 password key deriver.
func (c *Container) KeyDeriver() cryptoService.KeyDeriver {
	c.keyDeriverInit.Do(func() {
		c.keyDeriver = cryptoService.NewPBKDF2KeyDeriver(c.CryptoProvider())
	})
	return c.keyDeriver
}

// CipherEngine returns the AEAD cipher engine.
func (c *Container) CipherEngine() cryptoService.CipherEngine {
	c.cipherEngineInit.Do(func() {
		c.cipherEngine = cryptoService.NewAEADCipherEngine(c.CryptoProvider())
	})
	return c.cipherEngine
}

// KeySealer returns the sealer for stored user keys, or nil when KEY_SEAL_URI is unset.
func (c *Container) KeySealer() (cryptoService.KeySealer, error) {
	var err error
	c.keySealerInit.Do(func() {
		c.keySealer, err = c.initKeySealer()
		if err != nil {
			c.initErrors["keySealer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keySealer"]; exists {
		return nil, storedErr
	}
	return c.keySealer, nil
}

func (c *Container) initKeySealer() (cryptoService.KeySealer, error) {
	if c.config.KeySealURI == "" {
		return nil, nil
	}

	sealer, err := cryptoService.OpenKeySealer(c.ctx, c.config.KeySealURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open key sealer: %w", err)
	}

	c.Logger().Info("user keys are sealed before storage")
	return sealer, nil
}
