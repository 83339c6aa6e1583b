package app

import (
	"fmt"

	dreamHTTP "github.com/allisson/dreamcrypt/internal/dream/http"
	dreamUseCase "github.com/allisson/dreamcrypt/internal/dream/usecase"
)

// EncryptionUseCase returns the dream encryption facade.
func (c *Container) EncryptionUseCase() (dreamUseCase.EncryptionUseCase, error) {
	var err error
	c.encryptionUseCaseInit.Do(func() {
		c.encryptionUseCase, err = c.initEncryptionUseCase()
		if err != nil {
			c.initErrors["encryptionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["encryptionUseCase"]; exists {
		return nil, storedErr
	}
	return c.encryptionUseCase, nil
}

// SettingsUseCase returns the encryption settings state machine.
func (c *Container) SettingsUseCase() (dreamUseCase.SettingsUseCase, error) {
	var err error
	c.settingsUseCaseInit.Do(func() {
		c.settingsUseCase, err = c.initSettingsUseCase()
		if err != nil {
			c.initErrors["settingsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingsUseCase"]; exists {
		return nil, storedErr
	}
	return c.settingsUseCase, nil
}

// EncryptionHandler returns the encryption HTTP handler.
func (c *Container) EncryptionHandler() (*dreamHTTP.EncryptionHandler, error) {
	var err error
	c.encryptionHandlerInit.Do(func() {
		c.encryptionHandler, err = c.initEncryptionHandler()
		if err != nil {
			c.initErrors["encryptionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["encryptionHandler"]; exists {
		return nil, storedErr
	}
	return c.encryptionHandler, nil
}

// SettingsHandler returns the settings HTTP handler.
func (c *Container) SettingsHandler() (*dreamHTTP.SettingsHandler, error) {
	var err error
	c.settingsHandlerInit.Do(func() {
		c.settingsHandler, err = c.initSettingsHandler()
		if err != nil {
			c.initErrors["settingsHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingsHandler"]; exists {
		return nil, storedErr
	}
	return c.settingsHandler, nil
}

func (c *Container) initEncryptionUseCase() (dreamUseCase.EncryptionUseCase, error) {
	keyStore, err := c.KeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store for encryption use case: %w", err)
	}

	baseUseCase := dreamUseCase.NewEncryptionUseCase(
		c.CryptoProvider(),
		keyStore,
		c.KeyDeriver(),
		c.CipherEngine(),
		c.Codec(),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for encryption use case: %w", err)
		}
		return dreamUseCase.NewEncryptionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initSettingsUseCase() (dreamUseCase.SettingsUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for settings use case: %w", err)
	}

	storage, err := c.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage for settings use case: %w", err)
	}

	encryption, err := c.EncryptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption use case for settings use case: %w", err)
	}

	return dreamUseCase.NewSettingsUseCase(txManager, storage, encryption, c.Logger()), nil
}

func (c *Container) initEncryptionHandler() (*dreamHTTP.EncryptionHandler, error) {
	useCase, err := c.EncryptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption use case for handler: %w", err)
	}
	return dreamHTTP.NewEncryptionHandler(useCase, c.Logger()), nil
}

func (c *Container) initSettingsHandler() (*dreamHTTP.SettingsHandler, error) {
	useCase, err := c.SettingsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings use case for handler: %w", err)
	}
	return dreamHTTP.NewSettingsHandler(useCase, c.Logger()), nil
}
