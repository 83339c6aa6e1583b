package app

import (
	"fmt"

	"github.com/allisson/dreamcrypt/internal/config"
	keystoreMemory "github.com/allisson/dreamcrypt/internal/keystore/repository/memory"
	keystoreMySQL "github.com/allisson/dreamcrypt/internal/keystore/repository/mysql"
	keystorePostgreSQL "github.com/allisson/dreamcrypt/internal/keystore/repository/postgresql"
	keystoreUseCase "github.com/allisson/dreamcrypt/internal/keystore/usecase"
)

// Storage returns the key-value storage selected by STORAGE_DRIVER.
func (c *Container) Storage() (keystoreUseCase.Storage, error) {
	var err error
	c.storageInit.Do(func() {
		c.storage, err = c.initStorage()
		if err != nil {
			c.initErrors["storage"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["storage"]; exists {
		return nil, storedErr
	}
	return c.storage, nil
}

// KeyStore returns the per-user device key store.
func (c *Container) KeyStore() (keystoreUseCase.KeyStore, error) {
	var err error
	c.keyStoreInit.Do(func() {
		c.keyStore, err = c.initKeyStore()
		if err != nil {
			c.initErrors["keyStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyStore"]; exists {
		return nil, storedErr
	}
	return c.keyStore, nil
}

func (c *Container) initStorage() (keystoreUseCase.Storage, error) {
	if c.config.StorageDriver == config.StorageDriverMemory {
		c.Logger().Warn("memory storage selected, user keys are lost on restart")
		return keystoreMemory.NewMemoryStorage(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for storage: %w", err)
	}

	switch c.config.StorageDriver {
	case config.StorageDriverPostgres:
		return keystorePostgreSQL.NewPostgreSQLStorage(db), nil
	case config.StorageDriverMySQL:
		return keystoreMySQL.NewMySQLStorage(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", c.config.StorageDriver)
	}
}

func (c *Container) initKeyStore() (keystoreUseCase.KeyStore, error) {
	storage, err := c.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage for key store: %w", err)
	}

	sealer, err := c.KeySealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get key sealer for key store: %w", err)
	}

	return keystoreUseCase.NewKeyStore(
		storage,
		c.CryptoProvider(),
		sealer,
		c.config.KeyStoragePrefix,
		c.Logger(),
	), nil
}
