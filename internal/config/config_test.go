package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
				assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, cryptoDomain.DefaultKeyStoragePrefix, cfg.KeyStoragePrefix)
				assert.Empty(t, cfg.KeySealURI)
				assert.True(t, cfg.RateLimitEnabled)
				assert.Equal(t, 2.0, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 5, cfg.RateLimitBurst)
				assert.False(t, cfg.CORSEnabled)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "dreamcrypt", cfg.MetricsNamespace)
				assert.Equal(t, 8081, cfg.MetricsPort)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST":              "localhost",
				"SERVER_PORT":              "9090",
				"SHUTDOWN_TIMEOUT_SECONDS": "30",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
				assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
			},
		},
		{
			name: "load custom storage configuration",
			envVars: map[string]string{
				"STORAGE_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":         "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS":      "50",
				"DB_MAX_IDLE_CONNECTIONS":      "10",
				"DB_CONN_MAX_LIFETIME_MINUTES": "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StorageDriverMySQL, cfg.StorageDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
				assert.True(t, cfg.UsesSQL())
			},
		},
		{
			name: "load custom key configuration",
			envVars: map[string]string{
				"KEY_STORAGE_PREFIX": "journal_key",
				"KEY_SEAL_URI":       "hashivault://dreamcrypt",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "journal_key", cfg.KeyStoragePrefix)
				assert.Equal(t, "hashivault://dreamcrypt", cfg.KeySealURI)
			},
		},
		{
			name: "load custom rate limit configuration",
			envVars: map[string]string{
				"RATE_LIMIT_ENABLED":          "false",
				"RATE_LIMIT_REQUESTS_PER_SEC": "0.5",
				"RATE_LIMIT_BURST":            "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.RateLimitEnabled)
				assert.Equal(t, 0.5, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 3, cfg.RateLimitBurst)
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "debug", cfg.GetGinMode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			cfg := Load()

			tt.validate(t, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerPort:              8080,
			LogLevel:                "info",
			StorageDriver:           StorageDriverMemory,
			KeyStoragePrefix:        cryptoDomain.DefaultKeyStoragePrefix,
			RateLimitEnabled:        true,
			RateLimitRequestsPerSec: 2,
			RateLimitBurst:          5,
			MetricsEnabled:          true,
			MetricsPort:             8081,
		}
	}

	t.Run("Success_Defaults", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Success_RateLimitDisabledIgnoresRate", func(t *testing.T) {
		cfg := valid()
		cfg.RateLimitEnabled = false
		cfg.RateLimitRequestsPerSec = 0
		cfg.RateLimitBurst = 0
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Error_UnknownStorageDriver", func(t *testing.T) {
		cfg := valid()
		cfg.StorageDriver = "sqlite"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "StorageDriver")
	})

	t.Run("Error_SQLDriverWithoutConnectionString", func(t *testing.T) {
		cfg := valid()
		cfg.StorageDriver = StorageDriverPostgres
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DBConnectionString")
	})

	t.Run("Error_UnknownLogLevel", func(t *testing.T) {
		cfg := valid()
		cfg.LogLevel = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Error_EmptyKeyPrefix", func(t *testing.T) {
		cfg := valid()
		cfg.KeyStoragePrefix = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Error_KeyPrefixCollidesWithSettings", func(t *testing.T) {
		cfg := valid()
		cfg.KeyStoragePrefix = dreamDomain.SettingsStoragePrefix
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "KeyStoragePrefix")
	})

	t.Run("Error_ZeroBurstWithRateLimit", func(t *testing.T) {
		cfg := valid()
		cfg.RateLimitBurst = 0
		assert.Error(t, cfg.Validate())
	})
}
