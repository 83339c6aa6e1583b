package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/dreamcrypt/internal/config"
	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
	dreamHTTP "github.com/allisson/dreamcrypt/internal/dream/http"
	"github.com/allisson/dreamcrypt/internal/dream/usecase/mocks"
	"github.com/allisson/dreamcrypt/internal/metrics"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 0.01,
		RateLimitBurst:          1,
		MetricsNamespace:        "test_app",
	}
}

type routerFixture struct {
	server     *Server
	encryption *mocks.MockEncryptionUseCase
	settings   *mocks.MockSettingsUseCase
}

func setupRouter(t *testing.T, cfg *config.Config, checks map[string]ReadinessCheck) *routerFixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := discardLogger()
	encryption := &mocks.MockEncryptionUseCase{}
	settings := &mocks.MockSettingsUseCase{}
	t.Cleanup(func() {
		encryption.AssertExpectations(t)
		settings.AssertExpectations(t)
	})

	server := NewServer(checks, "localhost", 0, logger)
	server.SetupRouter(
		ctx,
		cfg,
		dreamHTTP.NewEncryptionHandler(encryption, logger),
		dreamHTTP.NewSettingsHandler(settings, logger),
		nil,
	)

	return &routerFixture{server: server, encryption: encryption, settings: settings}
}

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHealthHandler(t *testing.T) {
	f := setupRouter(t, testConfig(), nil)

	w := serve(f.server.GetHandler(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("Success_AllChecksPass", func(t *testing.T) {
		f := setupRouter(t, testConfig(), map[string]ReadinessCheck{
			"storage": func(ctx context.Context) error { return nil },
			"crypto":  func(ctx context.Context) error { return nil },
		})

		w := serve(f.server.GetHandler(), http.MethodGet, "/ready", "")

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, "ready", response["status"])
		assert.Equal(t, map[string]any{"storage": "ok", "crypto": "ok"}, response["components"])
	})

	t.Run("Error_StorageUnavailable", func(t *testing.T) {
		f := setupRouter(t, testConfig(), map[string]ReadinessCheck{
			"storage": func(ctx context.Context) error { return errors.New("connection refused") },
			"crypto":  func(ctx context.Context) error { return nil },
		})

		w := serve(f.server.GetHandler(), http.MethodGet, "/ready", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, "not_ready", response["status"])
		assert.Equal(t, map[string]any{"storage": "error", "crypto": "ok"}, response["components"])
	})
}

func TestRouter_Routes(t *testing.T) {
	envelope := &cryptoDomain.Envelope{
		EncryptedContent: "Y2lwaGVy",
		IV:               "AAAAAAAAAAAAAAAA",
		Salt:             "AAAAAAAAAAAAAAAAAAAAAA==",
		Timestamp:        1704067200000,
		Version:          cryptoDomain.FormatVersion,
	}

	t.Run("Success_EncryptionInfo", func(t *testing.T) {
		f := setupRouter(t, testConfig(), nil)
		f.encryption.On("EncryptionInfo").
			Return(dreamDomain.EncryptionInfo{Algorithm: "AES-GCM", KeySize: 256, Version: "1.0", CryptoAvailable: true}).
			Once()

		w := serve(f.server.GetHandler(), http.MethodGet, "/v1/encryption/info", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Success_EncryptContent", func(t *testing.T) {
		f := setupRouter(t, testConfig(), nil)
		f.encryption.On("EncryptContent", mock.Anything, "flying over water", "u1", "").
			Return(envelope, nil).
			Once()

		w := serve(
			f.server.GetHandler(),
			http.MethodPost,
			"/v1/users/u1/content/encrypt",
			`{"content":"flying over water"}`,
		)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1.0", decodeBody(t, w)["version"])
	})

	t.Run("Success_ClearKeys", func(t *testing.T) {
		f := setupRouter(t, testConfig(), nil)
		f.encryption.On("ClearUserKeys", mock.Anything, "u1").Return(nil).Once()

		w := serve(f.server.GetHandler(), http.MethodDelete, "/v1/users/u1/keys", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Success_GetSettings", func(t *testing.T) {
		f := setupRouter(t, testConfig(), nil)
		f.settings.On("Get", mock.Anything, "u1").
			Return(&dreamDomain.Settings{UserID: "u1", State: dreamDomain.StateDisabled}, nil).
			Once()

		w := serve(f.server.GetHandler(), http.MethodGet, "/v1/users/u1/encryption/settings", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "disabled", decodeBody(t, w)["state"])
	})

	t.Run("Error_UnknownRoute", func(t *testing.T) {
		f := setupRouter(t, testConfig(), nil)

		w := serve(f.server.GetHandler(), http.MethodGet, "/v1/users/u1/dreams", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_NoMetricsEndpointOnPublicRouter", func(t *testing.T) {
		f := setupRouter(t, testConfig(), nil)

		w := serve(f.server.GetHandler(), http.MethodGet, "/metrics", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_RateLimit(t *testing.T) {
	t.Run("PasswordEndpointsAreLimitedPerUser", func(t *testing.T) {
		f := setupRouter(t, testConfig(), nil)
		f.encryption.On("DecryptContent", mock.Anything, mock.Anything, mock.Anything, "guess").
			Return("", cryptoDomain.ErrDecryptionFailed).
			Twice()

		body := `{"envelope":{"encryptedContent":"Y2lwaGVy","iv":"AAAAAAAAAAAAAAAA",` +
			`"salt":"AAAAAAAAAAAAAAAAAAAAAA==","timestamp":1704067200000,"version":"1.0"},"password":"guess"}`

		first := serve(f.server.GetHandler(), http.MethodPost, "/v1/users/u1/content/decrypt", body)
		second := serve(f.server.GetHandler(), http.MethodPost, "/v1/users/u1/content/decrypt", body)
		other := serve(f.server.GetHandler(), http.MethodPost, "/v1/users/u2/content/decrypt", body)

		assert.Equal(t, http.StatusUnprocessableEntity, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.NotEmpty(t, second.Header().Get("Retry-After"))
		assert.Equal(t, http.StatusUnprocessableEntity, other.Code)
	})

	t.Run("SelfTestIsNotLimited", func(t *testing.T) {
		f := setupRouter(t, testConfig(), nil)
		f.encryption.On("TestEncryption", mock.Anything, "u1").Return(true).Times(3)

		for i := 0; i < 3; i++ {
			w := serve(f.server.GetHandler(), http.MethodPost, "/v1/users/u1/encryption/test", "")
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("DisabledRateLimit", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimitEnabled = false
		f := setupRouter(t, cfg, nil)
		f.encryption.On("ChangeUserPassword", mock.Anything, "u1", "old-pass1", "new-pass1").
			Return(true, nil).
			Twice()

		body := `{"oldPassword":"old-pass1","newPassword":"new-pass1"}`
		for i := 0; i < 2; i++ {
			w := serve(f.server.GetHandler(), http.MethodPost, "/v1/users/u1/encryption/password", body)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.POST("/v1/users/:userId/content/encrypt", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := serve(router, http.MethodPost, "/v1/users/dreamer-42/content/encrypt", `{"content":"secret dream"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/v1/users/:userId/content/encrypt", entry["route"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), entry["request_id"])
	assert.NotContains(t, buf.String(), "dreamer-42")
	assert.NotContains(t, buf.String(), "secret dream")
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := serve(router, http.MethodGet, "/panic", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	f := setupRouter(t, testConfig(), nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- f.server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, f.server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 0, discardLogger(), provider)

	w := serve(metricsServer.GetHandler(), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
