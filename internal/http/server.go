// Package http assembles the public API router and runs the HTTP servers.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/dreamcrypt/internal/config"
	dreamHTTP "github.com/allisson/dreamcrypt/internal/dream/http"
	"github.com/allisson/dreamcrypt/internal/metrics"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Server represents the public API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	checks map[string]ReadinessCheck
	logger *slog.Logger
}

// NewServer creates a server; the router is attached by SetupRouter.
// Each named check is run by /ready.
func NewServer(
	checks map[string]ReadinessCheck,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		checks: checks,
		logger: logger,
		server: newHTTPServer(host, port),
	}
}

// SetupRouter registers middleware and every API route. ctx bounds the lifetime of
// the rate limiter cleanup goroutine.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	encryptionHandler *dreamHTTP.EncryptionHandler,
	settingsHandler *dreamHTTP.SettingsHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Only endpoints that accept a password are rate limited.
	guarded := []gin.HandlerFunc{}
	if cfg.RateLimitEnabled {
		guarded = append(guarded, dreamHTTP.UserRateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guarded...), h)
	}

	v1 := router.Group("/v1")
	v1.GET("/encryption/info", encryptionHandler.InfoHandler)

	users := v1.Group("/users/:userId")
	{
		users.POST("/data/encrypt", limited(encryptionHandler.EncryptDataHandler)...)
		users.POST("/data/decrypt", limited(encryptionHandler.DecryptDataHandler)...)
		users.POST("/content/encrypt", limited(encryptionHandler.EncryptContentHandler)...)
		users.POST("/content/decrypt", limited(encryptionHandler.DecryptContentHandler)...)
		users.POST("/dreams/encrypt", limited(encryptionHandler.EncryptDreamHandler)...)
		users.POST("/dreams/decrypt", limited(encryptionHandler.DecryptDreamHandler)...)
		users.POST("/encryption/password", limited(encryptionHandler.ChangePasswordHandler)...)
		users.POST("/encryption/test", encryptionHandler.TestEncryptionHandler)
		users.DELETE("/keys", encryptionHandler.ClearKeysHandler)

		users.GET("/encryption/settings", settingsHandler.GetHandler)
		users.POST("/encryption/settings/enable", settingsHandler.EnableHandler)
		users.POST("/encryption/settings/disable", settingsHandler.DisableHandler)
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start listens until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		s.server.Handler = s.router
	}

	return listenAndServe(s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ready := true
	components := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.String("component", name), slog.Any("error", err))
			components[name] = "error"
			ready = false
			continue
		}
		components[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
