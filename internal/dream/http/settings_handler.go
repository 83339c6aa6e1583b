package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/dreamcrypt/internal/dream/http/dto"
	dreamUseCase "github.com/allisson/dreamcrypt/internal/dream/usecase"
	"github.com/allisson/dreamcrypt/internal/httputil"
)

// SettingsHandler handles HTTP requests for the encryption settings flow.
type SettingsHandler struct {
	settingsUseCase dreamUseCase.SettingsUseCase
	logger          *slog.Logger
}

// NewSettingsHandler creates a new settings handler with required dependencies.
func NewSettingsHandler(settingsUseCase dreamUseCase.SettingsUseCase, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsUseCase: settingsUseCase,
		logger:          logger,
	}
}

// GetHandler returns the user's encryption settings.
// GET /v1/users/:userId/encryption/settings
func (h *SettingsHandler) GetHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	settings, err := h.settingsUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToResponse(settings))
}

// EnableHandler runs the self-test and enables encryption.
// POST /v1/users/:userId/encryption/settings/enable
func (h *SettingsHandler) EnableHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	settings, err := h.settingsUseCase.Enable(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToResponse(settings))
}

// DisableHandler disables encryption after explicit confirmation.
// POST /v1/users/:userId/encryption/settings/disable
func (h *SettingsHandler) DisableHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	var req dto.DisableSettingsRequest
	if !bindAndValidate(c, &req, h.logger) {
		return
	}

	settings, err := h.settingsUseCase.Disable(c.Request.Context(), userID, req.Confirmed, req.ClearKeys)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToResponse(settings))
}
