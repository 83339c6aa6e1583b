// Package http provides HTTP handlers for dream encryption and encryption settings.
//
// Passwords travel in request bodies and are never logged. Every decryption failure is
// answered with the same generic 422 response.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
	"github.com/allisson/dreamcrypt/internal/dream/http/dto"
	dreamUseCase "github.com/allisson/dreamcrypt/internal/dream/usecase"
	"github.com/allisson/dreamcrypt/internal/httputil"
	customValidation "github.com/allisson/dreamcrypt/internal/validation"
)

// EncryptionHandler handles HTTP requests for encrypting and decrypting dream data.
type EncryptionHandler struct {
	encryptionUseCase dreamUseCase.EncryptionUseCase
	logger            *slog.Logger
}

// NewEncryptionHandler creates a new encryption handler with required dependencies.
func NewEncryptionHandler(encryptionUseCase dreamUseCase.EncryptionUseCase, logger *slog.Logger) *EncryptionHandler {
	return &EncryptionHandler{
		encryptionUseCase: encryptionUseCase,
		logger:            logger,
	}
}

// InfoHandler reports algorithm and provider availability.
// GET /v1/encryption/info
func (h *EncryptionHandler) InfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.encryptionUseCase.EncryptionInfo())
}

// EncryptDataHandler encrypts an arbitrary JSON value.
// POST /v1/users/:userId/data/encrypt
func (h *EncryptionHandler) EncryptDataHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	var req dto.EncryptDataRequest
	if !bindAndValidate(c, &req, h.logger) {
		return
	}

	envelope, err := h.encryptionUseCase.EncryptData(c.Request.Context(), req.Data, userID, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// DecryptDataHandler opens an envelope produced by EncryptDataHandler.
// POST /v1/users/:userId/data/decrypt
func (h *EncryptionHandler) DecryptDataHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	var req dto.DecryptRequest
	if !bindAndValidate(c, &req, h.logger) {
		return
	}

	data, err := h.encryptionUseCase.DecryptData(c.Request.Context(), req.Envelope.ToDomain(), userID, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptDataResponse{Data: data})
}

// EncryptContentHandler encrypts a text body.
// POST /v1/users/:userId/content/encrypt
func (h *EncryptionHandler) EncryptContentHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	var req dto.EncryptContentRequest
	if !bindAndValidate(c, &req, h.logger) {
		return
	}

	envelope, err := h.encryptionUseCase.EncryptContent(c.Request.Context(), req.Content, userID, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// DecryptContentHandler opens an envelope produced by EncryptContentHandler.
// POST /v1/users/:userId/content/decrypt
func (h *EncryptionHandler) DecryptContentHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	var req dto.DecryptRequest
	if !bindAndValidate(c, &req, h.logger) {
		return
	}

	content, err := h.encryptionUseCase.DecryptContent(
		c.Request.Context(),
		req.Envelope.ToDomain(),
		userID,
		req.Password,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptContentResponse{Content: content})
}

// EncryptDreamHandler encrypts a dream record, leaving id, createdAt and updatedAt readable.
// POST /v1/users/:userId/dreams/encrypt
func (h *EncryptionHandler) EncryptDreamHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	var req dto.EncryptDreamRequest
	if !bindAndValidate(c, &req, h.logger) {
		return
	}

	dream, err := h.encryptionUseCase.EncryptDream(
		c.Request.Context(),
		dreamDomain.Record(req.Dream),
		userID,
		req.Password,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dream)
}

// DecryptDreamHandler reassembles a dream record.
// POST /v1/users/:userId/dreams/decrypt
func (h *EncryptionHandler) DecryptDreamHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	var req dto.DecryptDreamRequest
	if !bindAndValidate(c, &req, h.logger) {
		return
	}

	record, err := h.encryptionUseCase.DecryptDream(c.Request.Context(), req.Dream.ToDomain(), userID, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptDreamResponse{Dream: record})
}

// TestEncryptionHandler runs the device-key self-test. It always answers 200.
// POST /v1/users/:userId/encryption/test
func (h *EncryptionHandler) TestEncryptionHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	success := h.encryptionUseCase.TestEncryption(c.Request.Context(), userID)
	c.JSON(http.StatusOK, dto.TestEncryptionResponse{Success: success})
}

// ChangePasswordHandler verifies the current password. Stored envelopes are not re-encrypted.
// POST /v1/users/:userId/encryption/password
func (h *EncryptionHandler) ChangePasswordHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req, h.logger) {
		return
	}

	verified, err := h.encryptionUseCase.ChangeUserPassword(
		c.Request.Context(),
		userID,
		req.OldPassword,
		req.NewPassword,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ChangePasswordResponse{Verified: verified})
}

// ClearKeysHandler erases the user's device key.
// DELETE /v1/users/:userId/keys
func (h *EncryptionHandler) ClearKeysHandler(c *gin.Context) {
	userID, ok := pathUserID(c, h.logger)
	if !ok {
		return
	}

	if err := h.encryptionUseCase.ClearUserKeys(c.Request.Context(), userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// validatable is implemented by every request DTO.
type validatable interface {
	Validate() error
}

// bindAndValidate decodes the JSON body into req and validates it, writing the error response on failure.
func bindAndValidate(c *gin.Context, req validatable, logger *slog.Logger) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, logger)
		return false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), logger)
		return false
	}
	return true
}

// pathUserID extracts and validates the :userId path parameter.
func pathUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID := c.Param("userId")
	if err := validation.Validate(userID, validation.Required, customValidation.UserID); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), logger)
		return "", false
	}
	return userID, true
}
