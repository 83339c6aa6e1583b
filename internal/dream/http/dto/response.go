package dto

import (
	"time"

	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
)

// DecryptDataResponse holds a decrypted JSON value.
type DecryptDataResponse struct {
	Data any `json:"data"`
}

// DecryptContentResponse holds decrypted text.
type DecryptContentResponse struct {
	Content string `json:"content"`
}

// DecryptDreamResponse holds a reassembled dream record.
type DecryptDreamResponse struct {
	Dream map[string]any `json:"dream"`
}

// TestEncryptionResponse reports the outcome of the encryption self-test.
type TestEncryptionResponse struct {
	Success bool `json:"success"`
}

// ChangePasswordResponse reports whether the current password was verified.
// No stored data is re-encrypted.
type ChangePasswordResponse struct {
	Verified bool `json:"verified"`
}

// SettingsResponse represents a user's encryption settings.
type SettingsResponse struct {
	UserID    string    `json:"userId"`
	State     string    `json:"state"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MapSettingsToResponse converts domain settings to the API response.
func MapSettingsToResponse(settings *dreamDomain.Settings) SettingsResponse {
	return SettingsResponse{
		UserID:    settings.UserID,
		State:     string(settings.State),
		Enabled:   settings.Enabled(),
		UpdatedAt: settings.UpdatedAt,
	}
}
