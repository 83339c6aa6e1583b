// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
	customValidation "github.com/allisson/dreamcrypt/internal/validation"
)

// newPasswordRule is applied to passwords a user is choosing, not to passwords used to decrypt.
var newPasswordRule = customValidation.PasswordStrength{MinLength: 8, RequireLetter: true, RequireNumber: true}

// EnvelopeRequest is the wire form of an Envelope submitted for decryption.
type EnvelopeRequest struct {
	EncryptedContent string `json:"encryptedContent"`
	IV               string `json:"iv"`
	Salt             string `json:"salt"`
	Timestamp        int64  `json:"timestamp"`
	Version          string `json:"version"`
}

// Validate checks that all envelope fields are present. Field contents are left to the
// decryption path so a corrupted envelope fails like a wrong password.
func (r EnvelopeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EncryptedContent, validation.Required),
		validation.Field(&r.IV, validation.Required),
		validation.Field(&r.Salt, validation.Required),
		validation.Field(&r.Version, validation.Required),
	)
}

// ToDomain converts the request into an Envelope.
func (r EnvelopeRequest) ToDomain() *cryptoDomain.Envelope {
	return &cryptoDomain.Envelope{
		EncryptedContent: r.EncryptedContent,
		IV:               r.IV,
		Salt:             r.Salt,
		Timestamp:        r.Timestamp,
		Version:          r.Version,
	}
}

// EncryptDataRequest encrypts an arbitrary JSON value.
type EncryptDataRequest struct {
	Data     any    `json:"data"`
	Password string `json:"password,omitempty"`
}

// Validate checks if the encrypt data request is valid.
func (r *EncryptDataRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Data, validation.NotNil),
	)
}

// DecryptRequest opens an Envelope produced by the data or content endpoints.
type DecryptRequest struct {
	Envelope EnvelopeRequest `json:"envelope"`
	Password string          `json:"password,omitempty"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Envelope),
	)
}

// EncryptContentRequest encrypts a single text body.
type EncryptContentRequest struct {
	Content  string `json:"content"`
	Password string `json:"password,omitempty"`
}

// Validate checks if the encrypt content request is valid.
func (r *EncryptContentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Length(0, 1<<20)),
	)
}

// EncryptDreamRequest encrypts a dream record, keeping its metadata in clear.
type EncryptDreamRequest struct {
	Dream    map[string]any `json:"dream"`
	Password string         `json:"password,omitempty"`
}

// Validate checks if the encrypt dream request is valid.
func (r *EncryptDreamRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Dream, validation.Required),
	)
}

// EncryptedDreamRequest is the wire form of an EncryptedDream.
type EncryptedDreamRequest struct {
	ID            string          `json:"id"`
	Metadata      map[string]any  `json:"metadata"`
	EncryptedData EnvelopeRequest `json:"encryptedData"`
}

// Validate checks if the encrypted dream is well formed.
func (r EncryptedDreamRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.EncryptedData),
	)
}

// ToDomain converts the request into an EncryptedDream.
func (r EncryptedDreamRequest) ToDomain() *dreamDomain.EncryptedDream {
	metadata := r.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &dreamDomain.EncryptedDream{
		ID:            r.ID,
		Metadata:      metadata,
		EncryptedData: *r.EncryptedData.ToDomain(),
	}
}

// DecryptDreamRequest reassembles a dream record from its encrypted form.
type DecryptDreamRequest struct {
	Dream    EncryptedDreamRequest `json:"dream"`
	Password string                `json:"password,omitempty"`
}

// Validate checks if the decrypt dream request is valid.
func (r *DecryptDreamRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Dream),
	)
}

// ChangePasswordRequest verifies the current password before the client switches to a new one.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, newPasswordRule),
	)
}

// DisableSettingsRequest turns encryption off.
type DisableSettingsRequest struct {
	Confirmed bool `json:"confirmed"`
	ClearKeys bool `json:"clearKeys"`
}

// Validate checks if the disable request is valid.
func (r *DisableSettingsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Confirmed, validation.Required.Error("must be true to disable encryption")),
	)
}
