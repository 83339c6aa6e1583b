// Package validation provides custom validation rules for request DTOs.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/dreamcrypt/internal/errors"
)

// userIDRegex restricts user ids to characters that are safe inside a storage key.
var userIDRegex = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,128}$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength validates password meets minimum security requirements
type PasswordStrength struct {
	MinLength     int
	RequireLetter bool
	RequireNumber bool
}

// Validate checks if the password meets the configured requirements
func (p PasswordStrength) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}

	if len([]rune(s)) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength),
		)
	}

	if p.RequireLetter && !strings.ContainsFunc(s, unicode.IsLetter) {
		return validation.NewError("validation_password_letter", "password must contain at least one letter")
	}

	if p.RequireNumber && !strings.ContainsFunc(s, unicode.IsNumber) {
		return validation.NewError("validation_password_number", "password must contain at least one number")
	}

	return nil
}

// UserID validates the user identifier taken from the request path.
var UserID = validation.NewStringRuleWithError(
	func(s string) bool {
		return userIDRegex.MatchString(s)
	},
	validation.NewError("validation_user_id", "must be 1-128 characters of letters, digits, '.', '_', '@' or '-'"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
