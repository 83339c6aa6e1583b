package domain

import "time"

// SettingsState is the user-facing encryption feature state.
type SettingsState string

const (
	StateDisabled             SettingsState = "disabled"
	StatePendingPasswordSetup SettingsState = "pending_password_setup"
	StateEnabled              SettingsState = "enabled"
)

// SettingsStoragePrefix prefixes the storage key under which a user's settings are kept.
const SettingsStoragePrefix = "encryption_settings"

// Settings tracks whether encryption is enabled for one user.
//
//	disabled --BeginSetup--> pending_password_setup --CompleteSetup(true)--> enabled
//	pending_password_setup --CompleteSetup(false)--> disabled
//	enabled --Disable(true)--> disabled
type Settings struct {
	UserID    string        `json:"userId"`
	State     SettingsState `json:"state"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// NewSettings returns disabled settings for userID.
func NewSettings(userID string) *Settings {
	return &Settings{
		UserID:    userID,
		State:     StateDisabled,
		UpdatedAt: time.Now().UTC(),
	}
}

// BeginSetup moves from disabled to pending_password_setup.
func (s *Settings) BeginSetup() error {
	return s.transition(StateDisabled, StatePendingPasswordSetup)
}

// CompleteSetup finishes a pending setup. A failed self-test returns to disabled.
func (s *Settings) CompleteSetup(selfTestPassed bool) error {
	if !selfTestPassed {
		return s.transition(StatePendingPasswordSetup, StateDisabled)
	}
	return s.transition(StatePendingPasswordSetup, StateEnabled)
}

// Disable turns encryption off. It requires explicit confirmation.
func (s *Settings) Disable(confirmed bool) error {
	if !confirmed {
		return ErrInvalidStateTransition
	}
	return s.transition(StateEnabled, StateDisabled)
}

// Enabled reports whether dreams should be encrypted for this user.
func (s *Settings) Enabled() bool {
	return s.State == StateEnabled
}

func (s *Settings) transition(from, to SettingsState) error {
	if s.State != from {
		return ErrInvalidStateTransition
	}
	s.State = to
	s.UpdatedAt = time.Now().UTC()
	return nil
}
