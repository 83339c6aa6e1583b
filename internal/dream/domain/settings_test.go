package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Transitions(t *testing.T) {
	t.Run("Success_EnableFlow", func(t *testing.T) {
		settings := NewSettings("u1")
		assert.Equal(t, StateDisabled, settings.State)

		require.NoError(t, settings.BeginSetup())
		assert.Equal(t, StatePendingPasswordSetup, settings.State)

		require.NoError(t, settings.CompleteSetup(true))
		assert.True(t, settings.Enabled())
	})

	t.Run("Success_FailedSetupReturnsToDisabled", func(t *testing.T) {
		settings := NewSettings("u1")
		require.NoError(t, settings.BeginSetup())

		require.NoError(t, settings.CompleteSetup(false))
		assert.Equal(t, StateDisabled, settings.State)
	})

	t.Run("Success_DisableConfirmed", func(t *testing.T) {
		settings := &Settings{UserID: "u1", State: StateEnabled}

		require.NoError(t, settings.Disable(true))
		assert.Equal(t, StateDisabled, settings.State)
	})

	t.Run("Error_InvalidTransitions", func(t *testing.T) {
		tests := []struct {
			name  string
			state SettingsState
			apply func(s *Settings) error
		}{
			{"begin from enabled", StateEnabled, (*Settings).BeginSetup},
			{"begin from pending", StatePendingPasswordSetup, (*Settings).BeginSetup},
			{"complete from disabled", StateDisabled, func(s *Settings) error { return s.CompleteSetup(true) }},
			{"complete from enabled", StateEnabled, func(s *Settings) error { return s.CompleteSetup(false) }},
			{"disable unconfirmed", StateEnabled, func(s *Settings) error { return s.Disable(false) }},
			{"disable from disabled", StateDisabled, func(s *Settings) error { return s.Disable(true) }},
			{"disable from pending", StatePendingPasswordSetup, func(s *Settings) error { return s.Disable(true) }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				settings := &Settings{UserID: "u1", State: tt.state}

				err := tt.apply(settings)
				assert.ErrorIs(t, err, ErrInvalidStateTransition)
				assert.Equal(t, tt.state, settings.State)
			})
		}
	})
}
