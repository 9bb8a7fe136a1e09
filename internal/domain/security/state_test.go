package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseMode verifies mode names, aliases and rejection of the triggered state.
func TestParseMode(t *testing.T) {
	t.Parallel()

	cases := map[string]Mode{
		"off":      ModeOff,
		"disarmed": ModeOff,
		" Home ":   ModeHome,
		"AWAY":     ModeAway,
		"night":    ModeNight,
	}
	for s, want := range cases {
		got, err := ParseMode(s)
		require.NoError(t, err, s)
		require.Equal(t, want, got, s)
	}

	_, err := ParseMode("alarm_triggered")
	require.ErrorIs(t, err, ErrUnknownState)

	_, err = ParseMode("vacation")
	require.ErrorIs(t, err, ErrUnknownState)
}

// TestCurrentState_Names checks wire names and log labels stay in sync with parsing.
func TestCurrentState_Names(t *testing.T) {
	t.Parallel()

	for _, s := range []CurrentState{CurrentOff, CurrentHome, CurrentAway, CurrentNight, CurrentAlarmTriggered} {
		parsed, err := ParseCurrentState(s.String())
		require.NoError(t, err)
		require.Equal(t, s, parsed)
		require.NotEqual(t, "Unknown state", s.Label())
	}

	require.Equal(t, "Alarm triggered", CurrentAlarmTriggered.Label())
	require.Equal(t, "Unknown state", CurrentState(42).Label())
	require.False(t, CurrentState(42).Valid())
}

// TestModeState verifies the mapping between modes and the states they settle into.
func TestModeState(t *testing.T) {
	t.Parallel()

	for _, m := range []Mode{ModeOff, ModeHome, ModeAway, ModeNight} {
		back, ok := m.State().Mode()
		require.True(t, ok)
		require.Equal(t, m, back)
		require.Equal(t, m.Armed(), m.State().Armed())
	}

	_, ok := CurrentAlarmTriggered.Mode()
	require.False(t, ok)
	require.False(t, CurrentAlarmTriggered.Armed())
}

// TestCueFor checks that every state maps to the right cue category.
func TestCueFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, CueSirenLoop, CueFor(CurrentAlarmTriggered))
	require.Equal(t, CueDisarmed, CueFor(CurrentOff))
	require.Equal(t, CueArmed, CueFor(CurrentHome))
	require.Equal(t, CueArmed, CueFor(CurrentAway))
	require.Equal(t, CueArmed, CueFor(CurrentNight))

	require.True(t, CueSirenLoop.Loops())
	require.False(t, CueArmed.Loops())
}

// TestParseSwitch verifies accepted switch spellings.
func TestParseSwitch(t *testing.T) {
	t.Parallel()

	for s, want := range map[string]bool{"on": true, " OFF ": false, "true": true, "0": false} {
		got, err := ParseSwitch(s)
		require.NoError(t, err)
		require.Equal(t, want, got, s)
	}

	_, err := ParseSwitch("maybe")
	require.ErrorIs(t, err, ErrInvalidSwitch)
}
