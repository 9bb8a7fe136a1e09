package siren

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/security-system/internal/domain/security"
)

var errLine = errors.New("line busy")

// TestRelay_SirenCue verifies only the looping cue energises the relay.
func TestRelay_SirenCue(t *testing.T) {
	t.Parallel()

	line := new(FakeLine)
	r, err := NewRelay(line, false)
	require.NoError(t, err)
	require.Equal(t, 0, line.Last())

	require.NoError(t, r.Play(context.Background(), security.CueArmed))
	require.False(t, r.On())

	require.NoError(t, r.Play(context.Background(), security.CueSirenLoop))
	require.True(t, r.On())
	require.Equal(t, 1, line.Last())

	require.NoError(t, r.Stop(context.Background()))
	require.False(t, r.On())
	require.Equal(t, 0, line.Last())

	// Stop while silent writes nothing.
	written := len(line.Values)
	require.NoError(t, r.Stop(context.Background()))
	require.Len(t, line.Values, written)

	require.NoError(t, r.Close())
	require.True(t, line.Closed)
}

// TestRelay_ActiveLow checks the inverted output levels.
func TestRelay_ActiveLow(t *testing.T) {
	t.Parallel()

	line := new(FakeLine)
	r, err := NewRelay(line, true)
	require.NoError(t, err)
	require.Equal(t, 1, line.Last())

	require.NoError(t, r.Play(context.Background(), security.CueSirenLoop))
	require.Equal(t, 0, line.Last())
}

// TestRelay_LineErrors ensures line failures surface to the caller.
func TestRelay_LineErrors(t *testing.T) {
	t.Parallel()

	_, err := NewRelay(&FakeLine{SetErr: errLine}, false)
	require.ErrorIs(t, err, errLine)

	line := new(FakeLine)
	r, err := NewRelay(line, false)
	require.NoError(t, err)

	line.SetErr = errLine
	require.ErrorIs(t, r.Play(context.Background(), security.CueSirenLoop), errLine)
	require.False(t, r.On())
}
