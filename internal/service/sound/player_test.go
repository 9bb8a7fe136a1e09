package sound

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/security-system/internal/config"
	"github.com/oshokin/security-system/internal/domain/security"
)

// fakeRunner records invocations and simulates playback that lasts a fixed time.
type fakeRunner struct {
	// length is how long one playback takes.
	length time.Duration

	mu    sync.Mutex
	calls [][]string
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) error {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(f.length):
		return nil
	}
}

func (f *fakeRunner) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

func writeSounds(t *testing.T, names ...string) config.SoundsConfig {
	t.Helper()

	dir := t.TempDir()
	paths := make(map[string]string, len(names))

	for _, name := range names {
		path := filepath.Join(dir, name+".mp3")
		require.NoError(t, os.WriteFile(path, []byte("ID3"), 0o600))
		paths[name] = path
	}

	return config.SoundsConfig{
		Player:     "mpg123",
		PlayerArgs: []string{"-q"},
		Siren:      paths["siren"],
		Armed:      paths["armed"],
		Disarmed:   paths["disarmed"],
	}
}

// TestLoad_MissingFiles verifies missing files leave their cue silent.
func TestLoad_MissingFiles(t *testing.T) {
	t.Parallel()

	cfg := writeSounds(t, "armed")
	cfg.Siren = filepath.Join(t.TempDir(), "missing.mp3")

	p, err := Load(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, p.Loaded(security.CueArmed))
	require.False(t, p.Loaded(security.CueSirenLoop))
	require.ErrorIs(t, p.Play(context.Background(), security.CueSirenLoop), ErrCueNotLoaded)

	p, err = Load(context.Background(), config.SoundsConfig{Player: "mpg123"})
	require.ErrorIs(t, err, errNoSounds)
	require.NotNil(t, p)
}

// TestPlayer_OneShot checks a one-shot cue runs the player once with the configured arguments.
func TestPlayer_OneShot(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		runner := &fakeRunner{length: time.Second}
		cfg := writeSounds(t, "armed", "disarmed")

		p, err := Load(context.Background(), cfg, WithRunFunc(runner.run))
		require.NoError(t, err)

		require.NoError(t, p.Play(context.Background(), security.CueArmed))
		time.Sleep(5 * time.Second)
		synctest.Wait()

		require.Equal(t, 1, runner.count())
		require.Equal(t, []string{"mpg123", "-q", cfg.Armed}, runner.calls[0])
	})
}

// TestPlayer_SirenLoopsUntilStopped ensures the siren restarts until Stop is called.
func TestPlayer_SirenLoopsUntilStopped(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		runner := &fakeRunner{length: time.Second}

		p, err := Load(context.Background(), writeSounds(t, "siren"), WithRunFunc(runner.run))
		require.NoError(t, err)

		require.NoError(t, p.Play(context.Background(), security.CueSirenLoop))

		time.Sleep(3500 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, 4, runner.count())

		require.NoError(t, p.Stop(context.Background()))

		time.Sleep(10 * time.Second)
		synctest.Wait()
		require.Equal(t, 4, runner.count())

		// Stopping twice is harmless.
		require.NoError(t, p.Stop(context.Background()))
	})
}

// TestPlayer_StopDoesNotHangOnStuckProcess bounds Stop when the player ignores the kill.
func TestPlayer_StopDoesNotHangOnStuckProcess(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		release := make(chan struct{})
		stuck := func(context.Context, string, ...string) error {
			<-release
			return nil
		}

		p, err := Load(context.Background(), writeSounds(t, "siren"), WithRunFunc(stuck))
		require.NoError(t, err)

		require.NoError(t, p.Play(context.Background(), security.CueSirenLoop))
		synctest.Wait()

		started := time.Now()
		require.NoError(t, p.Stop(context.Background()))
		require.Equal(t, defaultStopTimeout, time.Since(started))

		close(release)
	})
}
