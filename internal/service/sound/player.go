package sound

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/oshokin/security-system/internal/config"
	"github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/logger"
)

// RunFunc runs the player command and blocks until it exits or ctx is canceled.
type RunFunc func(ctx context.Context, name string, args ...string) error

// Player plays audio files for cues by spawning an external player process.
type Player struct {
	// command is the player executable.
	command string
	// args are passed before the file name.
	args []string
	// files maps every loaded cue to its audio file.
	files map[security.Cue]string
	// run starts the player process; replaced in tests.
	run RunFunc
	// stopTimeout bounds how long Stop waits for the looping process to exit.
	stopTimeout time.Duration

	// mu guards stopLoop and loopDone.
	mu sync.Mutex
	// stopLoop cancels the running looping cue.
	stopLoop context.CancelFunc
	// loopDone is closed when the looping goroutine exits.
	loopDone chan struct{}
}

var (
	// ErrCueNotLoaded is returned when no file is available for a cue.
	ErrCueNotLoaded = errors.New("cue not loaded")
	// errNoSounds is returned by Load when no file could be loaded.
	errNoSounds = errors.New("no sound files loaded")
)

// Limits on waiting for a killed player process.
const (
	defaultStopTimeout = 2 * time.Second
	processWaitDelay   = time.Second
)

// Option configures the player.
type Option func(*Player)

// WithRunFunc replaces the process runner.
func WithRunFunc(run RunFunc) Option {
	return func(p *Player) {
		if run != nil {
			p.run = run
		}
	}
}

// Load checks the configured files and creates a player for those that exist.
// Missing files are logged and leave their cue silent.
// An error is returned only when no file could be loaded at all; the player is still usable.
func Load(ctx context.Context, cfg config.SoundsConfig, opts ...Option) (*Player, error) {
	p := &Player{
		command: cfg.Player,
		args:    append([]string(nil), cfg.PlayerArgs...),
		files:   make(map[security.Cue]string, 3),
		run:     runCommand,

		stopTimeout: defaultStopTimeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	wanted := map[security.Cue]string{
		security.CueSirenLoop: cfg.Siren,
		security.CueArmed:     cfg.Armed,
		security.CueDisarmed:  cfg.Disarmed,
	}

	var errs []error

	for cue, path := range wanted {
		if path == "" {
			continue
		}

		path = filepath.Clean(path)
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cue, err))
			continue
		}

		p.files[cue] = path
	}

	if len(errs) > 0 {
		logger.ErrorKV(ctx, "Error loading sounds", "error", errors.Join(errs...))
	}

	if len(p.files) == 0 {
		return p, errNoSounds
	}

	logger.InfoKV(ctx, "Sounds loaded", "count", len(p.files))

	return p, nil
}

// Name identifies the player in logs.
func (p *Player) Name() string {
	return "sound"
}

// Play starts the cue in the background.
// A looping cue replaces any loop already running.
func (p *Player) Play(ctx context.Context, cue security.Cue) error {
	path, ok := p.files[cue]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCueNotLoaded, cue)
	}

	// Playback outlives the request that caused it.
	playCtx := context.WithoutCancel(ctx)
	args := append(append([]string(nil), p.args...), path)

	if !cue.Loops() {
		go func() {
			if err := p.run(playCtx, p.command, args...); err != nil {
				logger.ErrorKV(playCtx, "Sound playback failed", "cue", cue, "error", err)
			}
		}()

		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	loopCtx, cancel := context.WithCancel(playCtx)
	done := make(chan struct{})

	p.stopLoop = cancel
	p.loopDone = done

	go func() {
		defer close(done)

		for loopCtx.Err() == nil {
			if err := p.run(loopCtx, p.command, args...); err != nil && loopCtx.Err() == nil {
				logger.ErrorKV(loopCtx, "Looping sound playback failed", "cue", cue, "error", err)
				return
			}
		}
	}()

	return nil
}

// Stop ends the looping cue and waits, at most stopTimeout, for its process to exit.
// A process that outlives the wait is left to die on its own.
func (p *Player) Stop(ctx context.Context) error {
	p.mu.Lock()
	done := p.loopDone
	p.stopLocked()
	p.mu.Unlock()

	if done == nil {
		return nil
	}

	timer := time.NewTimer(p.stopTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		logger.WarnKV(ctx, "Siren playback did not stop in time", "timeout", p.stopTimeout)
	}

	return nil
}

// Loaded reports whether a file is available for the cue.
func (p *Player) Loaded(cue security.Cue) bool {
	_, ok := p.files[cue]

	return ok
}

func (p *Player) stopLocked() {
	if p.stopLoop != nil {
		p.stopLoop()
	}

	p.stopLoop = nil
	p.loopDone = nil
}

// runCommand runs the player process; canceling ctx kills it.
// Wait gives up on the process I/O processWaitDelay after the kill.
func runCommand(ctx context.Context, name string, args ...string) error {
	//nolint:gosec // The player command comes from the operator's configuration.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = processWaitDelay

	return cmd.Run()
}
