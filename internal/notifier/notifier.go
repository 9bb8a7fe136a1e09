// Package notifier reports state transitions: it logs them and plays cues
// through any number of players. Player failures are logged and swallowed so
// a broken speaker or relay never affects the state machine.
package notifier

import (
	"context"
	"sync"

	"github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/logger"
)

// Kind tells which property a logged transition belongs to.
type Kind string

const (
	// KindCurrent marks a change of the current state.
	KindCurrent Kind = "Current"
	// KindTarget marks a change of the target state.
	KindTarget Kind = "Target"
)

// CuePlayer renders cues on one output, e.g. speakers or a siren relay.
type CuePlayer interface {
	// Name identifies the player in logs.
	Name() string
	// Play starts the cue. Looping cues keep playing until Stop.
	Play(ctx context.Context, cue security.Cue) error
	// Stop ends the looping cue, if any.
	Stop(ctx context.Context) error
}

// Dispatcher logs transitions and fans cues out to players.
type Dispatcher struct {
	// players receive every cue in registration order.
	players []CuePlayer
	// mu guards players.
	mu sync.RWMutex
}

// NewDispatcher creates a dispatcher for the given players.
func NewDispatcher(players ...CuePlayer) *Dispatcher {
	return &Dispatcher{
		players: players,
	}
}

// AddPlayer registers another cue player.
func (d *Dispatcher) AddPlayer(p CuePlayer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.players = append(d.players, p)
}

// LogTransition writes a "<Kind> state (<Label>)" line.
func (d *Dispatcher) LogTransition(ctx context.Context, kind Kind, state security.CurrentState) {
	logger.Infof(ctx, "%s state (%s)", kind, state.Label())
}

// PlayCue starts the cue on every player.
func (d *Dispatcher) PlayCue(ctx context.Context, cue security.Cue) {
	for _, p := range d.snapshot() {
		if err := p.Play(ctx, cue); err != nil {
			logger.ErrorKV(ctx, "Failed to play cue", "player", p.Name(), "cue", cue, "error", err)
		}
	}
}

// StopCue stops the looping cue on every player.
func (d *Dispatcher) StopCue(ctx context.Context) {
	for _, p := range d.snapshot() {
		if err := p.Stop(ctx); err != nil {
			logger.ErrorKV(ctx, "Failed to stop cue", "player", p.Name(), "error", err)
		}
	}
}

func (d *Dispatcher) snapshot() []CuePlayer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]CuePlayer(nil), d.players...)
}
