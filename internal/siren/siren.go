// Package siren drives a physical siren through a relay on a GPIO output line.
// The real line uses the Linux GPIO character device; a fake allows testing
// without hardware.
package siren

import (
	"context"
	"fmt"
	"sync"

	"github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/logger"
)

// Line is a single digital output.
type Line interface {
	// SetValue drives the line: 1 is active, 0 is inactive.
	SetValue(value int) error
	// Close releases the line.
	Close() error
}

// Relay switches the siren on for the looping alarm cue and off on stop.
// One-shot cues are ignored: a siren is not a chime.
type Relay struct {
	// line is the GPIO output wired to the relay.
	line Line
	// activeLow inverts the output level.
	activeLow bool

	// mu guards on.
	mu sync.Mutex
	// on is the last requested siren state.
	on bool
}

// NewRelay wraps an output line and makes sure the siren starts silent.
func NewRelay(line Line, activeLow bool) (*Relay, error) {
	r := &Relay{
		line:      line,
		activeLow: activeLow,
	}

	if err := r.set(false); err != nil {
		return nil, err
	}

	return r, nil
}

// Name identifies the relay in logs.
func (r *Relay) Name() string {
	return "siren-relay"
}

// Play energises the relay for the siren cue.
func (r *Relay) Play(ctx context.Context, cue security.Cue) error {
	if !cue.Loops() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.set(true); err != nil {
		return err
	}

	logger.Debugf(ctx, "Siren relay on")

	return nil
}

// Stop releases the relay.
func (r *Relay) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.on {
		return nil
	}

	if err := r.set(false); err != nil {
		return err
	}

	logger.Debugf(ctx, "Siren relay off")

	return nil
}

// On reports whether the siren is sounding.
func (r *Relay) On() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.on
}

// Close silences the siren and releases the line.
func (r *Relay) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	setErr := r.set(false)

	if err := r.line.Close(); err != nil {
		return fmt.Errorf("close siren line: %w", err)
	}

	return setErr
}

func (r *Relay) set(on bool) error {
	value := 0
	if on != r.activeLow {
		value = 1
	}

	if err := r.line.SetValue(value); err != nil {
		return fmt.Errorf("set siren line: %w", err)
	}

	r.on = on

	return nil
}
