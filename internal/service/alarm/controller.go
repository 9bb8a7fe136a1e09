package alarm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/security-system/internal/clock"
	"github.com/oshokin/security-system/internal/domain/security"
	"github.com/oshokin/security-system/internal/logger"
	"github.com/oshokin/security-system/internal/notifier"
)

// Notifier reports transitions. Implementations must not block and must
// handle their own failures.
type Notifier interface {
	LogTransition(ctx context.Context, kind notifier.Kind, state security.CurrentState)
	PlayCue(ctx context.Context, cue security.Cue)
	StopCue(ctx context.Context)
}

// Host is an external surface that mirrors the accessory properties.
// It is told about every change, including the ones the controller forces
// on its own (switch forced off, target forced to disarmed).
// Implementations are called under the controller lock and must not block
// or call back into the controller synchronously.
type Host interface {
	UpdateCurrentState(ctx context.Context, state security.CurrentState)
	UpdateTargetState(ctx context.Context, mode security.Mode)
	UpdateSwitchOn(ctx context.Context, on bool)
}

// Settings holds the delays the controller is constructed with.
type Settings struct {
	// Name is the accessory name.
	Name string
	// ArmDelay is applied before an armed mode becomes current.
	ArmDelay time.Duration
	// TriggerDelay is applied before the siren switch becomes an alarm.
	TriggerDelay time.Duration
}

var (
	// ErrTransitionCanceled is returned by SetTargetState when the requested
	// transition was replaced by a newer one before its delay elapsed.
	ErrTransitionCanceled = errors.New("transition canceled by a newer request")
	// ErrInvalidMode is returned for values outside the Mode enum.
	ErrInvalidMode = errors.New("invalid mode")
)

// transitionKind tells what scheduled a pending transition.
type transitionKind uint8

const (
	// kindTarget transitions come from target-state requests.
	kindTarget transitionKind = iota
	// kindTrigger transitions come from the siren switch.
	kindTrigger
)

// transition is the single delayed state change the controller may hold.
type transition struct {
	// token identifies the transition in logs and makes cancellation exact.
	token uuid.UUID
	// kind tells what scheduled the transition.
	kind transitionKind
	// state is delivered when the timer fires.
	state security.CurrentState
	// deadline is when the timer fires.
	deadline time.Time
	// timer is the scheduled callback.
	timer clock.Timer
	// done receives the outcome for the waiting caller; nil when nobody waits.
	done chan error
}

// Controller owns the state of one security-system accessory.
type Controller struct {
	// ctx carries the logger for work that runs after a request returned.
	ctx context.Context
	// settings are fixed at construction.
	settings Settings
	// clock schedules delayed transitions.
	clock clock.Clock
	// notifier logs transitions and plays cues.
	notifier Notifier
	// host mirrors the properties on external surfaces.
	host Host

	// mu serialises requests and fired timers.
	mu sync.Mutex
	// current is the actual state.
	current security.CurrentState
	// target is the requested mode.
	target security.Mode
	// switchOn is the siren switch.
	switchOn bool
	// pending is the scheduled transition, if any.
	pending *transition
}

// Option configures the controller.
type Option func(*Controller)

// WithClock replaces the real clock.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) {
		if c != nil {
			ctrl.clock = c
		}
	}
}

// WithHost registers the surface mirroring the properties.
func WithHost(h Host) Option {
	return func(ctrl *Controller) {
		if h != nil {
			ctrl.host = h
		}
	}
}

// NewController creates a disarmed controller.
// ctx provides the logger used for transitions that fire asynchronously.
func NewController(ctx context.Context, settings Settings, n Notifier, opts ...Option) *Controller {
	if settings.ArmDelay < 0 {
		settings.ArmDelay = 0
	}

	if settings.TriggerDelay < 0 {
		settings.TriggerDelay = 0
	}

	c := &Controller{
		ctx:      context.WithoutCancel(logger.WithName(ctx, "controller")),
		settings: settings,
		clock:    clock.Real(),
		notifier: n,
		host:     Hosts(nil),
		current:  security.CurrentOff,
		target:   security.ModeOff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CurrentState returns the actual state.
func (c *Controller) CurrentState() security.CurrentState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

// TargetState returns the requested mode.
func (c *Controller) TargetState() security.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.target
}

// SwitchOn returns the siren switch state.
func (c *Controller) SwitchOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.switchOn
}

// Status returns a snapshot of the whole accessory.
func (c *Controller) Status() security.Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := security.Status{
		Name:     c.settings.Name,
		Current:  c.current,
		Target:   c.target,
		SwitchOn: c.switchOn,
	}

	if c.pending != nil {
		status.HasPending = true
		status.PendingState = c.pending.state
		status.PendingDeadline = c.pending.deadline
		status.PendingTrigger = c.pending.kind == kindTrigger
	}

	return status
}

// Settings returns the configured delays.
func (c *Controller) Settings() Settings {
	return c.settings
}

// SetTargetState requests a mode change. The target is recorded at once;
// the call returns after the current state has followed, which takes the arm
// delay for armed modes and no time for Off.
//
// If a newer request replaces this one first, ErrTransitionCanceled is returned.
// If ctx ends first, ctx.Err() is returned and the transition still happens.
func (c *Controller) SetTargetState(ctx context.Context, mode security.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}

	done := make(chan error, 1)

	c.mu.Lock()
	c.requestTargetLocked(mode, done)
	c.mu.Unlock()

	// Immediate transitions complete before a canceled ctx is looked at.
	select {
	case err := <-done:
		return err
	default:
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetSwitchOn sets the siren switch and returns immediately.
//
// Turning it on starts the trigger countdown unless the alarm is already
// sounding. While the alarm sounds, any write silences it and disarms.
// Turning it off alone does not cancel a running countdown.
func (c *Controller) SetSwitchOn(_ context.Context, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.switchOn = on
	c.host.UpdateSwitchOn(c.ctx, on)

	switch {
	case on && c.current != security.CurrentAlarmTriggered:
		logger.InfoKV(c.ctx, "Trigger timeout (Started)", "delay", c.settings.TriggerDelay)
		c.scheduleLocked(kindTrigger, security.CurrentAlarmTriggered, c.settings.TriggerDelay, nil)
	case c.current == security.CurrentAlarmTriggered:
		// Forced write-back of the target, handled as if the host had requested it.
		// The alarm is sounding, so the disarm path silences the siren.
		c.requestTargetLocked(security.ModeOff, nil)
	}

	return nil
}

// requestTargetLocked records the target and schedules the current state to follow.
// done, if not nil, receives the outcome.
func (c *Controller) requestTargetLocked(mode security.Mode, done chan error) {
	c.target = mode
	c.notifier.LogTransition(c.ctx, notifier.KindTarget, mode.State())
	c.host.UpdateTargetState(c.ctx, mode)

	if c.pending != nil && c.pending.kind == kindTrigger {
		c.cancelPendingLocked()
		logger.Info(c.ctx, "Trigger timeout (Cancelled)")
		c.forceSwitchOffLocked()
	}

	if c.current == security.CurrentAlarmTriggered {
		c.notifier.StopCue(c.ctx)
		c.forceSwitchOffLocked()
	}

	var delay time.Duration
	if mode.Armed() {
		delay = c.settings.ArmDelay
	}

	c.scheduleLocked(kindTarget, mode.State(), delay, done)
}

// scheduleLocked replaces any pending transition with a new one.
// A zero delay applies the state at once without occupying the pending slot.
func (c *Controller) scheduleLocked(
	kind transitionKind,
	state security.CurrentState,
	delay time.Duration,
	done chan error,
) {
	if c.pending != nil {
		c.cancelPendingLocked()
	}

	if delay <= 0 {
		c.applyLocked(state)
		complete(done, nil)

		return
	}

	t := &transition{
		token:    uuid.New(),
		kind:     kind,
		state:    state,
		deadline: c.clock.Now().Add(delay),
		done:     done,
	}

	// The callback needs the lock held here, so it cannot run before pending is set.
	t.timer = c.clock.AfterFunc(delay, func() { c.fire(t) })
	c.pending = t

	logger.DebugKV(c.ctx, "Transition scheduled", "token", t.token, "state", state, "delay", delay)
}

// fire applies a transition whose delay elapsed, unless it was canceled meanwhile.
func (c *Controller) fire(t *transition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Canceled after the timer started but before it got the lock.
	if c.pending != t {
		return
	}

	c.pending = nil
	c.applyLocked(t.state)
	complete(t.done, nil)
}

// cancelPendingLocked stops the pending timer and fails its waiter.
func (c *Controller) cancelPendingLocked() {
	t := c.pending
	c.pending = nil

	t.timer.Stop()
	complete(t.done, ErrTransitionCanceled)

	logger.DebugKV(c.ctx, "Transition canceled", "token", t.token, "state", t.state)
}

// applyLocked makes state current and plays the matching cue.
func (c *Controller) applyLocked(state security.CurrentState) {
	c.current = state
	c.host.UpdateCurrentState(c.ctx, state)
	c.notifier.LogTransition(c.ctx, notifier.KindCurrent, state)
	c.notifier.PlayCue(c.ctx, security.CueFor(state))
}

// forceSwitchOffLocked turns the siren switch off and tells the host about it.
func (c *Controller) forceSwitchOffLocked() {
	if !c.switchOn {
		return
	}

	c.switchOn = false
	c.host.UpdateSwitchOn(c.ctx, false)
}

func complete(done chan error, err error) {
	if done != nil {
		done <- err
	}
}
