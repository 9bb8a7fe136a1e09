package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/security-system/internal/domain/security"
)

var errUnavailable = errors.New("unavailable")

// scriptedSource returns queued snapshots, repeating the last one.
type scriptedSource struct {
	mu    sync.Mutex
	steps []step
}

type step struct {
	status domain.Status
	err    error
}

func (s *scriptedSource) GetStatus(context.Context) (domain.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.steps[0]
	if len(s.steps) > 1 {
		s.steps = s.steps[1:]
	}

	return next.status, next.err
}

// TestWatch_ReportsChanges only reports the first snapshot and real changes.
func TestWatch_ReportsChanges(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		off := domain.Status{Current: domain.CurrentOff, Target: domain.ModeOff}
		arming := domain.Status{Current: domain.CurrentOff, Target: domain.ModeAway, HasPending: true, PendingState: domain.CurrentAway}
		away := domain.Status{Current: domain.CurrentAway, Target: domain.ModeAway}

		source := &scriptedSource{steps: []step{
			{status: off},
			{status: off},
			{err: errUnavailable},
			{status: arming},
			{status: away},
		}}

		ctx, cancel := context.WithCancel(context.Background())

		var changes []Change

		done := make(chan struct{})

		go func() {
			Watch(ctx, source, time.Second, func(c Change) { changes = append(changes, c) })
			close(done)
		}()

		time.Sleep(10 * time.Second)
		cancel()
		<-done

		require.Len(t, changes, 3)
		require.Equal(t, off, changes[0].Current)
		require.Equal(t, arming, changes[1].Current)
		require.Equal(t, off, changes[1].Previous)
		require.Equal(t, away, changes[2].Current)
	})
}

// TestChanged ignores fields that do not describe the state.
func TestChanged(t *testing.T) {
	t.Parallel()

	a := domain.Status{Name: "A", PendingDeadline: time.Unix(1, 0)}
	b := domain.Status{Name: "B", PendingDeadline: time.Unix(2, 0)}
	require.False(t, changed(a, b))

	b.SwitchOn = true
	require.True(t, changed(a, b))
}
