package clock

import (
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

// TestReal_AfterFunc verifies the callback fires after the delay and not before.
func TestReal_AfterFunc(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		var fired atomic.Bool

		c := Real()
		start := c.Now()
		c.AfterFunc(time.Second, func() { fired.Store(true) })

		time.Sleep(999 * time.Millisecond)
		synctest.Wait()
		require.False(t, fired.Load())

		time.Sleep(time.Millisecond)
		synctest.Wait()
		require.True(t, fired.Load())
		require.Equal(t, time.Second, c.Now().Sub(start))
	})
}

// TestReal_Stop ensures a stopped timer never runs its callback.
func TestReal_Stop(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		var fired atomic.Bool

		timer := Real().AfterFunc(time.Second, func() { fired.Store(true) })
		require.True(t, timer.Stop())

		time.Sleep(2 * time.Second)
		synctest.Wait()
		require.False(t, fired.Load())
	})
}
