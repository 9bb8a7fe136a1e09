// Package clock abstracts time so delayed transitions can be scheduled and canceled.
package clock

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running.
	// It returns false if the callback has already been started.
	Stop() bool
}

// Clock schedules callbacks and reports the current time.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// realClock is backed by the time package.
type realClock struct{}

// Real returns a Clock backed by the time package.
//
//nolint:ireturn // Clock is the seam consumers depend on.
func Real() Clock {
	return realClock{}
}

// Now returns the current local time.
func (realClock) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f in its own goroutine after d elapses.
//
//nolint:ireturn // Timer is the seam consumers depend on.
func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
