package siren

import "sync"

// FakeLine records written values for tests.
type FakeLine struct {
	mu sync.Mutex

	// Values holds every value written, in order.
	Values []int
	// SetErr, if set, is returned by SetValue.
	SetErr error
	// Closed tracks if Close was called.
	Closed bool
}

// SetValue records the value.
func (f *FakeLine) SetValue(value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SetErr != nil {
		return f.SetErr
	}

	f.Values = append(f.Values, value)

	return nil
}

// Close marks the line as closed.
func (f *FakeLine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Closed = true

	return nil
}

// Last returns the most recent value, or -1 if nothing was written.
func (f *FakeLine) Last() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.Values) == 0 {
		return -1
	}

	return f.Values[len(f.Values)-1]
}
