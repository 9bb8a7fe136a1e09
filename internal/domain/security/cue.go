package security

// Cue is a notification played when the system settles into a state.
type Cue string

const (
	// CueSirenLoop is the looping alarm sound.
	CueSirenLoop Cue = "siren-loop"
	// CueArmed is played once when any armed mode takes effect.
	CueArmed Cue = "armed"
	// CueDisarmed is played once when the system is disarmed.
	CueDisarmed Cue = "disarmed"
)

// CueFor returns the cue matching the resulting state.
func CueFor(state CurrentState) Cue {
	switch state {
	case CurrentAlarmTriggered:
		return CueSirenLoop
	case CurrentOff:
		return CueDisarmed
	default:
		return CueArmed
	}
}

// Loops reports whether the cue repeats until it is stopped.
func (c Cue) Loops() bool {
	return c == CueSirenLoop
}

// String implements fmt.Stringer.
func (c Cue) String() string {
	return string(c)
}
