package security

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mode is the configuration requested by the user: disarmed or one of the armed variants.
type Mode uint8

const (
	// ModeOff means the system is disarmed.
	ModeOff Mode = iota
	// ModeHome is armed while people stay at home.
	ModeHome
	// ModeAway is armed while the premises are empty.
	ModeAway
	// ModeNight is armed for the night.
	ModeNight
)

// CurrentState is the actual, externally observed state of the system.
type CurrentState uint8

const (
	// CurrentOff means the system is disarmed.
	CurrentOff CurrentState = iota
	// CurrentHome means the system is armed in home mode.
	CurrentHome
	// CurrentAway means the system is armed in away mode.
	CurrentAway
	// CurrentNight means the system is armed in night mode.
	CurrentNight
	// CurrentAlarmTriggered means the alarm is sounding.
	CurrentAlarmTriggered
)

// ErrUnknownState is returned when a state name cannot be parsed.
var ErrUnknownState = errors.New("unknown state")

//nolint:gochecknoglobals // Lookup tables for names are read-only.
var (
	stateNames = map[CurrentState]string{
		CurrentOff:            "off",
		CurrentHome:           "home",
		CurrentAway:           "away",
		CurrentNight:          "night",
		CurrentAlarmTriggered: "alarm_triggered",
	}

	stateLabels = map[CurrentState]string{
		CurrentOff:            "Off",
		CurrentHome:           "Home",
		CurrentAway:           "Away",
		CurrentNight:          "Night",
		CurrentAlarmTriggered: "Alarm triggered",
	}
)

// State returns the current state the mode settles into once applied.
func (m Mode) State() CurrentState {
	return CurrentState(m)
}

// Armed reports whether the mode is one of the armed variants.
func (m Mode) Armed() bool {
	return m != ModeOff
}

// String returns the wire name of the mode.
func (m Mode) String() string {
	return m.State().String()
}

// Label returns the human-readable name used in logs.
func (m Mode) Label() string {
	return m.State().Label()
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m <= ModeNight
}

// Armed reports whether the state is one of the armed variants.
// The triggered alarm is not considered armed.
func (s CurrentState) Armed() bool {
	return s == CurrentHome || s == CurrentAway || s == CurrentNight
}

// Mode converts the state back to a mode.
// The second value is false for the triggered alarm, which has no mode.
func (s CurrentState) Mode() (Mode, bool) {
	if s == CurrentAlarmTriggered || !s.Valid() {
		return ModeOff, false
	}

	return Mode(s), true
}

// String returns the wire name of the state.
func (s CurrentState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// Label returns the human-readable name used in logs.
func (s CurrentState) Label() string {
	if label, ok := stateLabels[s]; ok {
		return label
	}

	return "Unknown state"
}

// Valid reports whether s is a known state.
func (s CurrentState) Valid() bool {
	return s <= CurrentAlarmTriggered
}

// ParseCurrentState converts a wire name into a CurrentState.
// Matching is case-insensitive and ignores surrounding spaces.
func ParseCurrentState(s string) (CurrentState, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for state, stateName := range stateNames {
		if stateName == name {
			return state, nil
		}
	}

	return CurrentOff, fmt.Errorf("%w: %q", ErrUnknownState, s)
}

// ParseMode converts a wire name into a Mode.
// "disarm" and "disarmed" are accepted as aliases of "off".
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "disarm" || name == "disarmed" {
		return ModeOff, nil
	}

	state, err := ParseCurrentState(name)
	if err != nil {
		return ModeOff, err
	}

	mode, ok := state.Mode()
	if !ok {
		return ModeOff, fmt.Errorf("%w: %q is not a mode", ErrUnknownState, s)
	}

	return mode, nil
}

// Status is a point-in-time snapshot of the accessory.
type Status struct {
	// Name is the configured accessory name.
	Name string
	// Current is the actual state of the system.
	Current CurrentState
	// Target is the mode the system is moving to or has reached.
	Target Mode
	// SwitchOn is the state of the siren switch.
	SwitchOn bool
	// PendingTrigger is true while the siren switch countdown is running.
	PendingTrigger bool
	// PendingState is the state a pending transition will deliver.
	// It is meaningful only when HasPending is true.
	PendingState CurrentState
	// HasPending is true while any delayed transition is scheduled.
	HasPending bool
	// PendingDeadline is when the pending transition fires.
	PendingDeadline time.Time
}

// ErrInvalidSwitch is returned for switch values that are not on or off.
var ErrInvalidSwitch = errors.New("switch state must be on or off")

// ParseSwitch accepts on/off, true/false and 1/0.
func ParseSwitch(s string) (bool, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	switch name {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}

	on, err := strconv.ParseBool(name)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidSwitch, s)
	}

	return on, nil
}
