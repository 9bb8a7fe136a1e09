// Package alarm implements the security-system state machine.
//
// Controller tracks the current state, the target mode and the siren
// switch. Mode changes take effect after the arm delay (disarming is
// immediate) and the siren switch raises the alarm after the trigger delay
// unless a mode change cancels it first. At most one delayed transition is
// pending at any time; a single mutex serialises requests and fired timers,
// and a fired timer that lost its slot to a newer request does nothing.
//
// The controller talks to the outside through three seams: a clock, a
// notifier (logs and cues) and hosts (surfaces mirroring the properties,
// including the values the controller forces on its own).
package alarm
