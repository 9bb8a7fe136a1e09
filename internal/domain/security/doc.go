// Package security contains core domain types of the security system.
//
// It defines Mode (the armed or disarmed configuration a user asks for),
// CurrentState (what the system actually is, including the alarm), Cue
// (the notification played for a resulting state) and Status, a value
// snapshot of the whole accessory.
package security
