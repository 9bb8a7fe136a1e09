// Package sound plays the audio cues of the security system.
//
// Files are checked once at load time; playback runs an external player
// process per cue, and the siren cue restarts the process until stopped.
package sound
