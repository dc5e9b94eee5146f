// Package vt102 implements a byte-driven control-sequence parser for a
// DEC VT102-class terminal: C0 controls, CSI escape sequences, and SGR
// parameters per ECMA-48. It drives a caller-supplied Handler; it performs
// no screen rendering and no I/O of its own.
package vt102

import "fmt"

// State is one of the parser's three states.
type State uint8

const (
	// StateGround is the default state: bytes are characters or C0 controls.
	StateGround State = iota
	// StateEscape follows a bare ESC (0x1B), awaiting a dispatch byte.
	StateEscape
	// StateCSI follows ESC [ and accumulates parameters until a final byte.
	StateCSI
)

var stateNames = [...]string{"Ground", "Escape", "CSI"}

// String returns the state's name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}
