// SPDX-License-Identifier: MIT

package session

import "strconv"

// State is the lifecycle position of a settings session.
type State int

const (
	StateUninitialized State = iota
	StateModeSelected
	StateConfiguring
	StateCommitted
	StateLoaded
	StateSaved
)

var stateNames = []string{"uninitialized", "mode_selected", "configuring", "committed", "loaded", "saved"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

// HasMode reports whether a mode has been chosen in this state.
func (s State) HasMode() bool { return s != StateUninitialized }
