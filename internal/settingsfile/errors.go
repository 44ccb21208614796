// SPDX-License-Identifier: MIT

package settingsfile

import (
	"errors"
	"fmt"
)

var (
	// ErrSectionNotFound is returned when the file has no [WiiMix] section.
	ErrSectionNotFound = errors.New("WiiMix section not found in settings file")
	// ErrNoGamesResolved is returned when none of the listed games is known.
	ErrNoGamesResolved = errors.New("Games in config not found in game list")
	// ErrNoObjectivesResolved is returned when none of the listed objectives is known.
	ErrNoObjectivesResolved = errors.New("Invalid or removed objectives found in objective list")
)

// MissingKeyError reports a required key that is absent or empty.
type MissingKeyError struct {
	Key   string // INI key, e.g. "CardSize"
	Label string // human readable name, e.g. "Card Size"
}

func (e *MissingKeyError) Error() string {
	if e.Label == "" || e.Label == e.Key {
		return fmt.Sprintf("%s not found in WiiMix settings file", e.Key)
	}
	return fmt.Sprintf("%s not found in WiiMix settings file (key %s)", e.Label, e.Key)
}

// InvalidValueError reports a present value that cannot be parsed.
type InvalidValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q in WiiMix settings file: %v", e.Key, e.Value, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }
