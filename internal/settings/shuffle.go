// SPDX-License-Identifier: MIT

package settings

import "github.com/xanmankey/WiiMix/internal/validate"

// Shuffle defaults for a freshly selected mode.
const (
	DefaultNumberOfSwitches     = 10
	DefaultMinTimeBetweenSwitch = 30
	DefaultMaxTimeBetweenSwitch = 120
)

// ShuffleSettings extends Settings with the game switching schedule. Times
// are in seconds.
type ShuffleSettings struct {
	Settings

	numberOfSwitches     int
	minTimeBetweenSwitch int
	maxTimeBetweenSwitch int
	endless              bool
}

// NewShuffleSettings copies common and pins the mode to Shuffle.
func NewShuffleSettings(common Settings) ShuffleSettings {
	s := ShuffleSettings{
		numberOfSwitches:     DefaultNumberOfSwitches,
		minTimeBetweenSwitch: DefaultMinTimeBetweenSwitch,
		maxTimeBetweenSwitch: DefaultMaxTimeBetweenSwitch,
	}
	return s.WithCommon(common)
}

// WithCommon returns a copy of s whose shared fields are taken from common.
func (s ShuffleSettings) WithCommon(common Settings) ShuffleSettings {
	s.Settings = common.Clone()
	s.Settings.mode = ModeShuffle
	return s
}

// SetMode ignores the request: a variant's mode is fixed by its type.
func (s *ShuffleSettings) SetMode(Mode) {}

func (s ShuffleSettings) NumberOfSwitches() int { return s.numberOfSwitches }

func (s *ShuffleSettings) SetNumberOfSwitches(n int) { s.numberOfSwitches = n }

func (s ShuffleSettings) MinTimeBetweenSwitch() int { return s.minTimeBetweenSwitch }

func (s *ShuffleSettings) SetMinTimeBetweenSwitch(seconds int) { s.minTimeBetweenSwitch = seconds }

func (s ShuffleSettings) MaxTimeBetweenSwitch() int { return s.maxTimeBetweenSwitch }

func (s *ShuffleSettings) SetMaxTimeBetweenSwitch(seconds int) { s.maxTimeBetweenSwitch = seconds }

func (s ShuffleSettings) Endless() bool { return s.endless }

func (s *ShuffleSettings) SetEndless(endless bool) { s.endless = endless }

// Clone returns a deep copy.
func (s ShuffleSettings) Clone() ShuffleSettings {
	s.Settings = s.Settings.Clone()
	return s
}

// Validate reports schedule problems. Setters accept any value; the session
// refuses to start a shuffle that fails this check.
func (s ShuffleSettings) Validate() error {
	v := validate.New()
	s.Settings.validateInto(v)
	v.NonNegative("minTimeBetweenSwitch", s.minTimeBetweenSwitch)
	v.NonNegative("maxTimeBetweenSwitch", s.maxTimeBetweenSwitch)
	validate.Ordered(v, "minTimeBetweenSwitch", s.minTimeBetweenSwitch, s.maxTimeBetweenSwitch)
	if s.endless {
		v.NonNegative("numberOfSwitches", s.numberOfSwitches)
	} else {
		v.Positive("numberOfSwitches", s.numberOfSwitches)
	}
	return v.Err()
}
