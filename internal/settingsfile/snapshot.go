// SPDX-License-Identifier: MIT

package settingsfile

import "github.com/xanmankey/WiiMix/internal/settings"

// Snapshot is everything a settings file can describe: the shared fields
// plus a draft of each configurable mode. Only the draft matching
// Common.Mode() is active; the other keeps whatever the user last entered.
// The shared fields embedded in the drafts are ignored; Common is
// authoritative.
type Snapshot struct {
	Common  settings.Settings
	Bingo   settings.BingoSettings
	Shuffle settings.ShuffleSettings
}

// NewSnapshot returns a snapshot with default drafts around common.
func NewSnapshot(common settings.Settings) Snapshot {
	return Snapshot{
		Common:  common.Clone(),
		Bingo:   settings.NewBingoSettings(common),
		Shuffle: settings.NewShuffleSettings(common),
	}
}

// Active builds the variant selected by Common.Mode().
func (s Snapshot) Active() settings.ModeSettings {
	switch s.Common.Mode() {
	case settings.ModeShuffle:
		return s.Shuffle.WithCommon(s.Common)
	case settings.ModeRogue:
		return settings.NewRogueSettings(s.Common)
	default:
		return s.Bingo.WithCommon(s.Common)
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Common:  s.Common.Clone(),
		Bingo:   s.Bingo.Clone(),
		Shuffle: s.Shuffle.Clone(),
	}
}
