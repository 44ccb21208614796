// SPDX-License-Identifier: MIT

package settings

// RogueSettings carries only the shared fields.
type RogueSettings struct {
	Settings
}

// NewRogueSettings copies common and pins the mode to Rogue.
func NewRogueSettings(common Settings) RogueSettings {
	return RogueSettings{}.WithCommon(common)
}

// WithCommon returns a copy whose shared fields are taken from common.
func (r RogueSettings) WithCommon(common Settings) RogueSettings {
	r.Settings = common.Clone()
	r.Settings.mode = ModeRogue
	return r
}

// SetMode ignores the request: a variant's mode is fixed by its type.
func (r *RogueSettings) SetMode(Mode) {}

// Clone returns a deep copy.
func (r RogueSettings) Clone() RogueSettings {
	r.Settings = r.Settings.Clone()
	return r
}
