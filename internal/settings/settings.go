// SPDX-License-Identifier: MIT

// Package settings models a WiiMix session configuration: the fields shared
// by every mode and the Bingo, Shuffle and Rogue variants built on top of
// them.
//
// Setters follow a validate-or-ignore rule. A value that fails validation is
// dropped and the previous value is kept; callers re-read the getter (or use
// the Try* form) to learn whether the update took effect.
package settings

import (
	"cmp"
	"maps"
	"slices"

	"github.com/xanmankey/WiiMix/internal/validate"
)

// GameID is the stable identifier of an installed game image, e.g. "GALE01".
type GameID string

// GameReference identifies a game known to the game catalog.
type GameReference struct {
	ID    GameID
	Title string
	Path  string
}

// ObjectiveID references a rule in the objective catalog.
type ObjectiveID int

// ModeSettings is implemented by every mode variant.
type ModeSettings interface {
	Mode() Mode
	Common() Settings
	Validate() error
	MarshalJSON() ([]byte, error)
}

// Settings holds the fields shared by every mode. The zero value is the
// "not yet configured" state: Easy, Bingo, untested bank, no objectives
// and no games.
type Settings struct {
	difficulty    Difficulty
	mode          Mode
	saveStateBank SaveStateBank
	objectives    []ObjectiveID
	games         map[GameID]GameReference
}

// NewSettings builds common settings from explicit values. Invalid enum
// codes are ignored and leave the default in place.
func NewSettings(difficulty Difficulty, mode Mode, bank SaveStateBank, objectives []ObjectiveID, games []GameReference) Settings {
	var s Settings
	s.SetDifficulty(difficulty)
	s.SetMode(mode)
	s.SetSaveStateBank(bank)
	s.SetObjectives(objectives)
	s.SetGamesList(games)
	return s
}

func (s Settings) Difficulty() Difficulty { return s.difficulty }

func (s *Settings) SetDifficulty(d Difficulty) {
	if d.Valid() {
		s.difficulty = d
	}
}

func (s Settings) Mode() Mode { return s.mode }

func (s *Settings) SetMode(m Mode) {
	if m.Valid() {
		s.mode = m
	}
}

func (s Settings) SaveStateBank() SaveStateBank { return s.saveStateBank }

func (s *Settings) SetSaveStateBank(b SaveStateBank) {
	if b.Valid() {
		s.saveStateBank = b
	}
}

// Objectives returns a copy of the ordered objective list.
func (s Settings) Objectives() []ObjectiveID { return slices.Clone(s.objectives) }

func (s *Settings) SetObjectives(ids []ObjectiveID) {
	if len(ids) == 0 {
		s.objectives = nil
		return
	}
	s.objectives = slices.Clone(ids)
}

// GamesList returns the selected games ordered by ID.
func (s Settings) GamesList() []GameReference {
	out := make([]GameReference, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b GameReference) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// GameIDs returns the selected game IDs in sorted order.
func (s Settings) GameIDs() []GameID {
	ids := slices.Collect(maps.Keys(s.games))
	slices.Sort(ids)
	return ids
}

// SetGamesList replaces the selection. Duplicate IDs collapse to the last
// reference given; references without an ID are skipped.
func (s *Settings) SetGamesList(games []GameReference) {
	s.games = nil
	for _, g := range games {
		s.AddGame(g)
	}
}

// AddGame inserts or replaces a game by ID.
func (s *Settings) AddGame(g GameReference) {
	if g.ID == "" {
		return
	}
	if s.games == nil {
		s.games = make(map[GameID]GameReference)
	}
	s.games[g.ID] = g
}

func (s *Settings) RemoveGame(id GameID) {
	delete(s.games, id)
	if len(s.games) == 0 {
		s.games = nil
	}
}

func (s Settings) HasGame(id GameID) bool {
	_, ok := s.games[id]
	return ok
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	out := s
	out.objectives = slices.Clone(s.objectives)
	if len(s.games) > 0 {
		out.games = maps.Clone(s.games)
	} else {
		out.games = nil
	}
	return out
}

// Common returns a deep copy of the shared fields.
func (s Settings) Common() Settings { return s.Clone() }

// Validate checks the enum codes. Setters already enforce them; the check
// matters for values assembled elsewhere.
func (s Settings) Validate() error {
	v := validate.New()
	s.validateInto(v)
	return v.Err()
}

func (s Settings) validateInto(v *validate.Validator) {
	v.Range("difficulty", int(s.difficulty), 0, len(difficultyTitles)-1)
	v.Range("mode", int(s.mode), 0, len(modeTitles)-1)
	v.Range("saveStateBank", int(s.saveStateBank), 0, len(saveStateBankTitles)-1)
}

// Variant builds the variant selected by the mode discriminant, with the
// variant's own fields at their defaults.
func (s Settings) Variant() ModeSettings {
	switch s.mode {
	case ModeShuffle:
		return NewShuffleSettings(s)
	case ModeRogue:
		return NewRogueSettings(s)
	default:
		return NewBingoSettings(s)
	}
}
