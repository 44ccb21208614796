// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/xanmankey/WiiMix/internal/settings"
	"github.com/xanmankey/WiiMix/internal/validate"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML import format of a catalog:
//
//	games:
//	  - id: GALE01
//	    title: Super Smash Bros. Melee
//	    path: /games/ssbm.iso
//	objectives:
//	  - id: 1
//	    title: Beat Classic mode
//	    game: GALE01
type Fixture struct {
	Games      []GameEntry      `yaml:"games"`
	Objectives []ObjectiveEntry `yaml:"objectives"`
}

// GameEntry is one game in a Fixture.
type GameEntry struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
}

// ObjectiveEntry is one objective in a Fixture.
type ObjectiveEntry struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Game        string `yaml:"game"`
}

// ParseFixture decodes a catalog fixture. Unknown fields are rejected.
func ParseFixture(r io.Reader) (Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Fixture{}, fmt.Errorf("read catalog fixture: %w", err)
	}

	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, fmt.Errorf("parse catalog fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

// Validate checks IDs are present and unique and that objectives point at
// games of the same fixture.
func (f Fixture) Validate() error {
	v := validate.New()
	games := make(map[string]bool, len(f.Games))
	for i, g := range f.Games {
		field := fmt.Sprintf("games[%d].id", i)
		v.NotEmpty(field, g.ID)
		if games[g.ID] {
			v.AddError(field, "duplicate game id", g.ID)
		}
		games[g.ID] = true
	}
	objectives := make(map[int]bool, len(f.Objectives))
	for i, o := range f.Objectives {
		if objectives[o.ID] {
			v.AddError(fmt.Sprintf("objectives[%d].id", i), "duplicate objective id", o.ID)
		}
		objectives[o.ID] = true
		if o.Game != "" && !games[o.Game] {
			v.AddError(fmt.Sprintf("objectives[%d].game", i), "unknown game", o.Game)
		}
	}
	return v.Err()
}

// GameReferences converts the fixture games.
func (f Fixture) GameReferences() []settings.GameReference {
	out := make([]settings.GameReference, 0, len(f.Games))
	for _, g := range f.Games {
		out = append(out, settings.GameReference{ID: settings.GameID(g.ID), Title: g.Title, Path: g.Path})
	}
	return out
}

// ObjectiveList converts the fixture objectives.
func (f Fixture) ObjectiveList() []Objective {
	out := make([]Objective, 0, len(f.Objectives))
	for _, o := range f.Objectives {
		out = append(out, Objective{
			ID:          settings.ObjectiveID(o.ID),
			Title:       o.Title,
			Description: o.Description,
			GameID:      settings.GameID(o.Game),
		})
	}
	return out
}

// NewMemoryFromFixture builds an in-memory catalog from f.
func NewMemoryFromFixture(f Fixture) *Memory {
	return NewMemory(f.GameReferences(), f.ObjectiveList())
}
