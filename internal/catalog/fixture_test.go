// SPDX-License-Identifier: MIT

package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xanmankey/WiiMix/internal/settings"
)

const fixtureYAML = `
games:
  - id: GALE01
    title: Super Smash Bros. Melee
    path: /games/ssbm.iso
  - id: RMGE01
    title: Super Mario Galaxy
objectives:
  - id: 1
    title: Beat Classic
    game: GALE01
  - id: 7
    title: Any game, any order
`

func TestParseFixture(t *testing.T) {
	f, err := ParseFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	require.Len(t, f.Games, 2)
	require.Len(t, f.Objectives, 2)

	m := NewMemoryFromFixture(f)
	assert.True(t, m.IsValid(t.Context(), settings.GameReference{ID: "RMGE01"}))
	o, err := m.LookupObjective(t.Context(), 7)
	require.NoError(t, err)
	assert.Equal(t, settings.GameID(""), o.GameID)
}

func TestParseFixtureEmpty(t *testing.T) {
	f, err := ParseFixture(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Games)
}

func TestParseFixtureRejectsUnknownFields(t *testing.T) {
	_, err := ParseFixture(strings.NewReader("games:\n  - id: GALE01\n    region: ntsc\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region")
}

func TestParseFixtureValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty id", "games:\n  - title: x\n", "games[0].id"},
		{"duplicate game", "games:\n  - id: A\n  - id: A\n", "duplicate game id"},
		{"duplicate objective", "objectives:\n  - id: 1\n  - id: 1\n", "duplicate objective id"},
		{"dangling game", "objectives:\n  - id: 1\n    game: NOPE\n", "unknown game"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
