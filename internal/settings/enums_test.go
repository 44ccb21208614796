// SPDX-License-Identifier: MIT

package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every enum value must carry a title that parses back to itself; the INI
// format depends on it.
func TestEnumTitlesRoundTrip(t *testing.T) {
	for _, d := range Difficulties() {
		got, err := ParseDifficulty(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.NotEmpty(t, m.Description())
	}
	for _, b := range SaveStateBanks() {
		got, err := ParseSaveStateBank(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
	for _, bt := range BingoTypes() {
		got, err := ParseBingoType(bt.String())
		require.NoError(t, err)
		assert.Equal(t, bt, got)
	}
	for _, c := range Colors() {
		got, err := ParseColor(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	for p := Player(0); p < MaxPlayers; p++ {
		got, err := ParsePlayer(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestEnumTitlesAreUnique(t *testing.T) {
	for name, titles := range map[string][]string{
		"difficulty": difficultyTitles,
		"mode":       modeTitles,
		"bank":       saveStateBankTitles,
		"bingoType":  bingoTypeTitles,
		"color":      colorTitles,
	} {
		seen := map[string]bool{}
		for _, title := range titles {
			require.NotEmpty(t, title, name)
			require.False(t, seen[title], "%s title %q repeated", name, title)
			seen[title] = true
		}
	}
	assert.Len(t, modeDescriptions, len(modeTitles))
}

func TestParseTitleIsCaseInsensitive(t *testing.T) {
	m, err := ParseMode("  sHuFfLe ")
	require.NoError(t, err)
	assert.Equal(t, ModeShuffle, m)

	bt, err := ParseBingoType("time attack")
	require.NoError(t, err)
	assert.Equal(t, BingoTypeTimeAttack, bt)

	p, err := ParsePlayer("PLAYER 9")
	require.NoError(t, err)
	assert.Equal(t, Player(8), p)
}

func TestParseTitleRejectsUnknown(t *testing.T) {
	_, err := ParseDifficulty("Impossible")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTitle))
	assert.Contains(t, err.Error(), `"Impossible"`)

	_, err = ParseMode("0")
	assert.ErrorIs(t, err, ErrUnknownTitle)

	for _, title := range []string{"Player 0", "Player 10", "Player", "Gamer 1"} {
		_, err = ParsePlayer(title)
		assert.ErrorIs(t, err, ErrUnknownTitle, title)
	}
}

func TestOutOfRangeCodes(t *testing.T) {
	assert.False(t, Difficulty(-1).Valid())
	assert.False(t, Mode(3).Valid())
	assert.False(t, Color(8).Valid())
	assert.False(t, Player(MaxPlayers).Valid())
	assert.Equal(t, "Unknown(7)", Mode(7).String())
	assert.Equal(t, "", Mode(7).Description())
}
