// SPDX-License-Identifier: MIT

package settings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCardSizeAcceptsOddPerfectSquares(t *testing.T) {
	for _, v := range []int{9, 25, 49, 81, 121, 3037000499 * 3037000499} {
		b := NewBingoSettings(Settings{})
		b.SetCardSize(v)
		assert.Equal(t, v, b.CardSize())
	}
}

func TestSetCardSizeIgnoresInvalid(t *testing.T) {
	b := NewBingoSettings(Settings{})
	require.True(t, b.TrySetCardSize(49))

	for _, v := range []int{4, 16, 10, 15, 3, 0, -9, math.MaxInt64} {
		b.SetCardSize(v)
		assert.Equal(t, 49, b.CardSize(), "size %d should be ignored", v)
		assert.False(t, b.TrySetCardSize(v))
	}
}

func TestAddThenRemovePlayerLeavesNoEntry(t *testing.T) {
	b := NewBingoSettings(Settings{})
	require.True(t, b.AddPlayer(2, PlayerInfo{Color: ColorBlue, Name: "luigi"}))
	require.True(t, b.AddPlayer(0, PlayerInfo{Color: ColorBlue, Name: "mario"}))

	b.RemovePlayer(2)

	players := b.Players()
	_, ok := players[2]
	assert.False(t, ok)
	assert.Len(t, players, 1)
	assert.Equal(t, []Player{0}, b.PlayerSlots())

	b.RemovePlayer(0)
	assert.Empty(t, b.Players())
}

func TestAddPlayerIgnoresUnknownSlotOrColor(t *testing.T) {
	b := NewBingoSettings(Settings{})
	assert.False(t, b.AddPlayer(MaxPlayers, PlayerInfo{Color: ColorRed}))
	assert.False(t, b.AddPlayer(0, PlayerInfo{Color: Color(42)}))
	assert.Empty(t, b.Players())
}

func TestSetPlayersReplacesMapping(t *testing.T) {
	b := NewBingoSettings(Settings{})
	b.AddPlayer(5, PlayerInfo{Color: ColorPink, Name: "peach"})

	in := map[Player]PlayerInfo{
		1:  {Color: ColorGreen, Name: "yoshi"},
		12: {Color: ColorGreen, Name: "nobody"},
	}
	b.SetPlayers(in)

	assert.Equal(t, map[Player]PlayerInfo{1: {Color: ColorGreen, Name: "yoshi"}}, b.Players())

	in[1] = PlayerInfo{Color: ColorRed}
	info, ok := b.Player(1)
	require.True(t, ok)
	assert.Equal(t, ColorGreen, info.Color, "mapping must be copied")
}

func TestBingoValidate(t *testing.T) {
	b := NewBingoSettings(sampleCommon())
	b.AddPlayer(0, PlayerInfo{Color: ColorRed, Name: "p1"})
	require.NoError(t, b.Validate())

	b.cardSize = 16
	assert.Error(t, b.Validate())
}

func TestShuffleValidate(t *testing.T) {
	s := NewShuffleSettings(Settings{})
	require.NoError(t, s.Validate())

	s.SetMinTimeBetweenSwitch(200)
	s.SetMaxTimeBetweenSwitch(100)
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minTimeBetweenSwitch")

	s.SetMinTimeBetweenSwitch(10)
	s.SetNumberOfSwitches(0)
	assert.Error(t, s.Validate())

	s.SetEndless(true)
	assert.NoError(t, s.Validate())
}

func TestShuffleSettersDoNotEnforceOrdering(t *testing.T) {
	s := NewShuffleSettings(Settings{})
	s.SetMinTimeBetweenSwitch(500)
	assert.Equal(t, 500, s.MinTimeBetweenSwitch())
	assert.Equal(t, DefaultMaxTimeBetweenSwitch, s.MaxTimeBetweenSwitch())
}
