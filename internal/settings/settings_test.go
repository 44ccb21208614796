// SPDX-License-Identifier: MIT

package settings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpSettings = cmp.AllowUnexported(Settings{}, BingoSettings{}, ShuffleSettings{}, RogueSettings{})

func sampleCommon() Settings {
	return NewSettings(
		DifficultyHard,
		ModeShuffle,
		SaveStateBankVerified,
		[]ObjectiveID{42, 7, 19},
		[]GameReference{
			{ID: "RMGE01", Title: "Super Mario Galaxy", Path: "/games/smg.rvz"},
			{ID: "GALE01", Title: "Super Smash Bros. Melee", Path: "/games/ssbm.iso"},
		},
	)
}

func TestZeroSettingsIsUnconfigured(t *testing.T) {
	var s Settings
	assert.Equal(t, DifficultyEasy, s.Difficulty())
	assert.Equal(t, ModeBingo, s.Mode())
	assert.Equal(t, SaveStateBankUntested, s.SaveStateBank())
	assert.Empty(t, s.Objectives())
	assert.Empty(t, s.GamesList())
	require.NoError(t, s.Validate())
}

func TestEnumSettersIgnoreInvalidCodes(t *testing.T) {
	s := sampleCommon()

	s.SetDifficulty(Difficulty(99))
	s.SetMode(Mode(-1))
	s.SetSaveStateBank(SaveStateBank(5))

	assert.Equal(t, DifficultyHard, s.Difficulty())
	assert.Equal(t, ModeShuffle, s.Mode())
	assert.Equal(t, SaveStateBankVerified, s.SaveStateBank())
}

func TestGamesListIsSetSortedByID(t *testing.T) {
	s := sampleCommon()
	s.AddGame(GameReference{ID: "GALE01", Title: "Melee (NTSC)"})
	s.AddGame(GameReference{Title: "no id"})

	games := s.GamesList()
	require.Len(t, games, 2)
	assert.Equal(t, GameID("GALE01"), games[0].ID)
	assert.Equal(t, "Melee (NTSC)", games[0].Title)
	assert.Equal(t, []GameID{"GALE01", "RMGE01"}, s.GameIDs())

	s.RemoveGame("GALE01")
	assert.False(t, s.HasGame("GALE01"))
	assert.True(t, s.HasGame("RMGE01"))
}

func TestObjectivesKeepOrder(t *testing.T) {
	s := sampleCommon()
	assert.Equal(t, []ObjectiveID{42, 7, 19}, s.Objectives())

	got := s.Objectives()
	got[0] = 1
	assert.Equal(t, ObjectiveID(42), s.Objectives()[0], "getter must return a copy")
}

func TestCloneIsDeep(t *testing.T) {
	s := sampleCommon()
	c := s.Clone()

	c.AddGame(GameReference{ID: "SB4E01"})
	c.SetObjectives([]ObjectiveID{1})

	assert.False(t, s.HasGame("SB4E01"))
	assert.Equal(t, []ObjectiveID{42, 7, 19}, s.Objectives())
}

func TestVariantFollowsMode(t *testing.T) {
	s := sampleCommon()

	v := s.Variant()
	_, ok := v.(ShuffleSettings)
	require.True(t, ok, "got %T", v)

	s.SetMode(ModeRogue)
	_, ok = s.Variant().(RogueSettings)
	require.True(t, ok)

	s.SetMode(ModeBingo)
	b, ok := s.Variant().(BingoSettings)
	require.True(t, ok)
	assert.Equal(t, DefaultCardSize, b.CardSize())
}

func TestVariantsPinModeAndCopyCommon(t *testing.T) {
	common := sampleCommon()

	b := NewBingoSettings(common)
	assert.Equal(t, ModeBingo, b.Mode())
	b.SetMode(ModeRogue)
	assert.Equal(t, ModeBingo, b.Mode())

	sh := NewShuffleSettings(common)
	assert.Equal(t, ModeShuffle, sh.Mode())

	r := NewRogueSettings(common)
	assert.Equal(t, ModeRogue, r.Mode())
	r.SetMode(ModeBingo)
	assert.Equal(t, ModeRogue, r.Mode())

	// the variant owns its copy
	b.AddGame(GameReference{ID: "SB4E01"})
	assert.False(t, common.HasGame("SB4E01"))

	want := common.Clone()
	want.mode = ModeRogue
	if diff := cmp.Diff(want, r.Common(), cmpSettings); diff != "" {
		t.Errorf("common fields mismatch (-want +got):\n%s", diff)
	}
}

func TestWithCommonKeepsVariantFields(t *testing.T) {
	b := NewBingoSettings(Settings{})
	b.SetCardSize(49)
	b.SetLockout(true)

	next := b.WithCommon(sampleCommon())
	assert.Equal(t, 49, next.CardSize())
	assert.True(t, next.Lockout())
	assert.Equal(t, DifficultyHard, next.Difficulty())
	assert.Equal(t, ModeBingo, next.Mode())
}
