// SPDX-License-Identifier: MIT

package testutil

import (
	"github.com/xanmankey/WiiMix/internal/catalog"
	"github.com/xanmankey/WiiMix/internal/settings"
)

// Game IDs present in Catalog.
const (
	GameMelee  settings.GameID = "GALE01"
	GameGalaxy settings.GameID = "RMGE01"
	GameKart   settings.GameID = "RMCE01"
)

// Catalog returns a small in-memory game and objective catalog.
// Objectives 1 and 2 belong to Melee, 3 to Galaxy and 4 to Mario Kart.
func Catalog() *catalog.Memory {
	return catalog.NewMemory(
		[]settings.GameReference{
			{ID: GameMelee, Title: "Super Smash Bros. Melee", Path: "/games/GALE01.iso"},
			{ID: GameGalaxy, Title: "Super Mario Galaxy", Path: "/games/RMGE01.rvz"},
			{ID: GameKart, Title: "Mario Kart Wii", Path: "/games/RMCE01.wbfs"},
		},
		[]catalog.Objective{
			{ID: 1, Title: "Beat Classic Mode", GameID: GameMelee},
			{ID: 2, Title: "Clear Break the Targets", GameID: GameMelee},
			{ID: 3, Title: "Collect 10 Power Stars", GameID: GameGalaxy},
			{ID: 4, Title: "Win the Mushroom Cup", GameID: GameKart},
		},
	)
}

// Common returns shared settings that resolve fully against Catalog.
func Common(mode settings.Mode) settings.Settings {
	return settings.NewSettings(
		settings.DifficultyNormal,
		mode,
		settings.SaveStateBankVerified,
		[]settings.ObjectiveID{1, 3},
		[]settings.GameReference{
			{ID: GameMelee, Title: "Super Smash Bros. Melee", Path: "/games/GALE01.iso"},
			{ID: GameGalaxy, Title: "Super Mario Galaxy", Path: "/games/RMGE01.rvz"},
		},
	)
}
