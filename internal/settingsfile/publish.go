// SPDX-License-Identifier: MIT

package settingsfile

import (
	"strconv"
	"strings"

	"github.com/xanmankey/WiiMix/internal/configstore"
	"github.com/xanmankey/WiiMix/internal/settings"
)

// Entries lists the configuration store values mirroring snap: every common
// key plus the keys of the active mode. Enumerations are published as their
// integer codes.
func Entries(snap Snapshot) []configstore.Entry {
	c := snap.Common
	entries := []configstore.Entry{
		{Key: configstore.KeyGameIDs, Value: JoinGameIDs(c.GameIDs())},
		{Key: configstore.KeyMode, Value: int(c.Mode())},
		{Key: configstore.KeyDifficulty, Value: int(c.Difficulty())},
		{Key: configstore.KeyObjectiveIDs, Value: JoinObjectiveIDs(c.Objectives())},
		{Key: configstore.KeySaveStateBank, Value: int(c.SaveStateBank())},
	}

	switch c.Mode() {
	case settings.ModeBingo:
		b := snap.Bingo
		entries = append(entries,
			configstore.Entry{Key: configstore.KeyIsLockout, Value: b.Lockout()},
			configstore.Entry{Key: configstore.KeyCardSize, Value: b.CardSize()},
			configstore.Entry{Key: configstore.KeyBingoType, Value: int(b.BingoType())},
			configstore.Entry{Key: configstore.KeyIsTeams, Value: b.Teams()},
			configstore.Entry{Key: configstore.KeyPlayers, Value: FormatPlayers(b)},
			configstore.Entry{Key: configstore.KeyLobbyID, Value: b.LobbyID()},
			configstore.Entry{Key: configstore.KeySeed, Value: b.Seed()},
			configstore.Entry{Key: configstore.KeyLobbyPassword, Value: b.LobbyPassword()},
		)
	case settings.ModeShuffle:
		s := snap.Shuffle
		entries = append(entries,
			configstore.Entry{Key: configstore.KeyNumberOfSwitches, Value: s.NumberOfSwitches()},
			configstore.Entry{Key: configstore.KeyMinTimeBetweenSwitch, Value: s.MinTimeBetweenSwitch()},
			configstore.Entry{Key: configstore.KeyMaxTimeBetweenSwitch, Value: s.MaxTimeBetweenSwitch()},
			configstore.Entry{Key: configstore.KeyIsEndless, Value: s.Endless()},
		)
	}
	return entries
}

// FormatPlayers renders the players as "<slot>:<color code>:<name>" items
// joined by ";", slots 1-based and ascending.
func FormatPlayers(b settings.BingoSettings) string {
	parts := make([]string, 0, len(b.PlayerSlots()))
	for _, p := range b.PlayerSlots() {
		info, _ := b.Player(p)
		parts = append(parts, strconv.Itoa(int(p)+1)+":"+strconv.Itoa(int(info.Color))+":"+info.Name)
	}
	return strings.Join(parts, ";")
}

// Publish mirrors snap into p.
func Publish(p configstore.Publisher, snap Snapshot) {
	configstore.PublishAll(p, Entries(snap))
}
