// SPDX-License-Identifier: MIT

package session

import (
	"strconv"
	"strings"

	"github.com/xanmankey/WiiMix/internal/configstore"
	"github.com/xanmankey/WiiMix/internal/settings"
	"github.com/xanmankey/WiiMix/internal/settingsfile"
)

// snapshotFromStore builds the initial snapshot from the values in r.
// Missing or malformed values leave the model defaults in place.
func snapshotFromStore(r configstore.Reader) settingsfile.Snapshot {
	snap := settingsfile.NewSnapshot(settings.Settings{})
	if r == nil {
		return snap
	}

	c := &snap.Common
	if v, ok := readInt(r, configstore.KeyDifficulty); ok {
		c.SetDifficulty(settings.Difficulty(v))
	}
	if v, ok := readInt(r, configstore.KeyMode); ok {
		c.SetMode(settings.Mode(v))
	}
	if v, ok := readInt(r, configstore.KeySaveStateBank); ok {
		c.SetSaveStateBank(settings.SaveStateBank(v))
	}
	if v, ok := readString(r, configstore.KeyGameIDs); ok {
		var games []settings.GameReference
		for _, id := range settingsfile.SplitGameIDs(v) {
			games = append(games, settings.GameReference{ID: id})
		}
		c.SetGamesList(games)
	}
	if v, ok := readString(r, configstore.KeyObjectiveIDs); ok {
		if ids, err := settingsfile.SplitObjectiveIDs(v); err == nil {
			c.SetObjectives(ids)
		}
	}

	b := &snap.Bingo
	if v, ok := readBool(r, configstore.KeyIsLockout); ok {
		b.SetLockout(v)
	}
	if v, ok := readInt(r, configstore.KeyCardSize); ok {
		b.SetCardSize(v)
	}
	if v, ok := readInt(r, configstore.KeyBingoType); ok {
		b.SetBingoType(settings.BingoType(v))
	}
	if v, ok := readBool(r, configstore.KeyIsTeams); ok {
		b.SetTeams(v)
	}
	if v, ok := readString(r, configstore.KeyLobbyID); ok {
		b.SetLobbyID(v)
	}
	if v, ok := readString(r, configstore.KeySeed); ok {
		b.SetSeed(v)
	}
	if v, ok := readString(r, configstore.KeyLobbyPassword); ok {
		b.SetLobbyPassword(v)
	}
	if v, ok := readString(r, configstore.KeyPlayers); ok {
		b.SetPlayers(parsePlayers(v))
	}

	s := &snap.Shuffle
	if v, ok := readInt(r, configstore.KeyNumberOfSwitches); ok {
		s.SetNumberOfSwitches(v)
	}
	if v, ok := readInt(r, configstore.KeyMinTimeBetweenSwitch); ok {
		s.SetMinTimeBetweenSwitch(v)
	}
	if v, ok := readInt(r, configstore.KeyMaxTimeBetweenSwitch); ok {
		s.SetMaxTimeBetweenSwitch(v)
	}
	if v, ok := readBool(r, configstore.KeyIsEndless); ok {
		s.SetEndless(v)
	}
	return snap
}

// parsePlayers reads the format written by settingsfile.FormatPlayers.
// Malformed items are skipped.
func parsePlayers(s string) map[settings.Player]settings.PlayerInfo {
	var out map[settings.Player]settings.PlayerInfo
	for _, item := range strings.Split(s, ";") {
		parts := strings.SplitN(item, ":", 3)
		if len(parts) != 3 {
			continue
		}
		slot, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		color, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if out == nil {
			out = make(map[settings.Player]settings.PlayerInfo)
		}
		out[settings.Player(slot-1)] = settings.PlayerInfo{Color: settings.Color(color), Name: parts[2]}
	}
	return out
}

func readInt(r configstore.Reader, key configstore.Key) (int, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	}
	return 0, false
}

func readString(r configstore.Reader, key configstore.Key) (string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func readBool(r configstore.Reader, key configstore.Key) (bool, bool) {
	v, ok := r.Get(key)
	if !ok {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		return parsed, err == nil
	}
	return false, false
}
