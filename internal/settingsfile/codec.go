// SPDX-License-Identifier: MIT

// Package settingsfile reads and writes WiiMix settings as INI files and
// mirrors the values into the configuration store.
//
// Enumerations are written as display titles ("Hard", "Shuffle") and parsed
// back through the title lookup, unlike the structured document which uses
// integer codes.
package settingsfile

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xanmankey/WiiMix/internal/settings"
	"gopkg.in/ini.v1"
)

// SectionName is the single section of a settings file.
const SectionName = "WiiMix"

// INI keys.
const (
	KeyGames         = "Games"
	KeyMode          = "Mode"
	KeyDifficulty    = "Difficulty"
	KeyObjectives    = "Objectives"
	KeySaveStateBank = "SaveStateBank"

	KeyLockout       = "Lockout"
	KeyCardSize      = "CardSize"
	KeyBingoType     = "BingoType"
	KeyTeams         = "Teams"
	KeySeed          = "Seed"
	KeyLobbyID       = "LobbyID"
	KeyLobbyPassword = "LobbyPassword"
	keyPlayerPrefix  = "Player"

	KeyNumberOfSwitches     = "NumberOfSwitches"
	KeyMinTimeBetweenSwitch = "MinTimeBetweenSwitch"
	KeyMaxTimeBetweenSwitch = "MaxTimeBetweenSwitch"
	KeyEndless              = "Endless"
)

var keyLabels = map[string]string{
	KeySaveStateBank:        "Save State Bank",
	KeyCardSize:             "Card Size",
	KeyNumberOfSwitches:     "Number of Switches",
	KeyMinTimeBetweenSwitch: "Min Time Between Switch",
	KeyMaxTimeBetweenSwitch: "Max Time Between Switch",
}

// PlayerKey is the INI key of a player slot ("Player1" for slot 0).
func PlayerKey(p settings.Player) string {
	return keyPlayerPrefix + strconv.Itoa(int(p)+1)
}

// Ignored is a value that parsed but was dropped by a validate-or-ignore
// setter.
type Ignored struct {
	Key   string
	Value string
}

// Encode renders the common keys and the active mode's block. The lobby
// password is never written, so it does not survive a save and reload;
// Decode still accepts one from a hand-edited file.
func Encode(snap Snapshot) ([]byte, error) {
	f := ini.Empty()
	sec, err := f.NewSection(SectionName)
	if err != nil {
		return nil, err
	}

	c := snap.Common
	put := func(key, value string) {
		// NewKey only fails on an empty key name
		_, _ = sec.NewKey(key, value)
	}

	put(KeyGames, JoinGameIDs(c.GameIDs()))
	put(KeyMode, c.Mode().String())
	put(KeyDifficulty, c.Difficulty().String())
	put(KeyObjectives, JoinObjectiveIDs(c.Objectives()))
	put(KeySaveStateBank, c.SaveStateBank().String())

	switch c.Mode() {
	case settings.ModeBingo:
		b := snap.Bingo
		put(KeyLockout, strconv.FormatBool(b.Lockout()))
		put(KeyCardSize, strconv.Itoa(b.CardSize()))
		put(KeyBingoType, b.BingoType().String())
		put(KeyTeams, strconv.FormatBool(b.Teams()))
		if b.Seed() != "" {
			put(KeySeed, b.Seed())
		}
		if b.LobbyID() != "" {
			put(KeyLobbyID, b.LobbyID())
		}
		for _, p := range b.PlayerSlots() {
			info, _ := b.Player(p)
			put(PlayerKey(p), info.Color.String()+","+info.Name)
		}
	case settings.ModeShuffle:
		s := snap.Shuffle
		put(KeyNumberOfSwitches, strconv.Itoa(s.NumberOfSwitches()))
		put(KeyMinTimeBetweenSwitch, strconv.Itoa(s.MinTimeBetweenSwitch()))
		put(KeyMaxTimeBetweenSwitch, strconv.Itoa(s.MaxTimeBetweenSwitch()))
		put(KeyEndless, strconv.FormatBool(s.Endless()))
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render settings file: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses data onto prior. It is all-or-nothing: on error the returned
// snapshot is the zero value and prior is untouched.
//
// Games are returned as references carrying only their ID; resolving them
// against a catalog is the caller's job. Optional Bingo keys override the
// prior draft only when present. Values rejected by a validate-or-ignore
// setter are reported in ignored.
func Decode(data []byte, prior Snapshot) (snap Snapshot, ignored []Ignored, err error) {
	f, err := ini.LoadSources(ini.LoadOptions{}, data)
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("parse settings file: %w", err)
	}
	sec, err := f.GetSection(SectionName)
	if err != nil {
		return Snapshot{}, nil, ErrSectionNotFound
	}

	r := reader{sec: sec}
	out := prior.Clone()

	gameIDs := SplitGameIDs(r.required(KeyGames))
	mode := parseEnum(&r, KeyMode, settings.ParseMode)
	difficulty := parseEnum(&r, KeyDifficulty, settings.ParseDifficulty)
	objectives := r.objectiveIDs(KeyObjectives)
	bank := parseEnum(&r, KeySaveStateBank, settings.ParseSaveStateBank)
	if r.err != nil {
		return Snapshot{}, nil, r.err
	}

	games := make([]settings.GameReference, 0, len(gameIDs))
	for _, id := range gameIDs {
		games = append(games, settings.GameReference{ID: id})
	}
	out.Common = settings.NewSettings(difficulty, mode, bank, objectives, games)

	switch mode {
	case settings.ModeBingo:
		b := out.Bingo
		b.SetLockout(r.boolean(r.required(KeyLockout)))
		cardSize := r.integer(KeyCardSize, r.required(KeyCardSize))
		if r.err == nil && !b.TrySetCardSize(cardSize) {
			ignored = append(ignored, Ignored{Key: KeyCardSize, Value: strconv.Itoa(cardSize)})
		}
		if v, ok := r.optional(KeyBingoType); ok {
			b.SetBingoType(parseEnumValue(&r, KeyBingoType, v, settings.ParseBingoType))
		}
		if v, ok := r.optional(KeyTeams); ok {
			b.SetTeams(r.boolean(v))
		}
		if v, ok := r.optional(KeySeed); ok {
			b.SetSeed(v)
		}
		if v, ok := r.optional(KeyLobbyID); ok {
			b.SetLobbyID(v)
		}
		if v, ok := r.optional(KeyLobbyPassword); ok {
			b.SetLobbyPassword(v)
		}
		if players, ok := r.players(); ok {
			b.SetPlayers(players)
		}
		out.Bingo = b
	case settings.ModeShuffle:
		s := out.Shuffle
		s.SetNumberOfSwitches(r.integer(KeyNumberOfSwitches, r.required(KeyNumberOfSwitches)))
		s.SetMinTimeBetweenSwitch(r.integer(KeyMinTimeBetweenSwitch, r.required(KeyMinTimeBetweenSwitch)))
		s.SetMaxTimeBetweenSwitch(r.integer(KeyMaxTimeBetweenSwitch, r.required(KeyMaxTimeBetweenSwitch)))
		s.SetEndless(r.boolean(r.required(KeyEndless)))
		out.Shuffle = s
	}
	if r.err != nil {
		return Snapshot{}, nil, r.err
	}

	return out, ignored, nil
}

// reader keeps the first error and turns every later call into a no-op,
// so Decode can read keys in sequence and check once per block.
type reader struct {
	sec *ini.Section
	err error
}

func (r *reader) required(key string) string {
	if r.err != nil {
		return ""
	}
	v := ""
	if r.sec.HasKey(key) {
		v = strings.TrimSpace(r.sec.Key(key).String())
	}
	if v == "" {
		r.err = &MissingKeyError{Key: key, Label: keyLabels[key]}
	}
	return v
}

// optional returns the value as ini parsed it. Free text such as a seed or
// a player name keeps the spaces a quoted value was written with.
func (r *reader) optional(key string) (string, bool) {
	if r.err != nil || !r.sec.HasKey(key) {
		return "", false
	}
	return r.sec.Key(key).String(), true
}

func (r *reader) integer(key, v string) int {
	if r.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.err = &InvalidValueError{Key: key, Value: v, Err: err}
	}
	return n
}

// boolean accepts "true" in any letter case; everything else is false.
func (r *reader) boolean(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

func (r *reader) objectiveIDs(key string) []settings.ObjectiveID {
	raw := r.required(key)
	if r.err != nil {
		return nil
	}
	ids, err := SplitObjectiveIDs(raw)
	if err != nil {
		r.err = &InvalidValueError{Key: key, Value: raw, Err: err}
	}
	return ids
}

func (r *reader) players() (map[settings.Player]settings.PlayerInfo, bool) {
	if r.err != nil {
		return nil, false
	}
	var players map[settings.Player]settings.PlayerInfo
	for p := settings.Player(0); p < settings.MaxPlayers; p++ {
		key := PlayerKey(p)
		v, ok := r.optional(key)
		if !ok {
			continue
		}
		colorTitle, name, _ := strings.Cut(v, ",")
		color, err := settings.ParseColor(strings.TrimSpace(colorTitle))
		if err != nil {
			r.err = &InvalidValueError{Key: key, Value: v, Err: err}
			return nil, false
		}
		if players == nil {
			players = make(map[settings.Player]settings.PlayerInfo)
		}
		players[p] = settings.PlayerInfo{Color: color, Name: name}
	}
	return players, players != nil
}

func parseEnum[T any](r *reader, key string, parse func(string) (T, error)) T {
	v := r.required(key)
	return parseEnumValue(r, key, v, parse)
}

func parseEnumValue[T any](r *reader, key, v string, parse func(string) (T, error)) T {
	var zero T
	if r.err != nil {
		return zero
	}
	out, err := parse(strings.TrimSpace(v))
	if err != nil {
		r.err = &InvalidValueError{Key: key, Value: v, Err: err}
		return zero
	}
	return out
}

// JoinGameIDs renders IDs as the comma separated list used in files and in
// the configuration store.
func JoinGameIDs(ids []settings.GameID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

// SplitGameIDs parses a comma separated ID list, skipping blanks.
func SplitGameIDs(s string) []settings.GameID {
	var out []settings.GameID
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, settings.GameID(part))
		}
	}
	return out
}

// JoinObjectiveIDs renders IDs as a comma separated list.
func JoinObjectiveIDs(ids []settings.ObjectiveID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}

// SplitObjectiveIDs parses a comma separated list of integers, skipping
// blanks.
func SplitObjectiveIDs(s string) ([]settings.ObjectiveID, error) {
	var out []settings.ObjectiveID
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, settings.ObjectiveID(n))
	}
	return out, nil
}
