// SPDX-License-Identifier: MIT

// Package configstore is the process-wide configuration store that mirrors
// WiiMix settings for the rest of the host. Settings code writes to it
// through Publisher and only reads defaults back through Reader.
package configstore

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Key names one value in the store.
type Key string

// Well-known keys, one per settings field.
const (
	KeyGameIDs              Key = "WIIMIX_GAME_IDS"
	KeyMode                 Key = "WIIMIX_MODE"
	KeyDifficulty           Key = "WIIMIX_DIFFICULTY"
	KeyObjectiveIDs         Key = "WIIMIX_OBJECTIVE_IDS"
	KeySaveStateBank        Key = "WIIMIX_SAVE_STATE_BANK"
	KeyIsLockout            Key = "WIIMIX_IS_LOCKOUT"
	KeyCardSize             Key = "WIIMIX_CARD_SIZE"
	KeyBingoType            Key = "WIIMIX_BINGO_TYPE"
	KeyIsTeams              Key = "WIIMIX_IS_TEAMS"
	KeyPlayers              Key = "WIIMIX_PLAYERS"
	KeyLobbyID              Key = "WIIMIX_LOBBY_ID"
	KeySeed                 Key = "WIIMIX_SEED"
	KeyLobbyPassword        Key = "WIIMIX_LOBBY_PASSWORD"
	KeyNumberOfSwitches     Key = "WIIMIX_NUMBER_OF_SWITCHES"
	KeyMinTimeBetweenSwitch Key = "WIIMIX_MIN_TIME_BETWEEN_SWITCH"
	KeyMaxTimeBetweenSwitch Key = "WIIMIX_MAX_TIME_BETWEEN_SWITCH"
	KeyIsEndless            Key = "WIIMIX_IS_ENDLESS"
)

// Kind is the value type stored under a key.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// KeyInfo describes one registered key.
type KeyInfo struct {
	Key       Key
	Kind      Kind
	Default   any
	Sensitive bool // never logged or served
}

// Registry indexes the well-known keys.
type Registry struct {
	byKey map[Key]KeyInfo
}

var (
	globalRegistry    *Registry
	globalRegistryErr error
	registryOnce      sync.Once
)

// GetRegistry returns the key registry. It fails if the built-in table
// contains duplicates or defaults of the wrong kind.
func GetRegistry() (*Registry, error) {
	registryOnce.Do(func() {
		globalRegistry, globalRegistryErr = buildRegistry(defaultEntries())
	})
	return globalRegistry, globalRegistryErr
}

// MustRegistry is GetRegistry for callers that cannot proceed without it.
func MustRegistry() *Registry {
	r, err := GetRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Defaults mirror a fresh Bingo session (mode 0, 5x5 card) and the shuffle
// schedule defaults.
func defaultEntries() []KeyInfo {
	return []KeyInfo{
		// --- COMMON ---
		{Key: KeyGameIDs, Kind: KindString, Default: ""},
		{Key: KeyMode, Kind: KindInt, Default: 0},
		{Key: KeyDifficulty, Kind: KindInt, Default: 0},
		{Key: KeyObjectiveIDs, Kind: KindString, Default: ""},
		{Key: KeySaveStateBank, Kind: KindInt, Default: 0},

		// --- BINGO ---
		{Key: KeyIsLockout, Kind: KindBool, Default: false},
		{Key: KeyCardSize, Kind: KindInt, Default: 25},
		{Key: KeyBingoType, Kind: KindInt, Default: 0},
		{Key: KeyIsTeams, Kind: KindBool, Default: false},
		{Key: KeyPlayers, Kind: KindString, Default: ""},
		{Key: KeyLobbyID, Kind: KindString, Default: ""},
		{Key: KeySeed, Kind: KindString, Default: ""},
		{Key: KeyLobbyPassword, Kind: KindString, Default: "", Sensitive: true},

		// --- SHUFFLE ---
		{Key: KeyNumberOfSwitches, Kind: KindInt, Default: 10},
		{Key: KeyMinTimeBetweenSwitch, Kind: KindInt, Default: 30},
		{Key: KeyMaxTimeBetweenSwitch, Kind: KindInt, Default: 120},
		{Key: KeyIsEndless, Kind: KindBool, Default: false},
	}
}

func buildRegistry(entries []KeyInfo) (*Registry, error) {
	r := &Registry{byKey: make(map[Key]KeyInfo, len(entries))}
	for _, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("registry entry without key")
		}
		if _, dup := r.byKey[e.Key]; dup {
			return nil, fmt.Errorf("duplicate registry key: %s", e.Key)
		}
		if _, err := e.Normalize(e.Default); err != nil {
			return nil, fmt.Errorf("registry key %s: default: %w", e.Key, err)
		}
		r.byKey[e.Key] = e
	}
	return r, nil
}

// Lookup returns the registration of key.
func (r *Registry) Lookup(key Key) (KeyInfo, bool) {
	info, ok := r.byKey[key]
	return info, ok
}

// Keys returns every registered key in lexical order.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Defaults returns a fresh map of every key to its default.
func (r *Registry) Defaults() map[Key]any {
	out := make(map[Key]any, len(r.byKey))
	for k, info := range r.byKey {
		out[k] = info.Default
	}
	return out
}

// Normalize coerces value to the key's kind. Named integer types (enums)
// and strings holding a value of the right kind are accepted.
func (info KeyInfo) Normalize(value any) (any, error) {
	switch info.Kind {
	case KindString:
		switch v := value.(type) {
		case string:
			return v, nil
		case fmt.Stringer:
			return v.String(), nil
		}
	case KindInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case int32:
			return int(v), nil
		case string:
			n, err := strconv.Atoi(v)
			if err == nil {
				return n, nil
			}
		default:
			if n, ok := asInt(value); ok {
				return n, nil
			}
		}
	case KindBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err == nil {
				return b, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s wants %s, got %T", ErrKindMismatch, info.Key, info.Kind, value)
}

// Format renders a stored value the way the Redis backend keeps it.
func Format(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
