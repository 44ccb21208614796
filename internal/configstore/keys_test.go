// SPDX-License-Identifier: MIT

package configstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMode int

func TestRegistryCoversEveryKey(t *testing.T) {
	reg, err := GetRegistry()
	require.NoError(t, err)

	for _, k := range []Key{
		KeyGameIDs, KeyMode, KeyDifficulty, KeyObjectiveIDs, KeySaveStateBank,
		KeyIsLockout, KeyCardSize, KeyBingoType, KeyIsTeams, KeyPlayers,
		KeyLobbyID, KeySeed, KeyLobbyPassword,
		KeyNumberOfSwitches, KeyMinTimeBetweenSwitch, KeyMaxTimeBetweenSwitch, KeyIsEndless,
	} {
		_, ok := reg.Lookup(k)
		assert.True(t, ok, "key %s not registered", k)
	}
	assert.Len(t, reg.Keys(), 17)

	info, _ := reg.Lookup(KeyLobbyPassword)
	assert.True(t, info.Sensitive)
}

func TestBuildRegistryRejectsDuplicates(t *testing.T) {
	_, err := buildRegistry([]KeyInfo{
		{Key: KeyMode, Kind: KindInt, Default: 0},
		{Key: KeyMode, Kind: KindInt, Default: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate registry key")
}

func TestBuildRegistryRejectsBadDefault(t *testing.T) {
	_, err := buildRegistry([]KeyInfo{{Key: KeyIsEndless, Kind: KindBool, Default: 3}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestNormalize(t *testing.T) {
	intKey := KeyInfo{Key: KeyMode, Kind: KindInt}
	boolKey := KeyInfo{Key: KeyIsLockout, Kind: KindBool}
	strKey := KeyInfo{Key: KeySeed, Kind: KindString}

	tests := []struct {
		name    string
		info    KeyInfo
		in      any
		want    any
		wantErr bool
	}{
		{"int", intKey, 2, 2, false},
		{"named int", intKey, testMode(1), 1, false},
		{"int from string", intKey, "49", 49, false},
		{"int from junk", intKey, "x", nil, true},
		{"bool", boolKey, true, true, false},
		{"bool from string", boolKey, "true", true, false},
		{"bool from int", boolKey, 1, nil, true},
		{"string", strKey, "abc", "abc", false},
		{"string from int", strKey, 5, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.info.Normalize(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrKindMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRedacted(t *testing.T) {
	reg := MustRegistry()
	out := Redacted(reg, map[Key]any{
		KeyLobbyPassword: "hunter2",
		KeyLobbyID:       "lobby",
	})
	assert.Equal(t, "***redacted***", out[KeyLobbyPassword])
	assert.Equal(t, "lobby", out[KeyLobbyID])

	empty := Redacted(reg, map[Key]any{KeyLobbyPassword: ""})
	assert.Equal(t, "", empty[KeyLobbyPassword])
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "25", Format(25))
	assert.Equal(t, "false", Format(false))
	assert.Equal(t, "GALE01,RMGE01", Format("GALE01,RMGE01"))
}
