// SPDX-License-Identifier: MIT

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xanmankey/WiiMix/internal/settings"
)

func writeGameINI(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestDiscoverEnabledGames(t *testing.T) {
	dir := t.TempDir()
	writeGameINI(t, dir, "RMGE01.ini", "[WiiMix]\nWiiMix = true\n")
	writeGameINI(t, dir, "GALE01.ini", "[OnFrame]\n$Infinite lives\n0x80001234:dword:0x00000063\n[WiiMix]\nWiiMix = True\n")
	writeGameINI(t, dir, "SB4E01.ini", "[WiiMix]\nWiiMix = false\n")
	writeGameINI(t, dir, "GZLE01.ini", "[Core]\nCPUThread = True\n")
	writeGameINI(t, dir, "notes.txt", "[WiiMix]\nWiiMix = true\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.ini"), 0o750))

	games, err := DiscoverEnabledGames(t.Context(), dir, sampleMemory())
	require.NoError(t, err)

	ids := make([]settings.GameID, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []settings.GameID{"GALE01", "RMGE01"}, ids)
	assert.Equal(t, "Super Mario Galaxy", games[1].Title)
}

func TestDiscoverEnabledGamesUnknownGameAborts(t *testing.T) {
	dir := t.TempDir()
	writeGameINI(t, dir, "RMGE01.ini", "[WiiMix]\nWiiMix = true\n")
	writeGameINI(t, dir, "SZAE01.ini", "[WiiMix]\nWiiMix = true\n")

	_, err := DiscoverEnabledGames(t.Context(), dir, sampleMemory())
	require.Error(t, err)

	var nf *GameNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, settings.GameID("SZAE01"), nf.ID)
	assert.Equal(t, "Game SZAE01 not found in game list", err.Error())
}

func TestDiscoverEnabledGamesMissingDir(t *testing.T) {
	_, err := DiscoverEnabledGames(t.Context(), filepath.Join(t.TempDir(), "missing"), sampleMemory())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverEnabledGamesBackendFailure(t *testing.T) {
	dir := t.TempDir()
	writeGameINI(t, dir, "RMGE01.ini", "[WiiMix]\nWiiMix = true\n")

	_, err := DiscoverEnabledGames(t.Context(), dir, failingCatalog{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBackend)
}
