// SPDX-License-Identifier: MIT

package catalog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xanmankey/WiiMix/internal/settings"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreImportAndLookup(t *testing.T) {
	ctx := t.Context()
	s := openTestStore(t)

	f, err := ParseFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	games, objectives, err := s.Import(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, games)
	assert.Equal(t, 2, objectives)

	g, err := s.LookupGame(ctx, "GALE01")
	require.NoError(t, err)
	assert.Equal(t, settings.GameReference{ID: "GALE01", Title: "Super Smash Bros. Melee", Path: "/games/ssbm.iso"}, g)
	assert.True(t, s.IsValid(ctx, g))

	_, err = s.LookupGame(ctx, "NOPE01")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, s.IsValid(ctx, settings.GameReference{ID: "NOPE01"}))

	o, err := s.LookupObjective(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Beat Classic", o.Title)
	assert.Equal(t, settings.GameID("GALE01"), o.GameID)

	_, err = s.LookupObjective(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	forGame, err := s.ObjectivesForGame(ctx, "GALE01")
	require.NoError(t, err)
	require.Len(t, forGame, 1)

	all, err := s.Games(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, settings.GameID("GALE01"), all[0].ID)
}

func TestSQLiteStoreUpsertReplaces(t *testing.T) {
	ctx := t.Context()
	s := openTestStore(t)

	require.NoError(t, s.UpsertGame(ctx, settings.GameReference{ID: "GALE01", Title: "old"}))
	require.NoError(t, s.UpsertGame(ctx, settings.GameReference{ID: "GALE01", Title: "new"}))
	require.NoError(t, s.UpsertObjective(ctx, Objective{ID: 5, Title: "o", GameID: "GALE01"}))

	g, err := s.LookupGame(ctx, "GALE01")
	require.NoError(t, err)
	assert.Equal(t, "new", g.Title)

	found, unknown, err := ResolveObjectives(ctx, s, []settings.ObjectiveID{5, 6})
	require.NoError(t, err)
	assert.Equal(t, []settings.ObjectiveID{5}, found)
	assert.Equal(t, []settings.ObjectiveID{6}, unknown)
}

func TestSQLiteStoreReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.UpsertGame(t.Context(), settings.GameReference{ID: "RMGE01"}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.LookupGame(t.Context(), "RMGE01")
	require.NoError(t, err)
}
