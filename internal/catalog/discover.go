// SPDX-License-Identifier: MIT

package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	xglog "github.com/xanmankey/WiiMix/internal/log"
	"github.com/xanmankey/WiiMix/internal/metrics"
	"github.com/xanmankey/WiiMix/internal/settings"
	"golang.org/x/sync/errgroup"
	"gopkg.in/ini.v1"
)

// Per-game settings files opt into WiiMix with
//
//	[WiiMix]
//	WiiMix = true
const (
	gameSection = "WiiMix"
	gameEnabled = "WiiMix"
)

const discoverConcurrency = 8

// DiscoverEnabledGames scans dir for per-game INI files (named <GameID>.ini)
// that enable WiiMix and resolves each through games. An enabled game the
// catalog cannot resolve aborts the scan with a *GameNotFoundError.
func DiscoverEnabledGames(ctx context.Context, dir string, games GameCatalog) ([]settings.GameReference, error) {
	logger := xglog.WithComponentFromContext(ctx, "catalog")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read game settings dir: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(discoverConcurrency)

	var (
		mu    sync.Mutex
		found []settings.GameReference
	)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".ini") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		id := settings.GameID(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))

		g.Go(func() error {
			enabled, err := gameEnabledForWiiMix(path)
			if err != nil {
				logger.Warn().Err(err).Str(xglog.FieldPath, path).Msg("skipping unreadable game settings file")
				return nil
			}
			if !enabled {
				return nil
			}

			ref, err := games.LookupGame(gctx, id)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return fmt.Errorf("lookup game %s: %w", id, err)
			}
			if err != nil || !games.IsValid(gctx, ref) {
				return &GameNotFoundError{ID: id}
			}

			mu.Lock()
			found = append(found, ref)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(found, func(a, b settings.GameReference) int { return cmp.Compare(a.ID, b.ID) })
	metrics.SetDiscoveredGames(len(found))
	logger.Debug().
		Str(xglog.FieldEvent, "catalog.discovered").
		Int("count", len(found)).
		Msg("discovered games enabled for WiiMix")
	return found, nil
}

func gameEnabledForWiiMix(path string) (bool, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		Loose:                   true,
		AllowBooleanKeys:        true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return false, err
	}
	sec, err := f.GetSection(gameSection)
	if err != nil {
		return false, nil
	}
	return sec.Key(gameEnabled).MustBool(false), nil
}
