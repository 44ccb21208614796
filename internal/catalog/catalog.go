// SPDX-License-Identifier: MIT

// Package catalog resolves the game and objective identifiers stored in
// settings files to the games installed on this machine and the objectives
// known to WiiMix.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/xanmankey/WiiMix/internal/settings"
)

// ErrNotFound is returned by lookups for identifiers the catalog does not know.
var ErrNotFound = errors.New("not found")

// Objective is one rule a player can complete.
type Objective struct {
	ID          settings.ObjectiveID
	Title       string
	Description string
	GameID      settings.GameID
}

// GameCatalog maps game IDs to installed games.
type GameCatalog interface {
	LookupGame(ctx context.Context, id settings.GameID) (settings.GameReference, error)
	IsValid(ctx context.Context, ref settings.GameReference) bool
}

// ObjectiveCatalog maps objective IDs to objectives and games to their
// objectives.
type ObjectiveCatalog interface {
	LookupObjective(ctx context.Context, id settings.ObjectiveID) (Objective, error)
	ObjectivesForGame(ctx context.Context, id settings.GameID) ([]Objective, error)
}

// GameNotFoundError names a game that a settings flow needed but the catalog
// could not resolve.
type GameNotFoundError struct {
	ID settings.GameID
}

func (e *GameNotFoundError) Error() string {
	return fmt.Sprintf("Game %s not found in game list", e.ID)
}

func (e *GameNotFoundError) Unwrap() error { return ErrNotFound }

// ResolveGames looks up each id. Unknown or invalid games are returned in
// unknown instead of failing; err is set only when the catalog itself fails.
func ResolveGames(ctx context.Context, c GameCatalog, ids []settings.GameID) (found []settings.GameReference, unknown []settings.GameID, err error) {
	for _, id := range ids {
		ref, lerr := c.LookupGame(ctx, id)
		switch {
		case errors.Is(lerr, ErrNotFound):
			unknown = append(unknown, id)
			continue
		case lerr != nil:
			return nil, nil, fmt.Errorf("lookup game %s: %w", id, lerr)
		}
		if !c.IsValid(ctx, ref) {
			unknown = append(unknown, id)
			continue
		}
		found = append(found, ref)
	}
	return found, unknown, nil
}

// ResolveObjectives keeps the ids the catalog knows, in order.
func ResolveObjectives(ctx context.Context, c ObjectiveCatalog, ids []settings.ObjectiveID) (found []settings.ObjectiveID, unknown []settings.ObjectiveID, err error) {
	for _, id := range ids {
		_, lerr := c.LookupObjective(ctx, id)
		switch {
		case errors.Is(lerr, ErrNotFound):
			unknown = append(unknown, id)
		case lerr != nil:
			return nil, nil, fmt.Errorf("lookup objective %d: %w", id, lerr)
		default:
			found = append(found, id)
		}
	}
	return found, unknown, nil
}
