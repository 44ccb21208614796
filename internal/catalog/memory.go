// SPDX-License-Identifier: MIT

package catalog

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/xanmankey/WiiMix/internal/settings"
)

// Memory is an in-process catalog, used by the CLI when no database is
// configured and by tests.
type Memory struct {
	mu         sync.RWMutex
	games      map[settings.GameID]settings.GameReference
	objectives map[settings.ObjectiveID]Objective
}

// NewMemory returns a catalog holding games and objectives.
func NewMemory(games []settings.GameReference, objectives []Objective) *Memory {
	m := &Memory{
		games:      make(map[settings.GameID]settings.GameReference, len(games)),
		objectives: make(map[settings.ObjectiveID]Objective, len(objectives)),
	}
	for _, g := range games {
		m.games[g.ID] = g
	}
	for _, o := range objectives {
		m.objectives[o.ID] = o
	}
	return m
}

// AddGame registers or replaces a game.
func (m *Memory) AddGame(g settings.GameReference) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
}

// AddObjective registers or replaces an objective.
func (m *Memory) AddObjective(o Objective) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objectives[o.ID] = o
}

func (m *Memory) LookupGame(_ context.Context, id settings.GameID) (settings.GameReference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return settings.GameReference{}, ErrNotFound
	}
	return g, nil
}

// IsValid reports whether ref names a registered game.
func (m *Memory) IsValid(_ context.Context, ref settings.GameReference) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.games[ref.ID]
	return ok
}

// Games lists every game ordered by ID.
func (m *Memory) Games() []settings.GameReference {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]settings.GameReference, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b settings.GameReference) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (m *Memory) LookupObjective(_ context.Context, id settings.ObjectiveID) (Objective, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objectives[id]
	if !ok {
		return Objective{}, ErrNotFound
	}
	return o, nil
}

func (m *Memory) ObjectivesForGame(_ context.Context, id settings.GameID) ([]Objective, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Objective
	for _, o := range m.objectives {
		if o.GameID == id {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b Objective) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
