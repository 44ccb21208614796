// SPDX-License-Identifier: MIT

package settings

import (
	"maps"
	"slices"

	"github.com/xanmankey/WiiMix/internal/validate"
)

// DefaultCardSize is the number of cells on a fresh bingo card (5x5).
const DefaultCardSize = 25

// PlayerInfo is the color and display name of one bingo player.
type PlayerInfo struct {
	Color Color
	Name  string
}

// BingoSettings extends Settings with the bingo card and lobby fields.
type BingoSettings struct {
	Settings

	bingoType     BingoType
	cardSize      int
	teams         bool
	players       map[Player]PlayerInfo
	lobbyID       string
	seed          string
	lobbyPassword string
	lockout       bool
}

// NewBingoSettings copies common and pins the mode to Bingo.
func NewBingoSettings(common Settings) BingoSettings {
	b := BingoSettings{
		bingoType: BingoTypeStandard,
		cardSize:  DefaultCardSize,
	}
	return b.WithCommon(common)
}

// WithCommon returns a copy of b whose shared fields are taken from common.
// The mode stays Bingo.
func (b BingoSettings) WithCommon(common Settings) BingoSettings {
	out := b.Clone()
	out.Settings = common.Clone()
	out.Settings.mode = ModeBingo
	return out
}

// SetMode ignores the request: a variant's mode is fixed by its type.
func (b *BingoSettings) SetMode(Mode) {}

func (b BingoSettings) BingoType() BingoType { return b.bingoType }

func (b *BingoSettings) SetBingoType(t BingoType) {
	if t.Valid() {
		b.bingoType = t
	}
}

func (b BingoSettings) CardSize() int { return b.cardSize }

// ValidCardSize reports whether v is an odd perfect square.
func ValidCardSize(v int) bool { return validate.IsOddPerfectSquare(v) }

// TrySetCardSize stores v when it is a valid card size and reports whether
// it did.
func (b *BingoSettings) TrySetCardSize(v int) bool {
	if !ValidCardSize(v) {
		return false
	}
	b.cardSize = v
	return true
}

// SetCardSize stores v, or silently keeps the previous size when v is not an
// odd perfect square.
func (b *BingoSettings) SetCardSize(v int) { b.TrySetCardSize(v) }

func (b BingoSettings) Teams() bool { return b.teams }

func (b *BingoSettings) SetTeams(teams bool) { b.teams = teams }

func (b BingoSettings) Lockout() bool { return b.lockout }

func (b *BingoSettings) SetLockout(lockout bool) { b.lockout = lockout }

func (b BingoSettings) LobbyID() string { return b.lobbyID }

func (b *BingoSettings) SetLobbyID(id string) { b.lobbyID = id }

func (b BingoSettings) Seed() string { return b.seed }

func (b *BingoSettings) SetSeed(seed string) { b.seed = seed }

func (b BingoSettings) LobbyPassword() string { return b.lobbyPassword }

func (b *BingoSettings) SetLobbyPassword(password string) { b.lobbyPassword = password }

// Players returns a copy of the slot to player mapping.
func (b BingoSettings) Players() map[Player]PlayerInfo { return maps.Clone(b.players) }

// PlayerSlots returns the occupied slots in ascending order.
func (b BingoSettings) PlayerSlots() []Player {
	slots := slices.Collect(maps.Keys(b.players))
	slices.Sort(slots)
	return slots
}

// Player returns the player occupying slot p.
func (b BingoSettings) Player(p Player) (PlayerInfo, bool) {
	info, ok := b.players[p]
	return info, ok
}

// AddPlayer puts info into slot p, replacing any occupant. An unknown slot or
// color is ignored; the result reports whether the player was stored.
func (b *BingoSettings) AddPlayer(p Player, info PlayerInfo) bool {
	if !p.Valid() || !info.Color.Valid() {
		return false
	}
	if b.players == nil {
		b.players = make(map[Player]PlayerInfo)
	}
	b.players[p] = info
	return true
}

// RemovePlayer deletes slot p entirely.
func (b *BingoSettings) RemovePlayer(p Player) {
	delete(b.players, p)
	if len(b.players) == 0 {
		b.players = nil
	}
}

// SetPlayers replaces the mapping. Entries with an unknown slot or color are
// dropped.
func (b *BingoSettings) SetPlayers(players map[Player]PlayerInfo) {
	b.players = nil
	for p, info := range players {
		b.AddPlayer(p, info)
	}
}

// Clone returns a deep copy.
func (b BingoSettings) Clone() BingoSettings {
	out := b
	out.Settings = b.Settings.Clone()
	if len(b.players) > 0 {
		out.players = maps.Clone(b.players)
	} else {
		out.players = nil
	}
	return out
}

func (b BingoSettings) Validate() error {
	v := validate.New()
	b.Settings.validateInto(v)
	v.Range("bingoType", int(b.bingoType), 0, len(bingoTypeTitles)-1)
	v.OddPerfectSquare("cardSize", b.cardSize)
	for p, info := range b.players {
		v.Range("players.slot", int(p), 0, MaxPlayers-1)
		v.Range("players.color", int(info.Color), 0, len(colorTitles)-1)
	}
	return v.Err()
}
