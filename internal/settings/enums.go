// SPDX-License-Identifier: MIT

package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownTitle is returned when a display title does not name any value
// of the requested enumeration.
var ErrUnknownTitle = errors.New("unknown title")

// Difficulty scales objective selection.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyExpert
)

var difficultyTitles = []string{"Easy", "Normal", "Hard", "Expert"}

func (d Difficulty) String() string { return titleOf(d, difficultyTitles) }

// Valid reports whether d is a known difficulty code.
func (d Difficulty) Valid() bool { return inRange(d, difficultyTitles) }

// ParseDifficulty resolves a display title such as "Hard".
func ParseDifficulty(title string) (Difficulty, error) {
	return parseTitle[Difficulty]("difficulty", title, difficultyTitles)
}

// Difficulties lists every difficulty in code order.
func Difficulties() []Difficulty { return values[Difficulty](difficultyTitles) }

// Mode is the discriminant selecting the active settings variant.
type Mode int

const (
	ModeBingo Mode = iota
	ModeShuffle
	ModeRogue
)

var modeTitles = []string{"Bingo", "Shuffle", "Rogue"}

var modeDescriptions = []string{
	"Race other players to complete objectives on a shared card.",
	"Hop between games at random intervals while chasing objectives.",
	"Clear a run of objectives back to back; failing one ends the run.",
}

func (m Mode) String() string { return titleOf(m, modeTitles) }

// Valid reports whether m is a known mode code.
func (m Mode) Valid() bool { return inRange(m, modeTitles) }

// Description is the one-line summary shown next to the mode title.
func (m Mode) Description() string {
	if !m.Valid() {
		return ""
	}
	return modeDescriptions[m]
}

// ParseMode resolves a display title such as "Shuffle".
func ParseMode(title string) (Mode, error) {
	return parseTitle[Mode]("mode", title, modeTitles)
}

// Modes lists every mode in code order.
func Modes() []Mode { return values[Mode](modeTitles) }

// SaveStateBank selects which group of save states objectives start from.
type SaveStateBank int

const (
	SaveStateBankUntested SaveStateBank = iota
	SaveStateBankVerified
)

var saveStateBankTitles = []string{"Untested", "Verified"}

func (b SaveStateBank) String() string { return titleOf(b, saveStateBankTitles) }

// Valid reports whether b is a known bank code.
func (b SaveStateBank) Valid() bool { return inRange(b, saveStateBankTitles) }

// ParseSaveStateBank resolves a display title such as "Verified".
func ParseSaveStateBank(title string) (SaveStateBank, error) {
	return parseTitle[SaveStateBank]("save state bank", title, saveStateBankTitles)
}

// SaveStateBanks lists every bank in code order.
func SaveStateBanks() []SaveStateBank { return values[SaveStateBank](saveStateBankTitles) }

// BingoType is the win condition of a bingo card.
type BingoType int

const (
	BingoTypeStandard BingoType = iota
	BingoTypeBlackout
	BingoTypeTimeAttack
)

var bingoTypeTitles = []string{"Standard", "Blackout", "Time Attack"}

func (b BingoType) String() string { return titleOf(b, bingoTypeTitles) }

// Valid reports whether b is a known bingo type code.
func (b BingoType) Valid() bool { return inRange(b, bingoTypeTitles) }

// ParseBingoType resolves a display title such as "Time Attack".
func ParseBingoType(title string) (BingoType, error) {
	return parseTitle[BingoType]("bingo type", title, bingoTypeTitles)
}

// BingoTypes lists every bingo type in code order.
func BingoTypes() []BingoType { return values[BingoType](bingoTypeTitles) }

// Color marks a player on the bingo card. Colors may repeat across players.
type Color int

const (
	ColorRed Color = iota
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorPink
	ColorWhite
)

var colorTitles = []string{"Red", "Orange", "Yellow", "Green", "Blue", "Purple", "Pink", "White"}

func (c Color) String() string { return titleOf(c, colorTitles) }

// Valid reports whether c is a known color code.
func (c Color) Valid() bool { return inRange(c, colorTitles) }

// ParseColor resolves a display title such as "Blue".
func ParseColor(title string) (Color, error) {
	return parseTitle[Color]("color", title, colorTitles)
}

// Colors lists every color in code order.
func Colors() []Color { return values[Color](colorTitles) }

// Player is a zero-based player slot.
type Player int

// MaxPlayers is the number of player slots on a bingo lobby.
const MaxPlayers = 9

func (p Player) String() string {
	if !p.Valid() {
		return "Player(" + strconv.Itoa(int(p)) + ")"
	}
	return "Player " + strconv.Itoa(int(p)+1)
}

// Valid reports whether p is a usable slot.
func (p Player) Valid() bool { return p >= 0 && p < MaxPlayers }

// ParsePlayer resolves a display title such as "Player 3".
func ParsePlayer(title string) (Player, error) {
	rest, ok := strings.CutPrefix(cases.Fold().String(strings.TrimSpace(title)), "player")
	if ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err == nil && Player(n-1).Valid() {
			return Player(n - 1), nil
		}
	}
	return 0, fmt.Errorf("%w: player %q", ErrUnknownTitle, title)
}

func titleOf[T ~int](v T, titles []string) string {
	if !inRange(v, titles) {
		return "Unknown(" + strconv.Itoa(int(v)) + ")"
	}
	return titles[v]
}

func inRange[T ~int](v T, titles []string) bool {
	return v >= 0 && int(v) < len(titles)
}

func values[T ~int](titles []string) []T {
	out := make([]T, len(titles))
	for i := range titles {
		out[i] = T(i)
	}
	return out
}

// parseTitle matches under Unicode case folding. Casers are not safe for
// concurrent use, so each call builds its own.
func parseTitle[T ~int](kind, title string, titles []string) (T, error) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(title))
	for i, t := range titles {
		if fold.String(t) == want {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownTitle, kind, title)
}
