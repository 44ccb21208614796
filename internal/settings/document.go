// SPDX-License-Identifier: MIT

package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidDocument is returned when a structured document carries a value
// that cannot be represented, such as an unknown enum code.
var ErrInvalidDocument = errors.New("invalid settings document")

type gameDoc struct {
	ID    string `json:"ID"`
	Title string `json:"TITLE"`
	Path  string `json:"PATH"`
}

type playerDoc struct {
	Color int    `json:"COLOR"`
	Name  string `json:"NAME"`
}

type commonDoc struct {
	Difficulty    int       `json:"DIFFICULTY"`
	Mode          int       `json:"MODE"`
	SaveStateBank int       `json:"SAVE_STATE_BANK"`
	Objectives    []int     `json:"OBJECTIVES"`
	Games         []gameDoc `json:"GAMES"`
}

type bingoDoc struct {
	commonDoc
	BingoType     int                  `json:"BINGO_TYPE"`
	Teams         bool                 `json:"TEAMS"`
	CardSize      int                  `json:"CARD_SIZE"`
	Players       map[string]playerDoc `json:"PLAYERS"`
	LobbyID       string               `json:"LOBBY_ID"`
	Seed          string               `json:"SEED"`
	LobbyPassword string               `json:"LOBBY_PASSWORD"`
	Lockout       bool                 `json:"LOCKOUT"`
}

type shuffleDoc struct {
	commonDoc
	NumberOfSwitches     int  `json:"NUMBER_OF_SWITCHES"`
	MinTimeBetweenSwitch int  `json:"MIN_TIME_BETWEEN_SWITCH"`
	MaxTimeBetweenSwitch int  `json:"MAX_TIME_BETWEEN_SWITCH"`
	Endless              bool `json:"ENDLESS"`
}

func commonToDoc(s Settings) commonDoc {
	doc := commonDoc{
		Difficulty:    int(s.difficulty),
		Mode:          int(s.mode),
		SaveStateBank: int(s.saveStateBank),
		Objectives:    make([]int, 0, len(s.objectives)),
		Games:         make([]gameDoc, 0, len(s.games)),
	}
	for _, id := range s.objectives {
		doc.Objectives = append(doc.Objectives, int(id))
	}
	for _, g := range s.GamesList() {
		doc.Games = append(doc.Games, gameDoc{ID: string(g.ID), Title: g.Title, Path: g.Path})
	}
	return doc
}

func (doc commonDoc) apply(s *Settings) error {
	if !Difficulty(doc.Difficulty).Valid() {
		return fmt.Errorf("%w: DIFFICULTY %d", ErrInvalidDocument, doc.Difficulty)
	}
	if !Mode(doc.Mode).Valid() {
		return fmt.Errorf("%w: MODE %d", ErrInvalidDocument, doc.Mode)
	}
	if !SaveStateBank(doc.SaveStateBank).Valid() {
		return fmt.Errorf("%w: SAVE_STATE_BANK %d", ErrInvalidDocument, doc.SaveStateBank)
	}

	objectives := make([]ObjectiveID, 0, len(doc.Objectives))
	for _, id := range doc.Objectives {
		objectives = append(objectives, ObjectiveID(id))
	}
	games := make([]GameReference, 0, len(doc.Games))
	for _, g := range doc.Games {
		games = append(games, GameReference{ID: GameID(g.ID), Title: g.Title, Path: g.Path})
	}

	s.difficulty = Difficulty(doc.Difficulty)
	s.mode = Mode(doc.Mode)
	s.saveStateBank = SaveStateBank(doc.SaveStateBank)
	s.SetObjectives(objectives)
	s.SetGamesList(games)
	return nil
}

// MarshalJSON encodes the shared fields only.
func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(commonToDoc(s))
}

// UnmarshalJSON decodes the shared fields. Missing keys keep the zero value
// defaults.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var doc commonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	var out Settings
	if err := doc.apply(&out); err != nil {
		return err
	}
	*s = out
	return nil
}

func (b BingoSettings) MarshalJSON() ([]byte, error) {
	doc := bingoDoc{
		commonDoc:     commonToDoc(b.Settings),
		BingoType:     int(b.bingoType),
		Teams:         b.teams,
		CardSize:      b.cardSize,
		Players:       make(map[string]playerDoc, len(b.players)),
		LobbyID:       b.lobbyID,
		Seed:          b.seed,
		LobbyPassword: b.lobbyPassword,
		Lockout:       b.lockout,
	}
	for p, info := range b.players {
		doc.Players[strconv.Itoa(int(p))] = playerDoc{Color: int(info.Color), Name: info.Name}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a bingo document. Keys absent from data keep the
// defaults of NewBingoSettings, and a card size that is not an odd perfect
// square is ignored like any other rejected set.
func (b *BingoSettings) UnmarshalJSON(data []byte) error {
	def := NewBingoSettings(Settings{})
	doc := bingoDoc{
		commonDoc: commonToDoc(def.Settings),
		BingoType: int(def.bingoType),
		CardSize:  def.cardSize,
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	out := def
	if err := doc.commonDoc.apply(&out.Settings); err != nil {
		return err
	}
	out.Settings.mode = ModeBingo

	if !BingoType(doc.BingoType).Valid() {
		return fmt.Errorf("%w: BINGO_TYPE %d", ErrInvalidDocument, doc.BingoType)
	}
	out.bingoType = BingoType(doc.BingoType)
	out.SetCardSize(doc.CardSize)
	out.teams = doc.Teams
	out.lobbyID = doc.LobbyID
	out.seed = doc.Seed
	out.lobbyPassword = doc.LobbyPassword
	out.lockout = doc.Lockout

	for key, pd := range doc.Players {
		slot, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("%w: player key %q", ErrInvalidDocument, key)
		}
		if !out.AddPlayer(Player(slot), PlayerInfo{Color: Color(pd.Color), Name: pd.Name}) {
			return fmt.Errorf("%w: player %q with color %d", ErrInvalidDocument, key, pd.Color)
		}
	}

	*b = out
	return nil
}

func (s ShuffleSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(shuffleDoc{
		commonDoc:            commonToDoc(s.Settings),
		NumberOfSwitches:     s.numberOfSwitches,
		MinTimeBetweenSwitch: s.minTimeBetweenSwitch,
		MaxTimeBetweenSwitch: s.maxTimeBetweenSwitch,
		Endless:              s.endless,
	})
}

// UnmarshalJSON decodes a shuffle document. Keys absent from data keep the
// defaults of NewShuffleSettings.
func (s *ShuffleSettings) UnmarshalJSON(data []byte) error {
	def := NewShuffleSettings(Settings{})
	doc := shuffleDoc{
		commonDoc:            commonToDoc(def.Settings),
		NumberOfSwitches:     def.numberOfSwitches,
		MinTimeBetweenSwitch: def.minTimeBetweenSwitch,
		MaxTimeBetweenSwitch: def.maxTimeBetweenSwitch,
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	out := def
	if err := doc.commonDoc.apply(&out.Settings); err != nil {
		return err
	}
	out.Settings.mode = ModeShuffle
	out.numberOfSwitches = doc.NumberOfSwitches
	out.minTimeBetweenSwitch = doc.MinTimeBetweenSwitch
	out.maxTimeBetweenSwitch = doc.MaxTimeBetweenSwitch
	out.endless = doc.Endless

	*s = out
	return nil
}

func (r RogueSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(commonToDoc(r.Settings))
}

func (r *RogueSettings) UnmarshalJSON(data []byte) error {
	var common Settings
	if err := common.UnmarshalJSON(data); err != nil {
		return err
	}
	*r = NewRogueSettings(common)
	return nil
}

// DecodeDocument decodes a structured document into the variant named by
// its MODE key. A document without MODE decodes as Bingo, the zero mode.
func DecodeDocument(data []byte) (ModeSettings, error) {
	var head struct {
		Mode *int `json:"MODE"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode settings document: %w", err)
	}

	mode := ModeBingo
	if head.Mode != nil {
		mode = Mode(*head.Mode)
	}

	switch mode {
	case ModeBingo:
		var b BingoSettings
		if err := b.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("decode bingo settings: %w", err)
		}
		return b, nil
	case ModeShuffle:
		var s ShuffleSettings
		if err := s.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("decode shuffle settings: %w", err)
		}
		return s, nil
	case ModeRogue:
		var r RogueSettings
		if err := r.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("decode rogue settings: %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: MODE %d", ErrInvalidDocument, mode)
	}
}

// EncodeDocument encodes any variant through its own codec.
func EncodeDocument(s ModeSettings) ([]byte, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode %s settings: %w", s.Mode(), err)
	}
	return data, nil
}
