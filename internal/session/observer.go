// SPDX-License-Identifier: MIT

package session

import "github.com/xanmankey/WiiMix/internal/settings"

// Observer receives the notifications a front end reacts to. Calls are made
// after the session lock is released, so observers may call back into the
// session.
type Observer interface {
	ModeChanged(mode settings.Mode)
	StartBingo(settings.BingoSettings)
	StartShuffle(settings.ShuffleSettings)
	StartRogue(settings.RogueSettings)
	ErrorLoadingSettings(message string)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) ModeChanged(settings.Mode)             {}
func (NopObserver) StartBingo(settings.BingoSettings)     {}
func (NopObserver) StartShuffle(settings.ShuffleSettings) {}
func (NopObserver) StartRogue(settings.RogueSettings)     {}
func (NopObserver) ErrorLoadingSettings(string)           {}
