package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/twenty48/internal/engine"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKeyToDirection translates a key message to a board direction.
// Arrow keys, WASD and vim-style HJKL are all supported.
func (km *KeyMapper) MapKeyToDirection(msg tea.KeyMsg) (engine.Direction, bool) {
	switch msg.String() {
	case "up", "w", "k":
		return engine.DirUp, true
	case "down", "s", "j":
		return engine.DirDown, true
	case "left", "a", "h":
		return engine.DirLeft, true
	case "right", "d", "l":
		return engine.DirRight, true
	}
	return 0, false
}

// GameAction represents a non-movement action during play.
type GameAction int

const (
	GameActionNone GameAction = iota
	GameActionUndo
	GameActionRestart
	GameActionScreenshot
	GameActionBack
	GameActionQuit
)

// MapKeyToGameAction translates a key to a game action. Movement keys
// are not game actions; see MapKeyToDirection.
func (km *KeyMapper) MapKeyToGameAction(msg tea.KeyMsg) GameAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return GameActionQuit
	case "u":
		return GameActionUndo
	case "r":
		return GameActionRestart
	case "ctrl+s":
		return GameActionScreenshot
	case "b", "esc":
		return GameActionBack
	}
	return GameActionNone
}

// PromptAction represents a choice on the win prompt.
type PromptAction int

const (
	PromptActionNone PromptAction = iota
	PromptActionContinue
	PromptActionStop
	PromptActionUndo
	PromptActionQuit
)

// MapKeyToPromptAction translates a key pressed while the win prompt
// is up. Movement keys are ignored until the player has chosen.
func (km *KeyMapper) MapKeyToPromptAction(msg tea.KeyMsg) PromptAction {
	switch msg.String() {
	case "c", "enter", " ":
		return PromptActionContinue
	case "s":
		return PromptActionStop
	case "u":
		return PromptActionUndo
	case "ctrl+c", "q":
		return PromptActionQuit
	}
	return PromptActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
