package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/something/internal/core"
)

// holdTime is how long a movement key counts as held after a key event.
// Terminals report repeats, not releases, so a held key is one that keeps
// repeating within this window.
const holdTime = 0.15

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionMoveLeft, false
	case "d", "right":
		return core.ActionMoveRight, false
	case " ", "w", "up":
		return core.ActionJump, false
	case "f", "enter":
		return core.ActionShoot, false
	case "tab", "e":
		return core.ActionNextWeapon, false
	case "shift+tab":
		return core.ActionPrevWeapon, false
	case "p", "esc":
		return core.ActionPause, false
	case "f1":
		return core.ActionDebug, false
	}
	return core.ActionNone, false
}

// IsConsoleToggle reports whether msg opens or closes the console.
func (km *KeyMapper) IsConsoleToggle(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "`", "~":
		return true
	}
	return false
}

// Held reports whether a is a movement action that stays active between
// key repeats.
func Held(a core.Action) bool {
	return a == core.ActionMoveLeft || a == core.ActionMoveRight
}

// MouseInput is the game input derived from a mouse message.
type MouseInput struct {
	Aim    bool // the pointer moved or clicked
	Action core.Action
}

// MapMouse translates a mouse message. The aim point itself is resolved by
// the caller, which owns the camera.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) MouseInput {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return MouseInput{Action: core.ActionPrevWeapon}
	case msg.Button == tea.MouseButtonWheelDown:
		return MouseInput{Action: core.ActionNextWeapon}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return MouseInput{Aim: true, Action: core.ActionShoot}
	case msg.Action == tea.MouseActionMotion:
		return MouseInput{Aim: true}
	}
	return MouseInput{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRooms
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
	case "b", "esc":
		return MenuActionBack
	case "tab", "r":
		return MenuActionRooms
	}
	return MenuActionNone
}
