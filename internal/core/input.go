package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionMoveLeft          // A, Left arrow
	ActionMoveRight         // D, Right arrow
	ActionJump              // Space, W, Up
	ActionShoot             // F, mouse click
	ActionNextWeapon        // Tab, E
	ActionPrevWeapon        // Shift+Tab
	ActionPause             // P
	ActionDebug             // F1
	ActionQuit              // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionJump:
		return "Jump"
	case ActionShoot:
		return "Shoot"
	case ActionNextWeapon:
		return "NextWeapon"
	case ActionPrevWeapon:
		return "PrevWeapon"
	case ActionPause:
		return "Pause"
	case ActionDebug:
		return "Debug"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state resolved once at the start of a tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Aim is the world-space point the player is pointing at.
	// It is only meaningful when HasAim is set.
	Aim    Vec2
	HasAim bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AimAt records the world-space aim point.
func (f *InputFrame) AimAt(p Vec2) {
	f.Aim = p
	f.HasAim = true
}

// Clear resets all actions for the next frame. The aim point is sticky.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Aim = f.Aim
	clone.HasAim = f.HasAim
	return clone
}
