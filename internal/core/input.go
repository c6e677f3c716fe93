package core

import "math"

// Action represents a semantic command, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter
	ActionBack           // B - back to menu
	ActionRestart        // R - new run after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Escape
	ActionChoose1        // 1 - first upgrade option
	ActionChoose2        // 2 - second upgrade option
	ActionChoose3        // 3 - third upgrade option
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionChoose1, ActionChoose2, ActionChoose3:
		return "Choose"
	default:
		return "Unknown"
	}
}

// ChoiceIndex returns the zero-based upgrade index for a choose action, or -1.
func (a Action) ChoiceIndex() int {
	switch a {
	case ActionChoose1:
		return 0
	case ActionChoose2:
		return 1
	case ActionChoose3:
		return 2
	default:
		return -1
	}
}

// Intent is a movement request with each axis in [-1, 1].
type Intent struct {
	X, Y float64
}

// IsZero reports whether the intent requests no movement.
func (i Intent) IsZero() bool {
	return i.X == 0 && i.Y == 0
}

// Vec converts the intent to a direction vector.
func (i Intent) Vec() Vec {
	return Vec{X: i.X, Y: i.Y}
}

// KeyboardIntent builds an intent from held direction keys.
// Opposing keys cancel out. Diagonals are renormalized to unit length so
// diagonal speed equals axis speed.
func KeyboardIntent(up, down, left, right bool) Intent {
	var in Intent
	if up {
		in.Y--
	}
	if down {
		in.Y++
	}
	if left {
		in.X--
	}
	if right {
		in.X++
	}
	if in.X != 0 && in.Y != 0 {
		in.X /= math.Sqrt2
		in.Y /= math.Sqrt2
	}
	return in
}

// DragIntent converts a pointer drag offset from its origin into an intent.
// Offsets at or inside deadZone produce no movement; beyond it the offset is
// normalized to a unit vector.
func DragIntent(dx, dy, deadZone float64) Intent {
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= deadZone || dist == 0 {
		return Intent{}
	}
	return Intent{X: dx / dist, Y: dy / dist}
}

// ResolveIntent picks the intent for a tick. An active drag fully overrides
// the keyboard. The result is clamped to [-1, 1] per axis.
func ResolveIntent(keyboard Intent, drag Intent, dragActive bool) Intent {
	in := keyboard
	if dragActive {
		in = drag
	}
	return Intent{
		X: ClampF(in.X, -1, 1),
		Y: ClampF(in.Y, -1, 1),
	}
}

// InputFrame represents the input state for one simulation tick.
type InputFrame struct {
	// Move is the resolved movement intent.
	Move Intent

	// Actions maps discrete commands to whether they were triggered this frame.
	Actions map[Action]bool
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

// Clear resets all actions and the movement intent for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Move = Intent{}
}
