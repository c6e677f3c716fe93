package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// Terminals report key presses but never releases. A direction counts as
// held for a while after each press: long enough after the first press to
// bridge the OS autorepeat delay, shorter once repeats are arriving.
const (
	DefaultFirstHold  = 550 * time.Millisecond
	DefaultRepeatHold = 150 * time.Millisecond

	// DefaultDragDeadZone is the drag radius in cells that produces no movement.
	DefaultDragDeadZone = 1.5
)

type heldKey struct {
	last    time.Time
	repeats int
}

// HeldKeys approximates held direction keys from a stream of presses.
type HeldKeys struct {
	FirstHold  time.Duration
	RepeatHold time.Duration

	keys map[core.Action]heldKey
}

// NewHeldKeys creates a tracker with the default hold windows.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{
		FirstHold:  DefaultFirstHold,
		RepeatHold: DefaultRepeatHold,
		keys:       make(map[core.Action]heldKey),
	}
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// Press records a direction press at time at. Pressing a direction releases
// its opposite. Non-direction actions are ignored.
func (h *HeldKeys) Press(a core.Action, at time.Time) {
	opp := opposite(a)
	if opp == core.ActionNone {
		return
	}
	delete(h.keys, opp)

	k, ok := h.keys[a]
	if ok && h.within(k, at) {
		k.repeats++
	} else {
		k.repeats = 0
	}
	k.last = at
	h.keys[a] = k
}

func (h *HeldKeys) within(k heldKey, at time.Time) bool {
	window := h.FirstHold
	if k.repeats > 0 {
		window = h.RepeatHold
	}
	return at.Sub(k.last) <= window
}

// Held reports whether a direction is still considered down at time at.
func (h *HeldKeys) Held(a core.Action, at time.Time) bool {
	k, ok := h.keys[a]
	return ok && h.within(k, at)
}

// Intent builds the keyboard movement intent at time at.
func (h *HeldKeys) Intent(at time.Time) core.Intent {
	return core.KeyboardIntent(
		h.Held(core.ActionUp, at),
		h.Held(core.ActionDown, at),
		h.Held(core.ActionLeft, at),
		h.Held(core.ActionRight, at),
	)
}

// Clear releases every direction.
func (h *HeldKeys) Clear() {
	clear(h.keys)
}

// DragState tracks a left-button mouse drag used as a virtual joystick.
// The press point is the stick origin; the pointer position deflects it.
type DragState struct {
	DeadZone float64

	active           bool
	originX, originY int
	curX, curY       int
}

// NewDragState creates a drag tracker with the default dead zone.
func NewDragState() *DragState {
	return &DragState{DeadZone: DefaultDragDeadZone}
}

// Handle updates the drag from a mouse event.
func (d *DragState) Handle(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || d.active {
			return
		}
		d.active = true
		d.originX, d.originY = msg.X, msg.Y
		d.curX, d.curY = msg.X, msg.Y
	case tea.MouseActionMotion:
		if d.active {
			d.curX, d.curY = msg.X, msg.Y
		}
	case tea.MouseActionRelease:
		d.Release()
	}
}

// Release ends the drag.
func (d *DragState) Release() {
	d.active = false
}

// Active reports whether a drag is in progress.
func (d *DragState) Active() bool {
	return d.active
}

// Intent returns the drag direction, or zero inside the dead zone.
func (d *DragState) Intent() core.Intent {
	if !d.active {
		return core.Intent{}
	}
	return core.DragIntent(float64(d.curX-d.originX), float64(d.curY-d.originY), d.DeadZone)
}
