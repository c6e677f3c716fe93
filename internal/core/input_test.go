package core

import (
	"math"
	"testing"
)

func TestKeyboardIntentDiagonalMagnitude(t *testing.T) {
	axis := KeyboardIntent(false, false, false, true)
	diag := KeyboardIntent(true, false, false, true)

	axisLen := axis.Vec().Len()
	diagLen := diag.Vec().Len()
	if math.Abs(axisLen-diagLen) > 1e-9 {
		t.Errorf("diagonal magnitude %f != axis magnitude %f", diagLen, axisLen)
	}
	if diag.X <= 0 || diag.Y >= 0 {
		t.Errorf("up+right should point to +x/-y, got %+v", diag)
	}
}

func TestKeyboardIntentOpposingKeys(t *testing.T) {
	in := KeyboardIntent(true, true, true, true)
	if !in.IsZero() {
		t.Errorf("opposing keys should cancel, got %+v", in)
	}
}

func TestDragIntent(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		deadZone float64
		zero     bool
	}{
		{"inside dead zone", 1, 1, 2, true},
		{"on dead zone edge", 2, 0, 2, true},
		{"outside dead zone", 6, 8, 2, false},
		{"no offset", 0, 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := DragIntent(tc.dx, tc.dy, tc.deadZone)
			if in.IsZero() != tc.zero {
				t.Errorf("DragIntent zero = %v, expected %v", in.IsZero(), tc.zero)
			}
			if !tc.zero && math.Abs(in.Vec().Len()-1) > 1e-9 {
				t.Errorf("drag intent should be unit length, got %f", in.Vec().Len())
			}
		})
	}
}

func TestResolveIntentDragOverridesKeyboard(t *testing.T) {
	keys := KeyboardIntent(false, false, true, false)
	drag := Intent{X: 0, Y: 1}

	if got := ResolveIntent(keys, drag, true); got != drag {
		t.Errorf("active drag should override keyboard, got %+v", got)
	}
	if got := ResolveIntent(keys, drag, false); got != keys {
		t.Errorf("inactive drag should leave keyboard intent, got %+v", got)
	}
	// Active drag inside the dead zone still overrides, producing no movement.
	if got := ResolveIntent(keys, Intent{}, true); !got.IsZero() {
		t.Errorf("dead-zone drag should yield zero intent, got %+v", got)
	}
}

func TestResolveIntentClamps(t *testing.T) {
	got := ResolveIntent(Intent{X: 3, Y: -7}, Intent{}, false)
	if got.X != 1 || got.Y != -1 {
		t.Errorf("ResolveIntent should clamp axes, got %+v", got)
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	f.Move = Intent{X: 1}

	if !f.Has(ActionPause) {
		t.Error("Has(ActionPause) should be true")
	}
	if f.Has(ActionQuit) {
		t.Error("Has(ActionQuit) should be false")
	}

	f.Clear()
	if f.Has(ActionPause) || !f.Move.IsZero() {
		t.Error("Clear should reset actions and intent")
	}

	var empty InputFrame
	if empty.Has(ActionPause) {
		t.Error("zero-value frame should have no actions")
	}
	empty.Set(ActionBack)
	if !empty.Has(ActionBack) {
		t.Error("Set on zero-value frame should work")
	}
}

func TestChoiceIndex(t *testing.T) {
	if ActionChoose1.ChoiceIndex() != 0 || ActionChoose3.ChoiceIndex() != 2 {
		t.Error("choice indices should be zero-based")
	}
	if ActionPause.ChoiceIndex() != -1 {
		t.Error("non-choice actions should return -1")
	}
}
