package mode

import (
	"testing"

	"github.com/keypoint/keypointer/internal/config"
	"github.com/keypoint/keypointer/internal/keys"
	"github.com/keypoint/keypointer/internal/platform"
)

func newBasicHandler() *BasicHandler {
	return NewBasic(keys.DefaultBindings(), config.Movement{
		StepSize: 15, FastMultiplier: 3, ScrollStep: 3, ScrollFastMultiplier: 2,
	})
}

func TestBasicKeyMapping(t *testing.T) {
	tests := []struct {
		key  rune
		want Action
	}{
		{'i', Action{Kind: ActionMove, Dy: -15}},
		{'k', Action{Kind: ActionMove, Dy: 15}},
		{'j', Action{Kind: ActionMove, Dx: -15}},
		{'l', Action{Kind: ActionMove, Dx: 15}},
		{'n', Action{Kind: ActionClick, Button: platform.MouseLeft, Count: 1}},
		{'m', Action{Kind: ActionClick, Button: platform.MouseRight, Count: 1}},
		{',', Action{Kind: ActionClick, Button: platform.MouseMiddle, Count: 1}},
		{'u', Action{Kind: ActionScroll, Dy: 3}},
		{'o', Action{Kind: ActionScroll, Dy: -3}},
		{'y', Action{Kind: ActionScroll, Dx: 3}},
		{'p', Action{Kind: ActionScroll, Dx: -3}},
		{'g', Action{Kind: ActionSwitch, Mode: Grid}},
		{'a', Action{Kind: ActionSwitch, Mode: Area}},
		{'r', Action{Kind: ActionSwitch, Mode: Prediction}},
		{'1', Action{Kind: ActionScreenJump, Screen: 1}},
		{'3', Action{Kind: ActionScreenJump, Screen: 3}},
		{'z', Action{Kind: ActionNone}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			h := newBasicHandler()
			if got := h.HandleKey(ev(tt.key)); got != tt.want {
				t.Fatalf("key %q: got %+v, want %+v", tt.key, got, tt.want)
			}
		})
	}
}

func TestSpeedToggleScalesMoveAndScroll(t *testing.T) {
	h := newBasicHandler()
	if a := h.HandleKey(ev('f')); a.Kind != ActionNone {
		t.Fatalf("speed toggle produced %v, want none", a.Kind)
	}
	if !h.Fast() {
		t.Fatal("speed toggle did not set fast flag")
	}
	if a := h.HandleKey(ev('l')); a.Dx != 45 {
		t.Fatalf("fast move dx = %d, want 45", a.Dx)
	}
	if a := h.HandleKey(ev('u')); a.Dy != 6 {
		t.Fatalf("fast scroll dy = %d, want 6", a.Dy)
	}
	h.HandleKey(ev('f'))
	if a := h.HandleKey(ev('l')); a.Dx != 15 {
		t.Fatalf("move dx after toggle off = %d, want 15", a.Dx)
	}
}

func TestHoldToggleAlternates(t *testing.T) {
	h := newBasicHandler()
	a := h.HandleKey(ev('b'))
	if a.Kind != ActionHold || a.Button != platform.MouseLeft || !a.Held {
		t.Fatalf("first hold toggle = %+v, want held left", a)
	}
	a = h.HandleKey(ev('b'))
	if a.Kind != ActionHold || a.Held {
		t.Fatalf("second hold toggle = %+v, want released", a)
	}
}
