package mode

import (
	"github.com/keypoint/keypointer/internal/config"
	"github.com/keypoint/keypointer/internal/keys"
	"github.com/keypoint/keypointer/internal/platform"
)

// BasicHandler is the default mode: direct key-to-action mapping for
// movement, clicks, scrolling, hold, and mode activation. The speed toggle
// is a persistent flag scaling subsequent moves, not an action itself.
type BasicHandler struct {
	bindings keys.Bindings
	movement config.Movement

	fast bool
	held bool
}

// NewBasic returns the basic-mode handler for the given layout and tuning.
func NewBasic(b keys.Bindings, mv config.Movement) *BasicHandler {
	return &BasicHandler{bindings: b, movement: mv}
}

func (h *BasicHandler) Kind() Kind { return Basic }

// Fast reports whether the speed toggle is on.
func (h *BasicHandler) Fast() bool { return h.fast }

// Holding reports whether the left button is held for dragging.
func (h *BasicHandler) Holding() bool { return h.held }

func (h *BasicHandler) step() int {
	s := h.movement.StepSize
	if h.fast {
		s = int(float64(s) * h.movement.FastMultiplier)
	}
	if s < 1 {
		s = 1
	}
	return s
}

func (h *BasicHandler) scrollStep() int {
	s := h.movement.ScrollStep
	if h.fast {
		s = int(float64(s) * h.movement.ScrollFastMultiplier)
	}
	if s < 1 {
		s = 1
	}
	return s
}

func (h *BasicHandler) HandleKey(ev keys.Event) Action {
	b := h.bindings
	switch ev.Rune {
	case b.MoveUp:
		return Action{Kind: ActionMove, Dy: -h.step()}
	case b.MoveDown:
		return Action{Kind: ActionMove, Dy: h.step()}
	case b.MoveLeft:
		return Action{Kind: ActionMove, Dx: -h.step()}
	case b.MoveRight:
		return Action{Kind: ActionMove, Dx: h.step()}

	case b.ClickLeft:
		return Action{Kind: ActionClick, Button: platform.MouseLeft, Count: 1}
	case b.ClickRight:
		return Action{Kind: ActionClick, Button: platform.MouseRight, Count: 1}
	case b.ClickMiddle:
		return Action{Kind: ActionClick, Button: platform.MouseMiddle, Count: 1}

	case b.ScrollUp:
		return Action{Kind: ActionScroll, Dy: h.scrollStep()}
	case b.ScrollDown:
		return Action{Kind: ActionScroll, Dy: -h.scrollStep()}
	case b.ScrollLeft:
		return Action{Kind: ActionScroll, Dx: h.scrollStep()}
	case b.ScrollRight:
		return Action{Kind: ActionScroll, Dx: -h.scrollStep()}

	case b.SpeedToggle:
		h.fast = !h.fast
		return Action{Kind: ActionNone}
	case b.HoldToggle:
		h.held = !h.held
		return Action{Kind: ActionHold, Button: platform.MouseLeft, Held: h.held}

	case b.GridMode:
		return Action{Kind: ActionSwitch, Mode: Grid}
	case b.AreaMode:
		return Action{Kind: ActionSwitch, Mode: Area}
	case b.PredictionMode:
		return Action{Kind: ActionSwitch, Mode: Prediction}

	case b.Screen1:
		return Action{Kind: ActionScreenJump, Screen: 1}
	case b.Screen2:
		return Action{Kind: ActionScreenJump, Screen: 2}
	case b.Screen3:
		return Action{Kind: ActionScreenJump, Screen: 3}
	}
	return Action{Kind: ActionNone}
}

// Reset keeps the speed flag (it is a user preference, not sequence state)
// and releases nothing: a held button is only released by the hold key or
// session shutdown.
func (h *BasicHandler) Reset() {}
