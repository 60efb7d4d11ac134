// Package mode implements the input-mode state machine: a closed set of
// interaction modes (basic, grid, area, prediction) that interpret key
// events and produce abstract pointer actions. Execution of those actions
// belongs to the pointer actor; nothing in this package touches the device.
package mode

import (
	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/keys"
	"github.com/keypoint/keypointer/internal/platform"
)

// Kind identifies an interaction mode.
type Kind int

const (
	Basic Kind = iota
	Grid
	Area
	Prediction
)

func (k Kind) String() string {
	switch k {
	case Basic:
		return "basic"
	case Grid:
		return "grid"
	case Area:
		return "area"
	case Prediction:
		return "prediction"
	default:
		return "unknown"
	}
}

// ActionKind discriminates the Action variants.
type ActionKind int

const (
	// ActionNone means the key was consumed (or ignored) with no pointer
	// effect, e.g. a speed toggle or a partial grid sequence.
	ActionNone ActionKind = iota
	// ActionMove is a relative pointer move by Dx/Dy pixels.
	ActionMove
	// ActionMoveTo is an absolute move to Target, optionally glided.
	ActionMoveTo
	// ActionClick presses Button Count times at the current position.
	ActionClick
	// ActionScroll scrolls by Dx/Dy line units; positive is up/left.
	ActionScroll
	// ActionHold sets the held state of Button (drag support).
	ActionHold
	// ActionSwitch requests activation of Mode.
	ActionSwitch
	// ActionScreenJump requests a move to the center of screen Screen
	// (1-based ordinal).
	ActionScreenJump
	// ActionExit reports that the exit key left a mode (or, in basic mode,
	// that the caller may end the session).
	ActionExit
)

// Action is the abstract pointer effect a mode resolved from one key event.
// It is a tagged union: Kind selects which fields are meaningful.
type Action struct {
	Kind   ActionKind
	Dx     int
	Dy     int
	Target geometry.Position
	Glide  bool
	Button platform.MouseButton
	Count  int
	Held   bool
	Mode   Kind
	Screen int
}

// Handler interprets key events for one mode. Handlers are confined to the
// session goroutine and hold only transient per-mode state.
type Handler interface {
	Kind() Kind
	HandleKey(ev keys.Event) Action
	// Reset clears transient state (armed region, pending sequence) when the
	// mode is left. It must not undo pointer effects already requested.
	Reset()
}
