package mode

import (
	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/keys"
)

// Target is one prediction candidate offered on a number key. The list is
// opaque to the mode: usually click-history frequency, but any supplier
// works.
type Target struct {
	Label string
	Pos   geometry.Position
}

// PredictionHandler offers up to nine targets on keys 1 to 9.
type PredictionHandler struct {
	targets []Target
}

// NewPredictionHandler keeps at most nine targets; extras are dropped.
func NewPredictionHandler(targets []Target) *PredictionHandler {
	if len(targets) > 9 {
		targets = targets[:9]
	}
	return &PredictionHandler{targets: targets}
}

func (h *PredictionHandler) Kind() Kind { return Prediction }

// Targets exposes the offered list for overlays.
func (h *PredictionHandler) Targets() []Target { return h.targets }

func (h *PredictionHandler) HandleKey(ev keys.Event) Action {
	if ev.Rune < '1' || ev.Rune > '9' {
		return Action{Kind: ActionNone}
	}
	idx := int(ev.Rune - '1')
	if idx >= len(h.targets) {
		return Action{Kind: ActionNone}
	}
	return Action{Kind: ActionMoveTo, Target: h.targets[idx].Pos, Glide: true}
}

func (h *PredictionHandler) Reset() {}
