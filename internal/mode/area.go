package mode

import (
	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/keys"
)

// AreaHandler drives area mode: nine fixed regions addressed by single
// symbols. The first valid symbol arms its region and targets its center; a
// second valid symbol targets the midpoint of the two centers and becomes
// the newly armed region. Anything else clears the armed state.
type AreaHandler struct {
	areas  [9]geometry.Area
	armed  rune
	notify func(armed rune)
}

// NewAreaHandler partitions the governed bounds. notify (optional) receives
// the armed symbol, 0 when cleared.
func NewAreaHandler(bounds geometry.Bounds, notify func(rune)) *AreaHandler {
	return &AreaHandler{areas: geometry.AreaLayout(bounds), notify: notify}
}

func (h *AreaHandler) Kind() Kind { return Area }

// Areas exposes the nine regions for the area-activated notification.
func (h *AreaHandler) Areas() [9]geometry.Area { return h.areas }

// Armed returns the most recently selected region symbol, 0 when none.
func (h *AreaHandler) Armed() rune { return h.armed }

func (h *AreaHandler) setArmed(r rune) {
	h.armed = r
	if h.notify != nil {
		h.notify(r)
	}
}

func (h *AreaHandler) HandleKey(ev keys.Event) Action {
	if !geometry.ValidAreaSymbol(ev.Rune) {
		h.setArmed(0)
		return Action{Kind: ActionNone}
	}
	next, _ := geometry.AreaByKey(h.areas, ev.Rune)
	if h.armed == 0 {
		h.setArmed(ev.Rune)
		return Action{Kind: ActionMoveTo, Target: next.Center, Glide: true}
	}
	prev, _ := geometry.AreaByKey(h.areas, h.armed)
	target := geometry.CombineAreas(prev, next)
	h.setArmed(ev.Rune)
	return Action{Kind: ActionMoveTo, Target: target, Glide: true}
}

func (h *AreaHandler) Reset() { h.setArmed(0) }
