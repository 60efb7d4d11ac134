package mode

import (
	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/keys"
)

// GridHandler drives grid mode: key events feed the two-stage sequence
// recognizer, completed combinations resolve to the matching cell's center.
// Exit keys are the manager's job and never reach HandleKey.
type GridHandler struct {
	grid     *geometry.Grid
	rec      *keys.Recognizer
	progress func(partial string)
}

// NewGridHandler builds the grid over the governed bounds. A configuration
// exceeding the addressing capacity fails here, before any overlay is shown,
// and the activation is aborted. progress (optional) receives the pending
// partial combination for visual feedback.
func NewGridHandler(cfg geometry.GridConfig, bounds geometry.Bounds, progress func(string)) (*GridHandler, error) {
	g, err := geometry.NewGrid(cfg, bounds)
	if err != nil {
		return nil, err
	}
	return &GridHandler{grid: g, rec: keys.NewRecognizer(0), progress: progress}, nil
}

func (h *GridHandler) Kind() Kind { return Grid }

// Cells exposes the full cell list for the grid-activated notification.
func (h *GridHandler) Cells() []geometry.GridCell { return h.grid.Cells() }

func (h *GridHandler) HandleKey(ev keys.Event) Action {
	out := h.rec.Offer(ev)
	if h.progress != nil {
		h.progress(out.Partial)
	}
	if out.Combo == "" {
		return Action{Kind: ActionNone}
	}
	cell, ok := h.grid.CellByCombo(out.Combo)
	if !ok {
		// Unreachable for a well-formed grid unless the combination addresses
		// a cell beyond rows*columns; drop it.
		return Action{Kind: ActionNone}
	}
	return Action{Kind: ActionMoveTo, Target: cell.Center, Glide: true}
}

func (h *GridHandler) Reset() {
	h.rec.Reset()
	if h.progress != nil {
		h.progress("")
	}
}
