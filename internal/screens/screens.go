// Package screens caches display topology and answers the geometric queries
// the mode handlers need: which display owns a point, where a display's
// center is, and the union surface spanning all displays.
package screens

import (
	"errors"
	"fmt"
	"sync"

	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/platform"
)

// ErrNoScreens is returned when the platform reports an empty topology.
var ErrNoScreens = errors.New("no displays detected")

// Display is one connected display with its 1-based ordinal. Ordinals are
// stable for a given topology snapshot: primary first, the rest in platform
// enumeration order.
type Display struct {
	Ordinal int             `json:"ordinal" yaml:"ordinal"`
	ID      uint32          `json:"id" yaml:"id"`
	Bounds  geometry.Bounds `json:"bounds" yaml:"bounds"`
	Primary bool            `json:"primary" yaml:"primary"`
}

// Topology snapshots the connected displays. Refresh replaces the snapshot
// wholesale on topology change; reads are served from the cache.
type Topology struct {
	lister platform.ScreenLister

	mu       sync.RWMutex
	displays []Display
}

// NewTopology queries the lister once and caches the result.
func NewTopology(lister platform.ScreenLister) (*Topology, error) {
	t := &Topology{lister: lister}
	if err := t.Refresh(); err != nil {
		return nil, err
	}
	return t, nil
}

// Refresh re-enumerates displays, replacing the cached snapshot as a whole.
func (t *Topology) Refresh() error {
	raw, err := t.lister.Screens()
	if err != nil {
		return fmt.Errorf("enumerating displays: %w", err)
	}
	if len(raw) == 0 {
		return ErrNoScreens
	}

	displays := make([]Display, 0, len(raw))
	// Primary gets ordinal 1 so the jump-to-screen keys are predictable.
	for _, s := range raw {
		if s.Primary {
			displays = append(displays, fromScreen(s))
		}
	}
	for _, s := range raw {
		if !s.Primary {
			displays = append(displays, fromScreen(s))
		}
	}
	for i := range displays {
		displays[i].Ordinal = i + 1
	}

	t.mu.Lock()
	t.displays = displays
	t.mu.Unlock()
	return nil
}

func fromScreen(s platform.Screen) Display {
	return Display{
		ID:      s.ID,
		Bounds:  geometry.Bounds{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height},
		Primary: s.Primary,
	}
}

// Displays returns the cached snapshot, primary first.
func (t *Topology) Displays() []Display {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Display, len(t.displays))
	copy(out, t.displays)
	return out
}

// Primary returns the primary display (the first one when the platform
// marks none as primary).
func (t *Topology) Primary() Display {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, d := range t.displays {
		if d.Primary {
			return d
		}
	}
	return t.displays[0]
}

// ByOrdinal returns the display with the given 1-based ordinal.
func (t *Topology) ByOrdinal(n int) (Display, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if n < 1 || n > len(t.displays) {
		return Display{}, false
	}
	return t.displays[n-1], true
}

// At returns the display containing p. A display-ordinal hint on the
// position wins; otherwise containment decides, falling back to primary for
// points outside every display.
func (t *Topology) At(p geometry.Position) Display {
	if p.Screen != 0 {
		if d, ok := t.ByOrdinal(p.Screen); ok {
			return d
		}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, d := range t.displays {
		if d.Bounds.Contains(p) {
			return d
		}
	}
	for _, d := range t.displays {
		if d.Primary {
			return d
		}
	}
	return t.displays[0]
}

// Union returns the bounding box of all displays: the logical surface used
// when a grid or area configuration spans every display.
func (t *Topology) Union() geometry.Bounds {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var u geometry.Bounds
	for _, d := range t.displays {
		u = u.Union(d.Bounds)
	}
	return u
}

// Clamp constrains p to the display that owns it, preserving any ordinal
// hint by clamping into the hinted display instead.
func (t *Topology) Clamp(p geometry.Position) geometry.Position {
	return t.At(p).Bounds.Clamp(p)
}
