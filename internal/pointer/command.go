// Package pointer serializes all physical pointer effects through a single
// owning goroutine. Producers submit commands over a bounded queue and never
// touch the device directly.
package pointer

import (
	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/platform"
)

// Command is a queued pointer instruction. Commands are messages: ordered,
// opaque, and free of shared mutable state. The variant set is closed.
type Command interface {
	command()
}

// MoveTo moves the cursor to an absolute position. With Glide set, the
// actor interpolates from the last known position over a bounded duration;
// a newer MoveTo pre-empts an in-flight glide and restarts from the last
// applied intermediate position.
type MoveTo struct {
	Pos   geometry.Position
	Glide bool
}

// Click presses and releases a button at the current position. Count 0 is
// treated as a single click.
type Click struct {
	Button platform.MouseButton
	Count  int
}

// Scroll scrolls by line units: positive Dy is up, positive Dx is left.
type Scroll struct {
	Dx, Dy int
}

// SetHold presses (Held=true) or releases a button for click-and-hold.
type SetHold struct {
	Button platform.MouseButton
	Held   bool
}

func (MoveTo) command()  {}
func (Click) command()   {}
func (Scroll) command()  {}
func (SetHold) command() {}
