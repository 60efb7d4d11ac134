package pointer

import (
	"time"

	"github.com/keypoint/keypointer/internal/geometry"
)

// Default glide cadence. DefaultGlideDuration bounds the whole interpolation;
// DefaultGlideStep is the spacing between applied intermediate positions and
// therefore the pre-emption latency ceiling.
const (
	DefaultGlideDuration = 120 * time.Millisecond
	DefaultGlideStep     = 8 * time.Millisecond
)

// glideSteps returns how many interpolation steps fit the duration. Always
// at least 1 so the target itself is applied.
func glideSteps(duration, step time.Duration) int {
	if duration <= 0 || step <= 0 || step >= duration {
		return 1
	}
	return int(duration / step)
}

// glidePoint returns the i-th of n interpolated positions between from and
// to. i == n yields exactly to; earlier points are linear and deterministic
// for a given input.
func glidePoint(from, to geometry.Position, i, n int) geometry.Position {
	if i >= n {
		return to
	}
	p := geometry.Pt(
		from.X+(to.X-from.X)*i/n,
		from.Y+(to.Y-from.Y)*i/n,
	)
	p.Screen = to.Screen
	return p
}
