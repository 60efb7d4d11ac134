// Package keys models raw keyboard input and the two-stage sequence
// recognizer used by grid navigation.
package keys

import "time"

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Escape is the rune used for the escape key; key sources normalize the
// platform escape event to this value.
const Escape = '\x1b'

// Event is one raw key press as delivered by a key source.
type Event struct {
	Rune rune
	Mods Modifier
	When time.Time
}

// IsExit reports whether the event is one of the universal exit keys.
// Escape and Space always leave the active mode, checked before any symbol
// classification.
func (e Event) IsExit() bool {
	return e.Rune == Escape || e.Rune == ' '
}
