package keys

import (
	"time"

	"github.com/keypoint/keypointer/internal/geometry"
)

// SequenceTimeout is the maximum gap between the first and second symbol of
// a grid combination. It is evaluated lazily: no timer fires while idle, the
// stale state is discarded when the next event arrives.
const SequenceTimeout = 1000 * time.Millisecond

// Outcome is the recognizer's verdict on one key event.
type Outcome struct {
	// Combo is the completed two-symbol combination, empty until the second
	// symbol lands.
	Combo string
	// Partial is the pending first symbol for visual feedback ("a" while
	// awaiting the second symbol), empty once resolved or reset.
	Partial string
}

// Recognizer is the two-state machine turning raw key events into grid
// combinations: Empty, or AwaitingSecond with the first symbol and its
// timestamp. State is confined to the session goroutine; no locking.
type Recognizer struct {
	timeout time.Duration
	first   rune
	firstAt time.Time
}

// NewRecognizer returns a recognizer with the given timeout; zero means
// SequenceTimeout.
func NewRecognizer(timeout time.Duration) *Recognizer {
	if timeout <= 0 {
		timeout = SequenceTimeout
	}
	return &Recognizer{timeout: timeout}
}

// Offer feeds one key event through the machine. Exit keys must be filtered
// by the caller beforehand; they never reach the recognizer.
func (r *Recognizer) Offer(ev Event) Outcome {
	// A stale first symbol is dropped before the new key is classified, so
	// the event can start a fresh sequence.
	if r.first != 0 && ev.When.Sub(r.firstAt) > r.timeout {
		r.Reset()
	}

	if r.first == 0 {
		if geometry.ValidFirstSymbol(ev.Rune) {
			r.first = ev.Rune
			r.firstAt = ev.When
			return Outcome{Partial: string(ev.Rune)}
		}
		return Outcome{}
	}

	if geometry.ValidSecondSymbol(ev.Rune) {
		combo := string([]rune{r.first, ev.Rune})
		r.Reset()
		return Outcome{Combo: combo}
	}

	// Neither a valid second symbol nor anything else meaningful: collapse
	// the sequence without emitting.
	r.Reset()
	return Outcome{}
}

// Pending returns the held first symbol, or 0 when the machine is empty.
func (r *Recognizer) Pending() rune { return r.first }

// Reset clears any partial sequence.
func (r *Recognizer) Reset() {
	r.first = 0
	r.firstAt = time.Time{}
}
