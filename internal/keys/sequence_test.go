package keys

import (
	"testing"
	"time"
)

func at(ms int) time.Time {
	return time.Unix(0, 0).Add(time.Duration(ms) * time.Millisecond)
}

func ev(r rune, ms int) Event {
	return Event{Rune: r, When: at(ms)}
}

func TestRecognizer_CompleteSequence(t *testing.T) {
	r := NewRecognizer(0)

	out := r.Offer(ev('a', 0))
	if out.Combo != "" || out.Partial != "a" {
		t.Fatalf("first symbol: got %+v", out)
	}
	if r.Pending() != 'a' {
		t.Fatalf("pending = %q, want a", r.Pending())
	}

	out = r.Offer(ev('q', 500))
	if out.Combo != "aq" {
		t.Fatalf("combo = %q, want aq", out.Combo)
	}
	if r.Pending() != 0 {
		t.Error("recognizer should be empty after completion")
	}
}

func TestRecognizer_Timeout(t *testing.T) {
	r := NewRecognizer(0)
	r.Offer(ev('a', 0))

	// Past the timeout the held symbol is dropped and the new key starts a
	// fresh sequence.
	out := r.Offer(ev('s', 1500))
	if out.Combo != "" {
		t.Fatalf("stale sequence completed: %+v", out)
	}
	if out.Partial != "s" || r.Pending() != 's' {
		t.Fatalf("new sequence not started: %+v pending=%q", out, r.Pending())
	}

	// A second symbol arriving late cannot complete anything either.
	r.Reset()
	r.Offer(ev('a', 0))
	out = r.Offer(ev('q', 1001))
	if out.Combo != "" || r.Pending() != 0 {
		t.Fatalf("late second symbol: got %+v pending=%q", out, r.Pending())
	}
}

func TestRecognizer_ExactlyAtTimeout(t *testing.T) {
	r := NewRecognizer(0)
	r.Offer(ev('a', 0))
	// The boundary is exclusive: exactly 1000ms still completes.
	out := r.Offer(ev('q', 1000))
	if out.Combo != "aq" {
		t.Fatalf("combo at boundary = %q, want aq", out.Combo)
	}
}

func TestRecognizer_InvalidKeys(t *testing.T) {
	r := NewRecognizer(0)

	// Not a first symbol: ignored, machine stays empty.
	if out := r.Offer(ev('q', 0)); out.Combo != "" || out.Partial != "" {
		t.Fatalf("invalid first: %+v", out)
	}

	// Valid first, then a key that is no valid second symbol: collapses
	// without emitting.
	r.Offer(ev('d', 0))
	if out := r.Offer(ev('z', 100)); out.Combo != "" || out.Partial != "" {
		t.Fatalf("invalid second: %+v", out)
	}
	if r.Pending() != 0 {
		t.Error("sequence should be cleared")
	}
}

func TestRecognizer_TableCombos(t *testing.T) {
	cases := []struct {
		first, second rune
		want          string
	}{
		{'a', 'q', "aq"},
		{'l', 'p', "lp"},
		{'h', 'e', "he"},
	}
	for _, tc := range cases {
		r := NewRecognizer(0)
		r.Offer(ev(tc.first, 0))
		out := r.Offer(ev(tc.second, 10))
		if out.Combo != tc.want {
			t.Errorf("%c%c: got %q", tc.first, tc.second, out.Combo)
		}
	}
}

func TestEvent_IsExit(t *testing.T) {
	if !(Event{Rune: ' '}).IsExit() || !(Event{Rune: Escape}).IsExit() {
		t.Error("space and escape are exit keys")
	}
	if (Event{Rune: 'q'}).IsExit() {
		t.Error("q is not an exit key")
	}
}
