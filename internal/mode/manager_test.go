package mode

import (
	"errors"
	"testing"
	"time"

	"github.com/keypoint/keypointer/internal/config"
	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/keys"
)

func ev(r rune) keys.Event {
	return keys.Event{Rune: r, When: time.Now()}
}

func newTestManager(t *testing.T, l Listeners) *Manager {
	t.Helper()
	basic := NewBasic(keys.DefaultBindings(), config.Default().Movement)
	return NewManager(basic, l, nil)
}

func TestManagerStartsInBasic(t *testing.T) {
	m := newTestManager(t, Listeners{})
	if got := m.Current(); got != Basic {
		t.Fatalf("initial mode = %v, want basic", got)
	}
}

func TestActivateOnlyFromBasic(t *testing.T) {
	m := newTestManager(t, Listeners{})
	bounds := geometry.Bounds{Width: 1920, Height: 1080}

	gh, err := NewGridHandler(geometry.GridConfig{Rows: 3, Columns: 3}, bounds, nil)
	if err != nil {
		t.Fatalf("NewGridHandler: %v", err)
	}
	if err := m.Activate(gh); err != nil {
		t.Fatalf("Activate from basic: %v", err)
	}
	if m.Current() != Grid {
		t.Fatalf("mode = %v, want grid", m.Current())
	}

	ah := NewAreaHandler(bounds, nil)
	if err := m.Activate(ah); !errors.Is(err, ErrTransition) {
		t.Fatalf("Activate from grid: got %v, want ErrTransition", err)
	}
	if m.Current() != Grid {
		t.Fatalf("failed activation changed mode to %v", m.Current())
	}
}

func TestGridConfigErrorAbortsActivation(t *testing.T) {
	m := newTestManager(t, Listeners{})
	_, err := NewGridHandler(geometry.GridConfig{Rows: 10, Columns: 10}, geometry.Bounds{Width: 100, Height: 100}, nil)
	if !errors.Is(err, geometry.ErrGridCapacity) {
		t.Fatalf("got %v, want ErrGridCapacity", err)
	}
	if m.Current() != Basic {
		t.Fatalf("mode = %v, want basic after aborted activation", m.Current())
	}
}

func TestGridSelectionTargetsCellCenter(t *testing.T) {
	m := newTestManager(t, Listeners{})
	gh, err := NewGridHandler(geometry.GridConfig{Rows: 3, Columns: 3}, geometry.Bounds{Width: 1920, Height: 1080}, nil)
	if err != nil {
		t.Fatalf("NewGridHandler: %v", err)
	}
	if err := m.Activate(gh); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	if a := m.HandleKey(ev('a')); a.Kind != ActionNone {
		t.Fatalf("first symbol produced %v, want none", a.Kind)
	}
	a := m.HandleKey(ev('q'))
	if a.Kind != ActionMoveTo {
		t.Fatalf("combination produced %v, want move-to", a.Kind)
	}
	want := geometry.Position{X: 320, Y: 180}
	if a.Target.X != want.X || a.Target.Y != want.Y {
		t.Fatalf("target = (%d,%d), want (%d,%d)", a.Target.X, a.Target.Y, want.X, want.Y)
	}
	if !a.Glide {
		t.Error("grid move-to should glide")
	}
	if m.Current() != Grid {
		t.Fatalf("mode = %v, want grid after selection", m.Current())
	}
}

func TestExitMidSequenceClearsStateAndReturnsToBasic(t *testing.T) {
	var progress []string
	m := newTestManager(t, Listeners{})
	gh, err := NewGridHandler(geometry.GridConfig{Rows: 3, Columns: 3}, geometry.Bounds{Width: 1920, Height: 1080},
		func(p string) { progress = append(progress, p) })
	if err != nil {
		t.Fatalf("NewGridHandler: %v", err)
	}
	if err := m.Activate(gh); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	m.HandleKey(ev('a'))
	a := m.HandleKey(ev(keys.Escape))
	if a.Kind != ActionExit {
		t.Fatalf("exit key produced %v, want exit", a.Kind)
	}
	if m.Current() != Basic {
		t.Fatalf("mode = %v, want basic after exit", m.Current())
	}
	if last := progress[len(progress)-1]; last != "" {
		t.Fatalf("pending sequence %q survived exit", last)
	}

	// A fresh grid activation must start from an empty sequence.
	if err := m.Activate(gh); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if a := m.HandleKey(ev('q')); a.Kind != ActionNone {
		t.Fatalf("stale first symbol completed a combination: %v", a.Kind)
	}
}

func TestSpaceExitsLikeEscape(t *testing.T) {
	m := newTestManager(t, Listeners{})
	ah := NewAreaHandler(geometry.Bounds{Width: 1200, Height: 900}, nil)
	if err := m.Activate(ah); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if a := m.HandleKey(ev(' ')); a.Kind != ActionExit {
		t.Fatalf("space produced %v, want exit", a.Kind)
	}
	if m.Current() != Basic {
		t.Fatalf("mode = %v, want basic", m.Current())
	}
}

func TestAreaCombinationMidpoint(t *testing.T) {
	m := newTestManager(t, Listeners{})
	ah := NewAreaHandler(geometry.Bounds{Width: 1200, Height: 900}, nil)
	if err := m.Activate(ah); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	a := m.HandleKey(ev('q'))
	if a.Kind != ActionMoveTo || a.Target.X != 200 || a.Target.Y != 150 {
		t.Fatalf("q: got %v target (%d,%d), want move-to (200,150)", a.Kind, a.Target.X, a.Target.Y)
	}
	if ah.Armed() != 'q' {
		t.Fatalf("armed = %q, want 'q'", ah.Armed())
	}

	a = m.HandleKey(ev('e'))
	if a.Kind != ActionMoveTo || a.Target.X != 600 || a.Target.Y != 150 {
		t.Fatalf("q+e: got target (%d,%d), want midpoint (600,150)", a.Target.X, a.Target.Y)
	}
	if ah.Armed() != 'e' {
		t.Fatalf("armed = %q, want 'e' after combination", ah.Armed())
	}
}

func TestAreaSameSymbolTwiceReselectsOwnCenter(t *testing.T) {
	ah := NewAreaHandler(geometry.Bounds{Width: 1200, Height: 900}, nil)
	ah.HandleKey(ev('s'))
	a := ah.HandleKey(ev('s'))
	if a.Kind != ActionMoveTo || a.Target.X != 600 || a.Target.Y != 450 {
		t.Fatalf("s+s: got target (%d,%d), want own center (600,450)", a.Target.X, a.Target.Y)
	}
}

func TestAreaInvalidKeyClearsArmed(t *testing.T) {
	var armed []rune
	ah := NewAreaHandler(geometry.Bounds{Width: 1200, Height: 900}, func(r rune) { armed = append(armed, r) })
	ah.HandleKey(ev('q'))
	if a := ah.HandleKey(ev('7')); a.Kind != ActionNone {
		t.Fatalf("invalid key produced %v", a.Kind)
	}
	if ah.Armed() != 0 {
		t.Fatalf("armed = %q, want cleared", ah.Armed())
	}
	if len(armed) != 2 || armed[1] != 0 {
		t.Fatalf("notifications = %v, want [q 0]", armed)
	}
}

func TestPredictionTargets(t *testing.T) {
	ph := NewPredictionHandler([]Target{
		{Label: "browser", Pos: geometry.Position{X: 100, Y: 200}},
		{Label: "editor", Pos: geometry.Position{X: 800, Y: 400}},
	})
	a := ph.HandleKey(ev('2'))
	if a.Kind != ActionMoveTo || a.Target.X != 800 || a.Target.Y != 400 {
		t.Fatalf("key 2: got %v (%d,%d), want move-to (800,400)", a.Kind, a.Target.X, a.Target.Y)
	}
	if a := ph.HandleKey(ev('3')); a.Kind != ActionNone {
		t.Fatalf("out-of-range key produced %v", a.Kind)
	}
	if a := ph.HandleKey(ev('x')); a.Kind != ActionNone {
		t.Fatalf("non-digit produced %v", a.Kind)
	}
}

func TestFailSafeRevertsToBasic(t *testing.T) {
	var changes [][2]Kind
	m := newTestManager(t, Listeners{ModeChanged: func(from, to Kind) {
		changes = append(changes, [2]Kind{from, to})
	}})
	ah := NewAreaHandler(geometry.Bounds{Width: 100, Height: 100}, nil)
	if err := m.Activate(ah); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	m.FailSafe()
	if m.Current() != Basic {
		t.Fatalf("mode = %v, want basic after fail-safe", m.Current())
	}
	want := [][2]Kind{{Basic, Area}, {Area, Basic}}
	if len(changes) != len(want) || changes[0] != want[0] || changes[1] != want[1] {
		t.Fatalf("mode-changed events = %v, want %v", changes, want)
	}
	// Fail-safe while already basic is a no-op.
	m.FailSafe()
	if len(changes) != 2 {
		t.Fatalf("redundant fail-safe emitted %d events", len(changes))
	}
}

func TestHistoryBoundedAndDeduplicated(t *testing.T) {
	m := newTestManager(t, Listeners{})
	ah := NewAreaHandler(geometry.Bounds{Width: 100, Height: 100}, nil)
	for i := 0; i < 8; i++ {
		if err := m.Activate(ah); err != nil {
			t.Fatalf("Activate #%d: %v", i, err)
		}
		m.Deactivate()
	}
	h := m.History()
	if len(h) > historyCap {
		t.Fatalf("history length %d exceeds cap %d", len(h), historyCap)
	}
	for i := 1; i < len(h); i++ {
		if h[i] == h[i-1] {
			t.Fatalf("consecutive duplicate %v at %d: %v", h[i], i, h)
		}
	}
	if h[0] != Area {
		t.Fatalf("most recent = %v, want area", h[0])
	}
}

func TestGridActivatedNotificationCarriesCells(t *testing.T) {
	var cells []geometry.GridCell
	m := newTestManager(t, Listeners{GridActivated: func(c []geometry.GridCell) { cells = c }})
	gh, err := NewGridHandler(geometry.GridConfig{Rows: 2, Columns: 2}, geometry.Bounds{Width: 100, Height: 100}, nil)
	if err != nil {
		t.Fatalf("NewGridHandler: %v", err)
	}
	if err := m.Activate(gh); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if len(cells) != 4 {
		t.Fatalf("notification carried %d cells, want 4", len(cells))
	}
}
