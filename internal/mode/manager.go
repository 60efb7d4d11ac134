package mode

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/keys"
)

// ErrTransition is returned when a mode activation is attempted while
// another mode is already active. Exit to basic first.
var ErrTransition = errors.New("mode can only be activated from basic mode")

// historyCap bounds the previous-mode list kept for diagnostics.
const historyCap = 10

// Listeners are overlay/indicator callbacks fired on state changes. All are
// optional and invoked synchronously on the transitioning goroutine; a
// missing listener never blocks a transition.
type Listeners struct {
	ModeChanged   func(from, to Kind)
	GridActivated func(cells []geometry.GridCell)
	AreaActivated func(areas [9]geometry.Area, armed rune)
}

// Manager owns the current interaction mode. Exactly one mode is active at
// any time; the current kind is guarded for atomic visibility because status
// queries come from other goroutines, while transitions and key routing
// happen on the session goroutine only.
type Manager struct {
	mu        sync.RWMutex
	current   Handler
	basic     *BasicHandler
	history   []Kind
	listeners Listeners
	log       *slog.Logger
}

// NewManager starts in basic mode.
func NewManager(basic *BasicHandler, l Listeners, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{current: basic, basic: basic, listeners: l, log: log}
}

// Current returns the active mode kind.
func (m *Manager) Current() Kind {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Kind()
}

// Basic returns the persistent basic-mode handler.
func (m *Manager) Basic() *BasicHandler { return m.basic }

// History returns previously active modes, most recent first, consecutive
// duplicates collapsed, at most ten entries. Diagnostics only.
func (m *Manager) History() []Kind {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Kind, len(m.history))
	copy(out, m.history)
	return out
}

// Activate switches from basic mode to the given handler and fires the
// overlay notifications. Activation from any other mode fails.
func (m *Manager) Activate(h Handler) error {
	m.mu.Lock()
	if m.current.Kind() != Basic {
		m.mu.Unlock()
		return ErrTransition
	}
	old := m.current.Kind()
	m.pushHistory(old)
	m.current = h
	m.mu.Unlock()

	m.log.Debug("mode activated", "from", old.String(), "to", h.Kind().String())
	m.notifyChanged(old, h.Kind())
	switch t := h.(type) {
	case *GridHandler:
		if m.listeners.GridActivated != nil {
			m.listeners.GridActivated(t.Cells())
		}
	case *AreaHandler:
		if m.listeners.AreaActivated != nil {
			m.listeners.AreaActivated(t.Areas(), t.Armed())
		}
	}
	return nil
}

// Deactivate returns to basic mode, clearing the leaving mode's transient
// state. Pointer commands already queued are unaffected. No-op when basic
// is already active.
func (m *Manager) Deactivate() {
	m.mu.Lock()
	if m.current.Kind() == Basic {
		m.mu.Unlock()
		return
	}
	old := m.current
	m.pushHistory(old.Kind())
	m.current = m.basic
	m.mu.Unlock()

	old.Reset()
	m.log.Debug("mode deactivated", "from", old.Kind().String())
	m.notifyChanged(old.Kind(), Basic)
}

// FailSafe forces basic mode after a downstream failure. Same effect as
// Deactivate; kept separate so callers and logs name the cause.
func (m *Manager) FailSafe() {
	m.log.Warn("fail-safe: reverting to basic mode")
	m.Deactivate()
}

// HandleKey routes one key event. The exit key is checked before the active
// handler sees the event: in an activated mode it collapses any pending
// state and returns to basic; in basic mode it is reported to the caller,
// which decides whether the session ends.
func (m *Manager) HandleKey(ev keys.Event) Action {
	m.mu.RLock()
	h := m.current
	m.mu.RUnlock()

	if ev.IsExit() {
		if h.Kind() != Basic {
			m.Deactivate()
		}
		return Action{Kind: ActionExit, Mode: h.Kind()}
	}
	return h.HandleKey(ev)
}

// pushHistory records k most-recent-first; caller holds m.mu.
func (m *Manager) pushHistory(k Kind) {
	if len(m.history) > 0 && m.history[0] == k {
		return
	}
	m.history = append([]Kind{k}, m.history...)
	if len(m.history) > historyCap {
		m.history = m.history[:historyCap]
	}
}

func (m *Manager) notifyChanged(from, to Kind) {
	if m.listeners.ModeChanged != nil {
		m.listeners.ModeChanged(from, to)
	}
}
