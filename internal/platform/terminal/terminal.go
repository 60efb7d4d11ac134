// Package terminal implements a key source on top of a tcell screen. It
// captures keys only while the terminal has focus, which makes it a
// cross-platform session driver that needs no global event tap and no
// input-monitoring permission.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/keypoint/keypointer/internal/keys"
	"github.com/keypoint/keypointer/internal/platform"
)

// KeySource reads key events from the controlling terminal.
type KeySource struct {
	screen tcell.Screen
	events chan platform.KeyEvent
	done   chan struct{}
}

// New allocates the source; the terminal is not touched until Start.
func New() *KeySource {
	return &KeySource{
		events: make(chan platform.KeyEvent, 32),
		done:   make(chan struct{}),
	}
}

// Start takes over the terminal and begins polling events.
func (s *KeySource) Start(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal screen: %w", err)
	}
	s.screen = screen
	screen.Clear()
	drawBanner(screen)
	screen.Show()

	go s.poll()
	return nil
}

func (s *KeySource) poll() {
	defer close(s.done)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			close(s.events)
			return
		}
		switch t := ev.(type) {
		case *tcell.EventKey:
			ke, ok := fromEventKey(t)
			if !ok {
				continue
			}
			select {
			case s.events <- ke:
			default:
				// Drop rather than stall the poll loop.
			}
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

// fromEventKey normalizes a tcell key to the platform event model. Escape
// and Space map to the shared exit runes before any classification.
func fromEventKey(ev *tcell.EventKey) (platform.KeyEvent, bool) {
	ke := platform.KeyEvent{
		Shift: ev.Modifiers()&tcell.ModShift != 0,
		Ctrl:  ev.Modifiers()&tcell.ModCtrl != 0,
		Alt:   ev.Modifiers()&tcell.ModAlt != 0,
		Meta:  ev.Modifiers()&tcell.ModMeta != 0,
		When:  time.Now().UnixNano(),
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		ke.Rune = keys.Escape
	case tcell.KeyRune:
		ke.Rune = ev.Rune()
	default:
		return platform.KeyEvent{}, false
	}
	return ke, true
}

// Events delivers captured key presses.
func (s *KeySource) Events() <-chan platform.KeyEvent { return s.events }

// Stop restores the terminal.
func (s *KeySource) Stop() error {
	if s.screen == nil {
		return nil
	}
	s.screen.Fini()
	// Fini makes PollEvent return nil, ending the poll goroutine.
	<-s.done
	s.screen = nil
	return nil
}

func drawBanner(screen tcell.Screen) {
	msg := "keypointer session active: i/k/j/l move, g grid, a area, r prediction, Esc quits"
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for i, r := range msg {
		screen.SetContent(i, 0, r, nil, style)
	}
}
