// Package engine runs the interactive session: it consumes key events from
// the platform key source, routes them through the mode state machine, and
// turns the resolved actions into pointer-actor commands.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/keypoint/keypointer/internal/config"
	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/history"
	"github.com/keypoint/keypointer/internal/keys"
	"github.com/keypoint/keypointer/internal/mode"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/pointer"
	"github.com/keypoint/keypointer/internal/screens"
)

// Options wires the session's collaborators. Keys, Actor, Topology, and
// Manager are required; the rest are optional.
type Options struct {
	Config   config.Snapshot
	Keys     platform.KeySource
	Perms    platform.Permissions
	Actor    *pointer.Actor
	Topology *screens.Topology
	Manager  *mode.Manager
	History  history.Store
	// Targets, when non-empty, overrides the history store as the
	// prediction-mode supplier.
	Targets []mode.Target

	// OnSequenceProgress receives the pending partial grid combination for
	// visual feedback; OnArmedRegion the armed area symbol (0 = cleared).
	OnSequenceProgress func(partial string)
	OnArmedRegion      func(armed rune)

	Logger *slog.Logger
}

// Session is the interactive key-to-pointer loop. All mode handling runs on
// the single goroutine inside Run; only the actor is shared.
type Session struct {
	opts Options
	log  *slog.Logger
}

// New validates the wiring.
func New(opts Options) (*Session, error) {
	if opts.Keys == nil || opts.Actor == nil || opts.Topology == nil || opts.Manager == nil {
		return nil, errors.New("engine: key source, actor, topology, and manager are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{opts: opts, log: opts.Logger}, nil
}

// Run captures keys until the context is cancelled or the escape key is
// pressed in basic mode. Capture permission is checked before the source
// starts; without it the session never begins.
func (s *Session) Run(ctx context.Context) error {
	if s.opts.Perms != nil {
		if err := s.opts.Perms.CheckCapture(); err != nil {
			return fmt.Errorf("starting session: %w", err)
		}
	}
	if err := s.opts.Keys.Start(ctx); err != nil {
		return fmt.Errorf("starting key source: %w", err)
	}
	defer s.opts.Keys.Stop()

	s.log.Info("session started", "mode", s.opts.Manager.Current().String())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-s.opts.Keys.Events():
			if !ok {
				return nil
			}
			ev := toEvent(raw)
			if done := s.handle(ev); done {
				return nil
			}
		}
	}
}

func toEvent(raw platform.KeyEvent) keys.Event {
	var mods keys.Modifier
	if raw.Shift {
		mods |= keys.ModShift
	}
	if raw.Ctrl {
		mods |= keys.ModCtrl
	}
	if raw.Alt {
		mods |= keys.ModAlt
	}
	if raw.Meta {
		mods |= keys.ModMeta
	}
	return keys.Event{Rune: raw.Rune, Mods: mods, When: time.Unix(0, raw.When)}
}

// handle routes one event and applies the resolved action. The return value
// reports whether the session should end.
func (s *Session) handle(ev keys.Event) bool {
	act := s.opts.Manager.HandleKey(ev)
	switch act.Kind {
	case mode.ActionNone:
		return false

	case mode.ActionMove:
		from := s.position()
		target := geometry.Position{X: from.X + act.Dx, Y: from.Y + act.Dy}
		s.submit(pointer.MoveTo{Pos: target})

	case mode.ActionMoveTo:
		s.submit(pointer.MoveTo{Pos: act.Target, Glide: act.Glide})

	case mode.ActionClick:
		s.submit(pointer.Click{Button: act.Button, Count: act.Count})
		s.recordClick(act.Button)

	case mode.ActionScroll:
		s.submit(pointer.Scroll{Dx: act.Dx, Dy: act.Dy})

	case mode.ActionHold:
		s.submit(pointer.SetHold{Button: act.Button, Held: act.Held})

	case mode.ActionSwitch:
		s.activate(act.Mode)

	case mode.ActionScreenJump:
		d, ok := s.opts.Topology.ByOrdinal(act.Screen)
		if !ok {
			s.log.Debug("no such screen", "ordinal", act.Screen)
			return false
		}
		s.submit(pointer.MoveTo{Pos: d.Bounds.Center(), Glide: true})

	case mode.ActionExit:
		// The manager already handled mode exits. In basic mode escape ends
		// the session; a bare space is swallowed.
		if act.Mode == mode.Basic && ev.Rune == keys.Escape {
			s.log.Info("session ended")
			return true
		}
	}
	return false
}

// submit treats queue saturation as backpressure, not failure: the key press
// is simply dropped.
func (s *Session) submit(cmd pointer.Command) {
	err := s.opts.Actor.Submit(cmd)
	switch {
	case err == nil:
	case errors.Is(err, pointer.ErrQueueFull):
		s.log.Debug("pointer queue full, dropping command")
	case errors.Is(err, pointer.ErrActorDisabled):
		s.log.Warn("pointer actor disabled")
	default:
		s.log.Warn("pointer command rejected", "error", err)
	}
}

func (s *Session) recordClick(button platform.MouseButton) {
	if s.opts.History == nil {
		return
	}
	if err := s.opts.History.RecordClick(s.position(), button.String()); err != nil {
		s.log.Warn("recording click", "error", err)
	}
}

// position returns the actor's cached position, or the primary screen
// center before the first pointer command establishes one.
func (s *Session) position() geometry.Position {
	if p, ok := s.opts.Actor.Position(); ok {
		return p
	}
	return s.opts.Topology.Primary().Bounds.Center()
}

// activate builds and enters the requested mode. Configuration and
// permission failures abort the activation; the session stays in basic mode.
func (s *Session) activate(kind mode.Kind) {
	if s.opts.Perms != nil {
		if err := s.opts.Perms.CheckInputControl(); err != nil {
			s.log.Warn("mode activation blocked", "mode", kind.String(), "error", err)
			return
		}
	}

	h, err := s.buildHandler(kind)
	if err != nil {
		s.log.Error("mode activation failed", "mode", kind.String(), "error", err)
		return
	}
	if err := s.opts.Manager.Activate(h); err != nil {
		s.log.Warn("mode activation rejected", "mode", kind.String(), "error", err)
	}
}

func (s *Session) buildHandler(kind mode.Kind) (mode.Handler, error) {
	switch kind {
	case mode.Grid:
		return mode.NewGridHandler(s.opts.Config.Grid, s.governedBounds(s.opts.Config.Grid.SpanAll), s.opts.OnSequenceProgress)
	case mode.Area:
		return mode.NewAreaHandler(s.governedBounds(false), s.opts.OnArmedRegion), nil
	case mode.Prediction:
		targets, err := s.predictionTargets()
		if err != nil {
			return nil, err
		}
		if len(targets) == 0 {
			return nil, errors.New("no prediction targets available")
		}
		return mode.NewPredictionHandler(targets), nil
	default:
		return nil, fmt.Errorf("mode %s is not activatable", kind)
	}
}

// governedBounds picks the display the cursor occupies, or the union
// bounding box for span-all configurations.
func (s *Session) governedBounds(spanAll bool) geometry.Bounds {
	if spanAll {
		return s.opts.Topology.Union()
	}
	return s.opts.Topology.At(s.position()).Bounds
}

func (s *Session) predictionTargets() ([]mode.Target, error) {
	if len(s.opts.Targets) > 0 {
		return s.opts.Targets, nil
	}
	if s.opts.History == nil {
		return nil, nil
	}
	stored, err := s.opts.History.TopTargets(9)
	if err != nil {
		return nil, fmt.Errorf("loading click history: %w", err)
	}
	targets := make([]mode.Target, 0, len(stored))
	for _, t := range stored {
		targets = append(targets, mode.Target{
			Label: fmt.Sprintf("(%d, %d) x%d", t.Pos.X, t.Pos.Y, t.Count),
			Pos:   t.Pos,
		})
	}
	return targets, nil
}
