package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/keypoint/keypointer/internal/config"
	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/keys"
	"github.com/keypoint/keypointer/internal/mode"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/pointer"
	"github.com/keypoint/keypointer/internal/screens"
)

type fakeDevice struct {
	mu   sync.Mutex
	ops  []string
	x, y int
}

func (d *fakeDevice) MoveTo(x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.x, d.y = x, y
	d.ops = append(d.ops, fmt.Sprintf("move %d,%d", x, y))
	return nil
}

func (d *fakeDevice) Click(b platform.MouseButton, count int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, fmt.Sprintf("click %s x%d", b, count))
	return nil
}

func (d *fakeDevice) ButtonDown(b platform.MouseButton) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, "down "+b.String())
	return nil
}

func (d *fakeDevice) ButtonUp(b platform.MouseButton) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, "up "+b.String())
	return nil
}

func (d *fakeDevice) Scroll(dx, dy int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, fmt.Sprintf("scroll %d,%d", dx, dy))
	return nil
}

func (d *fakeDevice) Location() (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.x, d.y, nil
}

func (d *fakeDevice) Close() error { return nil }

func (d *fakeDevice) position() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.x, d.y
}

func (d *fakeDevice) snapshot() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.ops))
	copy(out, d.ops)
	return out
}

type fakeKeySource struct {
	ch chan platform.KeyEvent
}

func newFakeKeySource(runes ...rune) *fakeKeySource {
	ch := make(chan platform.KeyEvent, len(runes))
	for _, r := range runes {
		ch <- platform.KeyEvent{Rune: r, When: time.Now().UnixNano()}
	}
	return &fakeKeySource{ch: ch}
}

func (f *fakeKeySource) Start(ctx context.Context) error { return nil }

func (f *fakeKeySource) Events() <-chan platform.KeyEvent { return f.ch }

func (f *fakeKeySource) Stop() error { return nil }

type fakeLister struct{ screens []platform.Screen }

func (f *fakeLister) Screens() ([]platform.Screen, error) { return f.screens, nil }

type fakePerms struct {
	capture error
	input   error
}

func (f *fakePerms) CheckCapture() error      { return f.capture }
func (f *fakePerms) CheckInputControl() error { return f.input }

func newTestSession(t *testing.T, dev *fakeDevice, src *fakeKeySource, perms platform.Permissions, opts func(*Options)) (*Session, *pointer.Actor) {
	t.Helper()
	cfg := config.Default()
	topo, err := screens.NewTopology(&fakeLister{screens: []platform.Screen{
		{ID: 1, X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
	}})
	if err != nil {
		t.Fatalf("NewTopology: %v", err)
	}
	actor := pointer.NewActor(pointer.Options{
		OpenDevice:    func() (platform.PointerDevice, error) { return dev, nil },
		Clamp:         topo.Clamp,
		GlideDuration: pointer.DefaultGlideStep, // single-step glides keep tests fast
		GlideStep:     pointer.DefaultGlideStep,
	})
	t.Cleanup(func() { actor.Close() })

	bindings, err := cfg.KeyBindings()
	if err != nil {
		t.Fatalf("KeyBindings: %v", err)
	}
	mgr := mode.NewManager(mode.NewBasic(bindings, cfg.Movement), mode.Listeners{}, nil)

	o := Options{
		Config:   cfg,
		Keys:     src,
		Perms:    perms,
		Actor:    actor,
		Topology: topo,
		Manager:  mgr,
	}
	if opts != nil {
		opts(&o)
	}
	s, err := New(o)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, actor
}

func runSession(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestEscapeInBasicEndsSession(t *testing.T) {
	dev := &fakeDevice{}
	s, _ := newTestSession(t, dev, newFakeKeySource(keys.Escape), nil, nil)
	runSession(t, s)
}

func TestBasicMoveIsRelativeToPrimaryCenter(t *testing.T) {
	dev := &fakeDevice{}
	s, actor := newTestSession(t, dev, newFakeKeySource('l', keys.Escape), nil, nil)
	runSession(t, s)
	actor.Close()

	// Before the first command the position is unknown, so the move is
	// relative to the primary screen center (960, 540).
	if x, y := dev.position(); x != 975 || y != 540 {
		t.Fatalf("position = (%d,%d), want (975,540)", x, y)
	}
}

func TestGridSelectionMovesToCellCenter(t *testing.T) {
	dev := &fakeDevice{}
	s, actor := newTestSession(t, dev, newFakeKeySource('g', 'a', 'q', keys.Escape, keys.Escape), nil, nil)
	runSession(t, s)
	actor.Close()

	if x, y := dev.position(); x != 320 || y != 180 {
		t.Fatalf("position = (%d,%d), want cell center (320,180)", x, y)
	}
}

func TestScreenJumpTargetsScreenCenter(t *testing.T) {
	dev := &fakeDevice{}
	s, actor := newTestSession(t, dev, newFakeKeySource('1', keys.Escape), nil, nil)
	runSession(t, s)
	actor.Close()

	if x, y := dev.position(); x != 960 || y != 540 {
		t.Fatalf("position = (%d,%d), want (960,540)", x, y)
	}
}

func TestMissingCapturePermissionAbortsSession(t *testing.T) {
	dev := &fakeDevice{}
	perms := &fakePerms{capture: platform.ErrPermissionDenied}
	s, _ := newTestSession(t, dev, newFakeKeySource(keys.Escape), perms, nil)

	err := s.Run(context.Background())
	if !errors.Is(err, platform.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
}

func TestMissingInputPermissionBlocksActivation(t *testing.T) {
	dev := &fakeDevice{}
	perms := &fakePerms{input: platform.ErrPermissionDenied}
	s, _ := newTestSession(t, dev, newFakeKeySource('g', keys.Escape), perms, nil)

	runSession(t, s)
	if got := s.opts.Manager.Current(); got != mode.Basic {
		t.Fatalf("mode = %v, want basic when activation is blocked", got)
	}
}

func TestPredictionWithoutTargetsStaysBasic(t *testing.T) {
	dev := &fakeDevice{}
	s, _ := newTestSession(t, dev, newFakeKeySource('r', keys.Escape), nil, nil)
	runSession(t, s)
	if got := s.opts.Manager.Current(); got != mode.Basic {
		t.Fatalf("mode = %v, want basic without prediction targets", got)
	}
}

func TestPredictionUsesSuppliedTargets(t *testing.T) {
	dev := &fakeDevice{}
	s, actor := newTestSession(t, dev, newFakeKeySource('r', '1', keys.Escape, keys.Escape), nil, func(o *Options) {
		o.Targets = []mode.Target{{Label: "dock", Pos: geometry.Pt(700, 1000)}}
	})
	runSession(t, s)
	actor.Close()

	if x, y := dev.position(); x != 700 || y != 1000 {
		t.Fatalf("position = (%d,%d), want (700,1000)", x, y)
	}
}
