package pointer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/platform"
)

// DefaultQueueSize bounds the command queue; producers hitting the bound get
// ErrQueueFull as backpressure rather than blocking the key-event path.
const DefaultQueueSize = 64

var (
	// ErrQueueFull is returned by Submit when the command queue is saturated.
	// It is backpressure, not a fault; the actor keeps running.
	ErrQueueFull = errors.New("pointer command queue is full")
	// ErrActorDisabled is returned once the device has failed unrecoverably
	// (or the actor is closed); all subsequent commands fail fast.
	ErrActorDisabled = errors.New("pointer actor is disabled")
)

// failsafeThreshold is the number of consecutive command failures that
// triggers the fail-safe callback.
const failsafeThreshold = 2

// Options configures an Actor.
type Options struct {
	// OpenDevice acquires the pointer device. Called lazily on the first
	// command, exactly once; the device is reused for the actor's lifetime.
	OpenDevice func() (platform.PointerDevice, error)
	// Clamp, when set, constrains MoveTo targets (typically to the bounds of
	// the target display).
	Clamp func(geometry.Position) geometry.Position
	// OnFailsafe is invoked (from the actor goroutine) when consecutive
	// failures hit the threshold or the device becomes unrecoverable.
	// Listeners must not block.
	OnFailsafe func(err error)

	QueueSize     int
	GlideDuration time.Duration
	GlideStep     time.Duration
	Logger        *slog.Logger
}

// Actor owns the pointer device exclusively. One goroutine reads the queue
// and executes commands to completion in submission order; no interleaving,
// no parallel execution.
type Actor struct {
	opts  Options
	reqs  chan request
	quit  chan struct{}
	done  chan struct{}
	close sync.Once

	disabled atomic.Bool

	posMu    sync.RWMutex
	pos      geometry.Position
	posKnown bool

	// Fields below are touched only by the actor goroutine.
	dev      platform.PointerDevice
	dead     bool // device unrecoverable; everything fails fast
	failures int
	sleep    func(time.Duration)
	log      *slog.Logger
}

type request struct {
	cmd   Command
	reply chan error // nil for fire-and-forget
}

// NewActor starts the owning goroutine. The device is not acquired until
// the first command arrives.
func NewActor(opts Options) *Actor {
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.GlideDuration == 0 {
		opts.GlideDuration = DefaultGlideDuration
	}
	if opts.GlideStep == 0 {
		opts.GlideStep = DefaultGlideStep
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	a := &Actor{
		opts:  opts,
		reqs:  make(chan request, opts.QueueSize),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
		sleep: time.Sleep,
		log:   log,
	}
	go a.run()
	return a
}

// Submit enqueues a command without waiting for completion. It never blocks:
// a saturated queue yields ErrQueueFull.
func (a *Actor) Submit(cmd Command) error {
	if a.disabled.Load() {
		return ErrActorDisabled
	}
	select {
	case a.reqs <- request{cmd: cmd}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Do enqueues a command and waits for its completion (or ctx cancellation;
// a cancelled wait does not cancel the command itself, which still executes
// in order).
func (a *Actor) Do(ctx context.Context, cmd Command) error {
	if a.disabled.Load() {
		return ErrActorDisabled
	}
	reply := make(chan error, 1)
	select {
	case a.reqs <- request{cmd: cmd, reply: reply}:
	default:
		return ErrQueueFull
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Position returns the last applied cursor position. It reads a cache and
// never enters the queue; the value is eventually consistent with the last
// executed command.
func (a *Actor) Position() (geometry.Position, bool) {
	a.posMu.RLock()
	defer a.posMu.RUnlock()
	return a.pos, a.posKnown
}

// Close stops accepting commands, drains what is already queued (a click
// enqueued just before exit still runs to completion), releases the device,
// and returns once the goroutine has exited.
func (a *Actor) Close() error {
	a.close.Do(func() {
		a.disabled.Store(true)
		close(a.quit)
	})
	<-a.done
	return nil
}

func (a *Actor) run() {
	defer close(a.done)
	for {
		select {
		case req := <-a.reqs:
			a.handle(req)
		case <-a.quit:
			a.drain()
			return
		}
	}
}

// drain executes everything still queued at shutdown, then closes the device.
func (a *Actor) drain() {
	for {
		select {
		case req := <-a.reqs:
			a.handle(req)
		default:
			if a.dev != nil {
				if err := a.dev.Close(); err != nil {
					a.log.Warn("closing pointer device", "error", err)
				}
				a.dev = nil
			}
			return
		}
	}
}

func (a *Actor) handle(req request) {
	for {
		next := a.execute(&req)
		if next == nil {
			return
		}
		req = *next
	}
}

// execute runs one command to completion. A glide may swap the active
// request when a newer MoveTo pre-empts it, and may return a stashed
// non-move request that arrived mid-glide and must run next.
func (a *Actor) execute(req *request) *request {
	if err := a.ensureDevice(); err != nil {
		reply(req, err)
		return nil
	}

	var (
		err  error
		next *request
	)
	switch cmd := req.cmd.(type) {
	case MoveTo:
		next, err = a.execMove(req, cmd)
	case Click:
		count := cmd.Count
		if count < 1 {
			count = 1
		}
		err = a.dev.Click(cmd.Button, count)
	case Scroll:
		err = a.dev.Scroll(cmd.Dx, cmd.Dy)
	case SetHold:
		if cmd.Held {
			err = a.dev.ButtonDown(cmd.Button)
		} else {
			err = a.dev.ButtonUp(cmd.Button)
		}
	default:
		err = errors.New("unknown pointer command")
	}

	a.track(err)
	reply(req, err)
	return next
}

// ensureDevice acquires the device on first use. Acquisition failure is
// terminal: the actor disables itself and every later command fails fast.
func (a *Actor) ensureDevice() error {
	if a.dead {
		return ErrActorDisabled
	}
	if a.dev != nil {
		return nil
	}
	dev, err := a.opts.OpenDevice()
	if err != nil {
		a.log.Error("pointer device unavailable", "error", err)
		a.dead = true
		a.disabled.Store(true)
		if a.opts.OnFailsafe != nil {
			a.opts.OnFailsafe(err)
		}
		return err
	}
	a.dev = dev
	if x, y, err := dev.Location(); err == nil {
		a.setPos(geometry.Pt(x, y))
	}
	return nil
}

// track counts consecutive failures and fires the fail-safe when the
// threshold is crossed. The actor itself stays usable.
func (a *Actor) track(err error) {
	if err == nil {
		a.failures = 0
		return
	}
	a.failures++
	a.log.Warn("pointer command failed", "error", err, "consecutive", a.failures)
	if a.failures == failsafeThreshold && a.opts.OnFailsafe != nil {
		a.opts.OnFailsafe(err)
	}
}

// execMove applies a MoveTo, optionally gliding. Between interpolation steps
// the queue head is peeked: a newer MoveTo pre-empts the glide and restarts
// from the last applied position; any other command is stashed and executed
// after the glide completes, preserving order.
func (a *Actor) execMove(req *request, cmd MoveTo) (*request, error) {
	target := cmd.Pos
	if a.opts.Clamp != nil {
		target = a.opts.Clamp(target)
	}

	from, known := a.Position()
	if !cmd.Glide || !known {
		if err := a.dev.MoveTo(target.X, target.Y); err != nil {
			return nil, err
		}
		a.setPos(target)
		return nil, nil
	}

	steps := glideSteps(a.opts.GlideDuration, a.opts.GlideStep)
	for i := 1; i <= steps; i++ {
		p := glidePoint(from, target, i, steps)
		if err := a.dev.MoveTo(p.X, p.Y); err != nil {
			return nil, err
		}
		a.setPos(p)
		if i == steps {
			break
		}
		a.sleep(a.opts.GlideStep)

		select {
		case next := <-a.reqs:
			if mv, ok := next.cmd.(MoveTo); ok {
				// Pre-empted: the superseded move completes as superseded,
				// the new one takes over from the last applied position.
				reply(req, nil)
				*req = next
				target = mv.Pos
				if a.opts.Clamp != nil {
					target = a.opts.Clamp(target)
				}
				from = p
				if !mv.Glide {
					if err := a.dev.MoveTo(target.X, target.Y); err != nil {
						return nil, err
					}
					a.setPos(target)
					return nil, nil
				}
				i = 0
			} else {
				// Finish the glide first, then run the stashed command.
				for j := i + 1; j <= steps; j++ {
					q := glidePoint(from, target, j, steps)
					if err := a.dev.MoveTo(q.X, q.Y); err != nil {
						return &next, err
					}
					a.setPos(q)
					if j < steps {
						a.sleep(a.opts.GlideStep)
					}
				}
				return &next, nil
			}
		case <-a.quit:
			// Shutting down: land on the target immediately.
			if err := a.dev.MoveTo(target.X, target.Y); err != nil {
				return nil, err
			}
			a.setPos(target)
			return nil, nil
		default:
		}
	}
	return nil, nil
}

func (a *Actor) setPos(p geometry.Position) {
	a.posMu.Lock()
	a.pos = p
	a.posKnown = true
	a.posMu.Unlock()
}

func reply(req *request, err error) {
	if req.reply != nil {
		req.reply <- err
		req.reply = nil
	}
}
