//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation
#include <CoreGraphics/CoreGraphics.h>

int tap_run(void);
void tap_stop(void);
*/
import "C"

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/keypoint/keypointer/internal/keys"
	"github.com/keypoint/keypointer/internal/platform"
)

// Only one event tap can run per process; the C callback has no way to
// carry a receiver, so the active tap is package state.
var (
	tapMu     sync.Mutex
	activeTap *KeyTap
)

// KeyTap captures keyboard events process-wide through a CGEventTap and
// swallows them, so session keys (Space included) never reach the
// foreground application.
type KeyTap struct {
	events  chan platform.KeyEvent
	started chan error
	done    chan struct{}
	running bool
}

// NewKeyTap returns the macOS global key source.
func NewKeyTap() *KeyTap {
	return &KeyTap{
		events:  make(chan platform.KeyEvent, 32),
		started: make(chan error, 1),
		done:    make(chan struct{}),
	}
}

// Start creates the tap and services its run loop on a dedicated OS thread.
// It fails if event-capture permission is missing or another tap is active.
func (t *KeyTap) Start(ctx context.Context) error {
	tapMu.Lock()
	if activeTap != nil {
		tapMu.Unlock()
		return fmt.Errorf("key tap already running")
	}
	activeTap = t
	t.running = true
	tapMu.Unlock()

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		// tap_run blocks in the CFRunLoop until tap_stop. A create failure
		// (usually missing permission) returns immediately.
		if C.tap_run() != 0 {
			t.started <- fmt.Errorf("creating event tap: %w", platform.ErrPermissionDenied)
		}
		close(t.done)
	}()

	select {
	case err := <-t.started:
		t.teardown()
		return err
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		// The run loop is servicing the tap.
		return nil
	}
}

// Events delivers captured key presses.
func (t *KeyTap) Events() <-chan platform.KeyEvent { return t.events }

// Stop tears the tap down and releases the process-wide slot.
func (t *KeyTap) Stop() error {
	tapMu.Lock()
	running := t.running
	tapMu.Unlock()
	if !running {
		return nil
	}
	C.tap_stop()
	<-t.done
	t.teardown()
	return nil
}

func (t *KeyTap) teardown() {
	tapMu.Lock()
	if activeTap == t {
		activeTap = nil
	}
	t.running = false
	tapMu.Unlock()
}

// deliver forwards one captured key. The return value tells the tap whether
// to swallow the event.
func (t *KeyTap) deliver(ch rune, flags uint64) bool {
	ev := platform.KeyEvent{
		Rune:  normalizeRune(ch),
		Shift: flags&uint64(C.kCGEventFlagMaskShift) != 0,
		Ctrl:  flags&uint64(C.kCGEventFlagMaskControl) != 0,
		Alt:   flags&uint64(C.kCGEventFlagMaskAlternate) != 0,
		Meta:  flags&uint64(C.kCGEventFlagMaskCommand) != 0,
		When:  time.Now().UnixNano(),
	}
	// Command shortcuts stay with the OS; everything else is session input.
	if ev.Meta || ev.Ctrl {
		return false
	}
	select {
	case t.events <- ev:
	default:
		// A stalled consumer drops keys rather than stalls the tap; the OS
		// kills taps that block.
	}
	return true
}

// normalizeRune folds the platform escape representation onto the shared
// escape rune; everything else passes through.
func normalizeRune(ch rune) rune {
	if ch == 0x1b {
		return keys.Escape
	}
	return ch
}
