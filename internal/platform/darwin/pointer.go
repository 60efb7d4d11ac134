//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation
#include <CoreGraphics/CoreGraphics.h>

static int cg_move_mouse(float x, float y, int dragging) {
    CGPoint point = CGPointMake(x, y);
    CGEventType type = dragging ? kCGEventLeftMouseDragged : kCGEventMouseMoved;
    CGEventRef move = CGEventCreateMouseEvent(NULL, type, point, kCGMouseButtonLeft);
    if (!move) return -1;
    CGEventPost(kCGHIDEventTap, move);
    CFRelease(move);
    return 0;
}

// Click at the current cursor position with the specified button and count.
// button: 0=left, 1=right, 2=middle (maps to kCGMouseButton*)
static int cg_click(float x, float y, int button, int count) {
    CGPoint point = CGPointMake(x, y);

    CGEventType downType, upType;
    CGMouseButton cgButton;

    switch (button) {
        case 1:  // right
            cgButton = kCGMouseButtonRight;
            downType = kCGEventRightMouseDown;
            upType = kCGEventRightMouseUp;
            break;
        case 2:  // middle
            cgButton = kCGMouseButtonCenter;
            downType = kCGEventOtherMouseDown;
            upType = kCGEventOtherMouseUp;
            break;
        default:  // left (0)
            cgButton = kCGMouseButtonLeft;
            downType = kCGEventLeftMouseDown;
            upType = kCGEventLeftMouseUp;
            break;
    }

    for (int i = 0; i < count; i++) {
        CGEventRef down = CGEventCreateMouseEvent(NULL, downType, point, cgButton);
        CGEventRef up = CGEventCreateMouseEvent(NULL, upType, point, cgButton);
        if (!down || !up) {
            if (down) CFRelease(down);
            if (up) CFRelease(up);
            return -1;
        }
        CGEventSetIntegerValueField(down, kCGMouseEventClickState, i + 1);
        CGEventSetIntegerValueField(up, kCGMouseEventClickState, i + 1);
        CGEventPost(kCGHIDEventTap, down);
        CGEventPost(kCGHIDEventTap, up);
        CFRelease(down);
        CFRelease(up);
    }
    return 0;
}

// Press or release a single button at the current cursor position.
static int cg_button(float x, float y, int button, int down) {
    CGPoint point = CGPointMake(x, y);

    CGEventType type;
    CGMouseButton cgButton;
    switch (button) {
        case 1:
            cgButton = kCGMouseButtonRight;
            type = down ? kCGEventRightMouseDown : kCGEventRightMouseUp;
            break;
        case 2:
            cgButton = kCGMouseButtonCenter;
            type = down ? kCGEventOtherMouseDown : kCGEventOtherMouseUp;
            break;
        default:
            cgButton = kCGMouseButtonLeft;
            type = down ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
            break;
    }

    CGEventRef ev = CGEventCreateMouseEvent(NULL, type, point, cgButton);
    if (!ev) return -1;
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

// Scroll in line units. dy positive = up, dx positive = left.
static int cg_scroll(int dy, int dx) {
    CGEventRef scroll = CGEventCreateScrollWheelEvent(
        NULL, kCGScrollEventUnitLine, 2, dy, dx);
    if (!scroll) return -1;
    CGEventPost(kCGHIDEventTap, scroll);
    CFRelease(scroll);
    return 0;
}

static int cg_location(float *x, float *y) {
    CGEventRef ev = CGEventCreate(NULL);
    if (!ev) return -1;
    CGPoint p = CGEventGetLocation(ev);
    CFRelease(ev);
    *x = p.x;
    *y = p.y;
    return 0;
}
*/
import "C"

import (
	"fmt"
	"sync"

	"github.com/keypoint/keypointer/internal/platform"
)

// Device drives the macOS cursor through CGEvent. It tracks which buttons
// are held so interpolated moves are posted as drag events, keeping
// click-and-hold drags working.
type Device struct {
	mu   sync.Mutex
	held map[platform.MouseButton]bool
}

// NewDevice returns the CGEvent-backed pointer device.
func NewDevice() *Device {
	return &Device{held: make(map[platform.MouseButton]bool)}
}

func cgButton(b platform.MouseButton) C.int {
	switch b {
	case platform.MouseRight:
		return 1
	case platform.MouseMiddle:
		return 2
	default:
		return 0
	}
}

func (d *Device) MoveTo(x, y int) error {
	d.mu.Lock()
	dragging := d.held[platform.MouseLeft]
	d.mu.Unlock()

	drag := C.int(0)
	if dragging {
		drag = 1
	}
	if C.cg_move_mouse(C.float(x), C.float(y), drag) != 0 {
		return fmt.Errorf("failed to move cursor to (%d, %d)", x, y)
	}
	return nil
}

func (d *Device) Click(button platform.MouseButton, count int) error {
	if count < 1 {
		count = 1
	}
	x, y, err := d.Location()
	if err != nil {
		return err
	}
	if C.cg_click(C.float(x), C.float(y), cgButton(button), C.int(count)) != 0 {
		return fmt.Errorf("failed to click %s at (%d, %d)", button, x, y)
	}
	return nil
}

func (d *Device) ButtonDown(button platform.MouseButton) error {
	x, y, err := d.Location()
	if err != nil {
		return err
	}
	if C.cg_button(C.float(x), C.float(y), cgButton(button), 1) != 0 {
		return fmt.Errorf("failed to press %s at (%d, %d)", button, x, y)
	}
	d.mu.Lock()
	d.held[button] = true
	d.mu.Unlock()
	return nil
}

func (d *Device) ButtonUp(button platform.MouseButton) error {
	x, y, err := d.Location()
	if err != nil {
		return err
	}
	if C.cg_button(C.float(x), C.float(y), cgButton(button), 0) != 0 {
		return fmt.Errorf("failed to release %s at (%d, %d)", button, x, y)
	}
	d.mu.Lock()
	d.held[button] = false
	d.mu.Unlock()
	return nil
}

func (d *Device) Scroll(dx, dy int) error {
	if C.cg_scroll(C.int(dy), C.int(dx)) != 0 {
		return fmt.Errorf("failed to scroll (%d, %d)", dx, dy)
	}
	return nil
}

func (d *Device) Location() (int, int, error) {
	var x, y C.float
	if C.cg_location(&x, &y) != 0 {
		return 0, 0, fmt.Errorf("failed to read cursor location")
	}
	return int(x), int(y), nil
}

// Close releases any button still held so shutdown never leaves a stuck
// mouse-down state.
func (d *Device) Close() error {
	d.mu.Lock()
	var held []platform.MouseButton
	for b, on := range d.held {
		if on {
			held = append(held, b)
		}
	}
	d.mu.Unlock()

	for _, b := range held {
		if err := d.ButtonUp(b); err != nil {
			return err
		}
	}
	return nil
}
