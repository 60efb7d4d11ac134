package platform

import "context"

// PointerDevice simulates physical pointer operations. The device is
// thread-confined: after acquisition exactly one goroutine (the pointer
// actor's) may call it. No other component holds a handle to it.
type PointerDevice interface {
	// MoveTo warps the cursor to absolute virtual-desktop coordinates.
	MoveTo(x, y int) error
	// Click presses and releases a button count times at the current position.
	Click(button MouseButton, count int) error
	// ButtonDown and ButtonUp drive click-and-hold.
	ButtonDown(button MouseButton) error
	ButtonUp(button MouseButton) error
	// Scroll scrolls by line units: positive dy is up, positive dx is left.
	Scroll(dx, dy int) error
	// Location returns the current cursor position.
	Location() (x, y int, err error)
	// Close releases the device.
	Close() error
}

// ScreenLister enumerates connected displays.
type ScreenLister interface {
	Screens() ([]Screen, error)
}

// KeyEvent is one raw key press from a key source: the typed symbol, held
// modifiers, and the capture timestamp in unix nanoseconds.
type KeyEvent struct {
	Rune  rune
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
	When  int64
}

// KeySource captures raw key events. While started, a capturing source must
// swallow the events it delivers so they never reach the foreground
// application (Space in particular must not be typed).
type KeySource interface {
	Start(ctx context.Context) error
	Events() <-chan KeyEvent
	Stop() error
}

// Permissions reports whether input capture and pointer control are
// authorized by the OS. Prompting the user is handled by the platform
// packages' RequestPermissionsFunc at startup.
type Permissions interface {
	CheckInputControl() error
	CheckCapture() error
}
