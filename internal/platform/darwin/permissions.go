//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreGraphics -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreGraphics/CoreGraphics.h>

static int ax_trusted() {
    return AXIsProcessTrusted();
}

static int ax_prompt() {
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { kCFBooleanTrue };
    CFDictionaryRef options = CFDictionaryCreate(kCFAllocatorDefault,
        keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    int trusted = AXIsProcessTrustedWithOptions(options);
    CFRelease(options);
    return trusted;
}

static int listen_access() {
    return CGPreflightListenEventAccess();
}

static void listen_request() {
    CGRequestListenEventAccess();
}
*/
import "C"

import (
	"fmt"

	"github.com/keypoint/keypointer/internal/platform"
)

// Permissions reports macOS accessibility (pointer control) and input
// monitoring (key capture) authorization.
type Permissions struct{}

// NewPermissions returns the macOS permission checker.
func NewPermissions() *Permissions {
	return &Permissions{}
}

// CheckInputControl verifies the accessibility permission required to post
// synthetic pointer events.
func (p *Permissions) CheckInputControl() error {
	if C.ax_trusted() == 0 {
		return fmt.Errorf(
			"%w: accessibility permission required\n\n"+
				"Grant permission at: System Settings > Privacy & Security > Accessibility\n"+
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n"+
				"Then restart the terminal and try again.", platform.ErrPermissionDenied)
	}
	return nil
}

// CheckCapture verifies the input-monitoring permission required for the
// global event tap.
func (p *Permissions) CheckCapture() error {
	if C.listen_access() == 0 {
		return fmt.Errorf(
			"%w: input monitoring permission required\n\n"+
				"Grant permission at: System Settings > Privacy & Security > Input Monitoring\n"+
				"Add your terminal app, then restart it and try again.", platform.ErrPermissionDenied)
	}
	return nil
}

// requestPermissions triggers the OS permission prompts once at startup.
func requestPermissions() {
	C.ax_prompt()
	C.listen_request()
}
