package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Pointer     PointerDevice
	Screens     ScreenLister
	Keys        KeySource
	Permissions Permissions
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("keypointer is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// ErrPermissionDenied wraps OS-level capture/control refusals. Platform
// backends wrap it so callers can test with errors.Is.
var ErrPermissionDenied = errors.New("input control permission denied")

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func() (*Provider, error)

// RequestPermissionsFunc is set by platform-specific packages via init().
// It triggers OS permission prompts (e.g. accessibility) at startup.
var RequestPermissionsFunc func()

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
