//go:build darwin

// Package darwin provides macOS platform support: CGEvent pointer synthesis,
// CoreGraphics display enumeration, a CGEventTap key source, and
// accessibility/input-monitoring permission checks. All functionality
// requires CGo; without it the package compiles as a no-op stub and no
// provider is registered.
package darwin
