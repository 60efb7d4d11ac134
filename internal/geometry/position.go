// Package geometry holds the coordinate types shared by the grid, area, and
// pointer packages. All coordinates are absolute pixels in the virtual
// desktop coordinate space.
package geometry

// Position is a point on the virtual desktop. Screen is an optional 1-based
// display ordinal hint (0 = no hint); it names the display the position was
// computed against, not a separate coordinate space.
type Position struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Screen int `json:"screen,omitempty" yaml:"screen,omitempty"`
}

// Pt returns a Position with no display hint.
func Pt(x, y int) Position {
	return Position{X: x, Y: y}
}

// OnScreen returns a Position carrying a display ordinal hint.
func OnScreen(x, y, screen int) Position {
	return Position{X: x, Y: y, Screen: screen}
}

// Bounds is a pixel rectangle: origin plus size.
type Bounds struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"w" yaml:"w"`
	Height int `json:"h" yaml:"h"`
}

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() Position {
	return Pt(b.X+b.Width/2, b.Y+b.Height/2)
}

// Contains reports whether p lies inside b. The right and bottom edges are
// exclusive so adjacent rectangles never both claim a point.
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.X && p.X < b.X+b.Width &&
		p.Y >= b.Y && p.Y < b.Y+b.Height
}

// Clamp returns the point inside b closest to p.
func (b Bounds) Clamp(p Position) Position {
	x := min(max(p.X, b.X), b.X+b.Width-1)
	y := min(max(p.Y, b.Y), b.Y+b.Height-1)
	return Position{X: x, Y: y, Screen: p.Screen}
}

// Union returns the smallest rectangle covering both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if b.Width == 0 && b.Height == 0 {
		return o
	}
	if o.Width == 0 && o.Height == 0 {
		return b
	}
	x0 := min(b.X, o.X)
	y0 := min(b.Y, o.Y)
	x1 := max(b.X+b.Width, o.X+o.Width)
	y1 := max(b.Y+b.Height, o.Y+o.Height)
	return Bounds{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Midpoint returns the arithmetic mean of two positions.
func Midpoint(a, b Position) Position {
	return Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
}
