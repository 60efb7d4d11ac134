package geometry

// AreaSymbols are the nine region keys in row-major order:
// top row q/w/e, middle a/s/d, bottom z/x/c.
const AreaSymbols = "qweasdzxc"

// Area is one of nine fixed subdivisions of a display, addressed by a
// single symbol.
type Area struct {
	Key    rune     `json:"-" yaml:"-"`
	Symbol string   `json:"symbol" yaml:"symbol"`
	Bounds Bounds   `json:"bounds" yaml:"bounds"`
	Center Position `json:"center" yaml:"center"`
	Label  string   `json:"label" yaml:"label"`
}

// AreaLayout partitions bounds into an exact 3x3 tiling. Edges are computed
// as (i*size)/3, so the last row and column absorb any remainder and the
// nine regions cover the bounds with no gaps or overlaps.
func AreaLayout(bounds Bounds) [9]Area {
	var areas [9]Area
	for row := 0; row < 3; row++ {
		y0 := bounds.Y + row*bounds.Height/3
		y1 := bounds.Y + (row+1)*bounds.Height/3
		for col := 0; col < 3; col++ {
			x0 := bounds.X + col*bounds.Width/3
			x1 := bounds.X + (col+1)*bounds.Width/3
			key := rune(AreaSymbols[row*3+col])
			a := Area{
				Key:    key,
				Symbol: string(key),
				Bounds: Bounds{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0},
				Label:  string(key - 'a' + 'A'),
			}
			a.Center = a.Bounds.Center()
			areas[row*3+col] = a
		}
	}
	return areas
}

// AreaByKey returns the area bound to the given symbol.
func AreaByKey(areas [9]Area, key rune) (Area, bool) {
	for _, a := range areas {
		if a.Key == key {
			return a, true
		}
	}
	return Area{}, false
}

// CombineAreas resolves a two-symbol area selection: the same symbol twice
// reselects that region's own center; two distinct symbols target the
// midpoint between the two region centers. Combination areas are computed
// on demand and never persisted.
func CombineAreas(first, second Area) Position {
	if first.Key == second.Key {
		return first.Center
	}
	return Midpoint(first.Center, second.Center)
}

// ValidAreaSymbol reports whether r addresses one of the nine regions.
func ValidAreaSymbol(r rune) bool {
	return indexOf(AreaSymbols, r) >= 0
}
