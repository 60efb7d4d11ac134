package geometry

import (
	"errors"
	"fmt"
)

// Symbol alphabets for grid cell addressing. Each cell gets a two-symbol
// combination: home row first, top row second, giving 9x10 = 90 cells max.
const (
	GridFirstSymbols  = "asdfghjkl"
	GridSecondSymbols = "qwertyuiop"
)

// MaxGridCells is the addressing capacity of the two-symbol alphabet.
const MaxGridCells = len(GridFirstSymbols) * len(GridSecondSymbols)

var (
	// ErrGridDimensions is returned for non-positive rows or columns.
	ErrGridDimensions = errors.New("grid rows and columns must be at least 1")
	// ErrGridCapacity is returned when rows*columns exceeds the symbol alphabet.
	ErrGridCapacity = fmt.Errorf("grid exceeds %d addressable cells", MaxGridCells)
)

// GridConfig describes a grid subdivision. Padding, Border, and Opacity are
// carried for overlay renderers; they do not affect cell geometry.
type GridConfig struct {
	Rows    int     `yaml:"rows"`
	Columns int     `yaml:"columns"`
	SpanAll bool    `yaml:"span_all"`
	Padding int     `yaml:"padding"`
	Border  int     `yaml:"border"`
	Opacity float64 `yaml:"opacity"`
}

// Validate checks the dimensions against the addressing capacity.
func (c GridConfig) Validate() error {
	if c.Rows < 1 || c.Columns < 1 {
		return ErrGridDimensions
	}
	if c.Rows*c.Columns > MaxGridCells {
		return fmt.Errorf("%dx%d: %w", c.Rows, c.Columns, ErrGridCapacity)
	}
	return nil
}

// GridCell is one rectangular subdivision, addressed by a two-symbol
// key combination.
type GridCell struct {
	Row    int      `json:"row" yaml:"row"`
	Column int      `json:"column" yaml:"column"`
	Bounds Bounds   `json:"bounds" yaml:"bounds"`
	Combo  string   `json:"combo" yaml:"combo"`
	Center Position `json:"center" yaml:"center"`
}

// Grid divides a rectangle into rows*columns cells. Cells are derived state:
// the grid is rebuilt as a whole whenever config or bounds change.
type Grid struct {
	cfg     GridConfig
	bounds  Bounds
	cells   []GridCell
	byCombo map[string]int
}

// NewGrid builds a grid over the governed bounds. Cell edges are computed as
// (i*size)/n so the cells tile the bounds exactly: no gaps, no overlap, and
// the last row/column absorbs any integer-division remainder.
func NewGrid(cfg GridConfig, bounds Bounds) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{
		cfg:     cfg,
		bounds:  bounds,
		cells:   make([]GridCell, 0, cfg.Rows*cfg.Columns),
		byCombo: make(map[string]int, cfg.Rows*cfg.Columns),
	}
	for row := 0; row < cfg.Rows; row++ {
		y0 := bounds.Y + row*bounds.Height/cfg.Rows
		y1 := bounds.Y + (row+1)*bounds.Height/cfg.Rows
		for col := 0; col < cfg.Columns; col++ {
			x0 := bounds.X + col*bounds.Width/cfg.Columns
			x1 := bounds.X + (col+1)*bounds.Width/cfg.Columns
			idx := row*cfg.Columns + col
			cell := GridCell{
				Row:    row,
				Column: col,
				Bounds: Bounds{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0},
				Combo:  comboForIndex(idx),
			}
			cell.Center = cell.Bounds.Center()
			g.byCombo[cell.Combo] = len(g.cells)
			g.cells = append(g.cells, cell)
		}
	}
	return g, nil
}

// comboForIndex assigns combinations in row-major cell order: the first
// symbol advances every len(GridSecondSymbols) cells, so combinations are
// unique for up to MaxGridCells cells.
func comboForIndex(idx int) string {
	first := GridFirstSymbols[idx/len(GridSecondSymbols)]
	second := GridSecondSymbols[idx%len(GridSecondSymbols)]
	return string([]byte{first, second})
}

// Config returns the grid's configuration.
func (g *Grid) Config() GridConfig { return g.cfg }

// Bounds returns the governed rectangle.
func (g *Grid) Bounds() Bounds { return g.bounds }

// Cells returns all cells in row-major order. The slice is shared; callers
// must not modify it.
func (g *Grid) Cells() []GridCell { return g.cells }

// CellByCombo looks up a cell by its two-symbol combination.
func (g *Grid) CellByCombo(combo string) (GridCell, bool) {
	i, ok := g.byCombo[combo]
	if !ok {
		return GridCell{}, false
	}
	return g.cells[i], true
}

// CellAt returns the cell containing p, if any.
func (g *Grid) CellAt(p Position) (GridCell, bool) {
	for _, c := range g.cells {
		if c.Bounds.Contains(p) {
			return c, true
		}
	}
	return GridCell{}, false
}

// ValidFirstSymbol reports whether r can start a combination.
func ValidFirstSymbol(r rune) bool {
	return indexOf(GridFirstSymbols, r) >= 0
}

// ValidSecondSymbol reports whether r can complete a combination.
func ValidSecondSymbol(r rune) bool {
	return indexOf(GridSecondSymbols, r) >= 0
}

func indexOf(s string, r rune) int {
	for i, c := range s {
		if c == r {
			return i
		}
	}
	return -1
}
