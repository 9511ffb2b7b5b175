package core

import "fmt"

// Cell states stored in a Grid.
const (
	Dead  uint8 = 0
	Alive uint8 = 1
)

// Grid stores a fixed-size 2D field of binary cells in row-major order.
// Coordinates are (x, y) with x the column and y the row.
type Grid struct {
	W, H int
	data []uint8
}

// NewGrid allocates a grid with every cell Dead.
func NewGrid(cols, rows int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", cols, rows, ErrInvalidDimension)
	}
	return &Grid{W: cols, H: rows, data: make([]uint8, cols*rows)}, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice. Renderers read it; they must not write.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the state at (x, y). Out-of-range coordinates read as Dead.
func (g *Grid) At(x, y int) uint8 {
	if !g.Contains(x, y) {
		return Dead
	}
	return g.data[g.Index(x, y)]
}

// Set writes a state at (x, y). Any non-zero value is stored as Alive.
func (g *Grid) Set(x, y int, v uint8) error {
	if !g.Contains(x, y) {
		return g.outOfBounds(x, y)
	}
	if v != Dead {
		v = Alive
	}
	g.data[g.Index(x, y)] = v
	return nil
}

// Toggle flips the cell at (x, y).
func (g *Grid) Toggle(x, y int) error {
	if !g.Contains(x, y) {
		return g.outOfBounds(x, y)
	}
	i := g.Index(x, y)
	g.data[i] ^= Alive
	return nil
}

// Snapshot returns an independent deep copy.
func (g *Grid) Snapshot() *Grid {
	return &Grid{W: g.W, H: g.H, data: append([]uint8(nil), g.data...)}
}

// Population counts Alive cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.data {
		n += int(c)
	}
	return n
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i := range g.data {
		if g.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Clear fills the grid with Dead cells.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = Dead
	}
}

func (g *Grid) outOfBounds(x, y int) error {
	return fmt.Errorf("cell (%d,%d) outside %dx%d grid: %w", x, y, g.W, g.H, ErrOutOfBounds)
}
