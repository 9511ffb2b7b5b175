package core

import "fmt"

// SeedPattern is an immutable rectangle of cells stamped onto a Grid at a
// fixed anchor. Rows of the source table run along x, columns along y.
type SeedPattern struct {
	Name             string
	OriginX, OriginY int
	w, h             int
	cells            []uint8
}

// NewSeedPattern builds a pattern from a table indexed [x][y]. All columns
// must have the same length.
func NewSeedPattern(name string, originX, originY int, table [][]uint8) (SeedPattern, error) {
	w := len(table)
	if w == 0 || len(table[0]) == 0 {
		return SeedPattern{}, fmt.Errorf("pattern %q is empty: %w", name, ErrInvalidDimension)
	}
	h := len(table[0])
	cells := make([]uint8, 0, w*h)
	for x, col := range table {
		if len(col) != h {
			return SeedPattern{}, fmt.Errorf("pattern %q column %d has %d cells, want %d: %w", name, x, len(col), h, ErrInvalidDimension)
		}
		for _, v := range col {
			if v != Dead {
				v = Alive
			}
			cells = append(cells, v)
		}
	}
	return SeedPattern{Name: name, OriginX: originX, OriginY: originY, w: w, h: h, cells: cells}, nil
}

// Size returns the pattern footprint.
func (p SeedPattern) Size() Size { return Size{W: p.w, H: p.h} }

// At returns the pattern cell at local coordinates (x, y).
func (p SeedPattern) At(x, y int) uint8 {
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		return Dead
	}
	return p.cells[x*p.h+y]
}

// Population counts the pattern's Alive cells.
func (p SeedPattern) Population() int {
	n := 0
	for _, c := range p.cells {
		n += int(c)
	}
	return n
}

// Seed stamps p onto g, overwriting every cell in the footprint (zeros
// included). A footprint that does not fit leaves g untouched.
func Seed(g *Grid, p SeedPattern) error {
	if p.OriginX < 0 || p.OriginY < 0 || p.OriginX+p.w > g.W || p.OriginY+p.h > g.H {
		return fmt.Errorf("seed %q at (%d,%d) size %dx%d on %dx%d grid: %w",
			p.Name, p.OriginX, p.OriginY, p.w, p.h, g.W, g.H, ErrOutOfBounds)
	}
	for x := 0; x < p.w; x++ {
		for y := 0; y < p.h; y++ {
			g.data[g.Index(p.OriginX+x, p.OriginY+y)] = p.At(x, y)
		}
	}
	return nil
}

// Glider returns the five-cell glider anchored at the top-left corner.
func Glider() SeedPattern {
	return mustPattern("glider", 0, 0, [][]uint8{
		{0, 0, 1},
		{1, 0, 1},
		{0, 1, 1},
	})
}

// Pulsar returns the 12x15 pulsar-like shape anchored at (12, 12).
func Pulsar() SeedPattern {
	return mustPattern("pulsar", 12, 12, [][]uint8{
		{0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
		{0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0, 0},
		{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
		{0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0, 0},
	})
}

// DefaultSeeds lists the patterns applied at startup, in stamping order.
func DefaultSeeds() []SeedPattern {
	return []SeedPattern{Glider(), Pulsar()}
}

func mustPattern(name string, ox, oy int, table [][]uint8) SeedPattern {
	p, err := NewSeedPattern(name, ox, oy, table)
	if err != nil {
		panic(err)
	}
	return p
}
