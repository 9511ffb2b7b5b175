package ui

// CellAt translates surface pixel coordinates into grid cell indices using
// integer division by cellSize. Points outside the cols x rows surface are
// rejected so they never reach the simulation.
func CellAt(px, py, cellSize, cols, rows int) (x, y int, ok bool) {
	if cellSize <= 0 || px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y = px/cellSize, py/cellSize
	if x >= cols || y >= rows {
		return 0, 0, false
	}
	return x, y, true
}

// Pointer turns button and cursor events into toggle requests. A press
// toggles the cell under the cursor; dragging with the button held toggles
// each newly entered cell once.
type Pointer struct {
	cellSize   int
	cols, rows int

	down    bool
	hasLast bool
	lastX   int
	lastY   int
}

// NewPointer tracks pointer input over a cols x rows grid of cellSize squares.
func NewPointer(cellSize, cols, rows int) *Pointer {
	return &Pointer{cellSize: cellSize, cols: cols, rows: rows}
}

// Press starts a stroke at pixel (px, py).
func (p *Pointer) Press(px, py int) (x, y int, ok bool) {
	p.down = true
	p.hasLast = false
	return p.enter(px, py)
}

// Move reports a cell to toggle when the held pointer enters a new cell.
func (p *Pointer) Move(px, py int) (x, y int, ok bool) {
	if !p.down {
		return 0, 0, false
	}
	return p.enter(px, py)
}

// Release ends the stroke.
func (p *Pointer) Release() {
	p.down = false
	p.hasLast = false
}

// Down reports whether a stroke is in progress.
func (p *Pointer) Down() bool { return p.down }

func (p *Pointer) enter(px, py int) (int, int, bool) {
	x, y, ok := CellAt(px, py, p.cellSize, p.cols, p.rows)
	if !ok {
		p.hasLast = false
		return 0, 0, false
	}
	if p.hasLast && x == p.lastX && y == p.lastY {
		return 0, 0, false
	}
	p.hasLast = true
	p.lastX, p.lastY = x, y
	return x, y, true
}
