//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay draws optional visuals on top of the grid: an outline around the
// cell under the cursor, toggled with H.
type Overlay struct {
	cellSize   int
	cols, rows int
	showHover  bool

	hoverX, hoverY int
	hasHover       bool
}

// NewOverlay constructs an overlay for a cols x rows grid.
func NewOverlay(cellSize, cols, rows int) *Overlay {
	return &Overlay{cellSize: cellSize, cols: cols, rows: rows, showHover: true}
}

// Update tracks the hovered cell and handles the overlay key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHover = !o.showHover
	}
	mx, my := ebiten.CursorPosition()
	o.hoverX, o.hoverY, o.hasHover = CellAt(mx, my, o.cellSize, o.cols, o.rows)
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showHover || !o.hasHover {
		return
	}
	cs := float32(o.cellSize)
	x := float32(o.hoverX) * cs
	y := float32(o.hoverY) * cs
	vector.StrokeRect(screen, x, y, cs, cs, 2, color.RGBA{R: 64, G: 164, B: 223, A: 255}, false)
}
