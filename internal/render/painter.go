//go:build ebiten

package render

import (
	"conway-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GridPainter draws a binary grid as cellSize-pixel squares separated by a
// one-pixel stroke.
type GridPainter struct {
	w, h     int
	cellSize int
	palette  Palette
	img      *ebiten.Image
	buf      []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h, cellSize int, palette Palette) *GridPainter {
	if cellSize <= 0 {
		cellSize = 1
	}
	gp := &GridPainter{w: w, h: h, cellSize: cellSize, palette: palette, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Upload copies a generation into the painter's image. Grids of the wrong
// size are ignored.
func (gp *GridPainter) Upload(g *core.Grid) {
	if g == nil || g.W != gp.w || g.H != gp.h {
		return
	}
	fillBinaryRGBA(gp.buf, g.Cells(), gp.palette.Alive, gp.palette.Dead)
	gp.img.WritePixels(gp.buf)
}

// Draw paints the last uploaded generation and the cell borders onto dst.
func (gp *GridPainter) Draw(dst *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(gp.cellSize), float64(gp.cellSize))
	dst.DrawImage(gp.img, op)

	cs := float32(gp.cellSize)
	width := cs * float32(gp.w)
	height := cs * float32(gp.h)
	for x := 0; x <= gp.w; x++ {
		fx := cs * float32(x)
		vector.StrokeLine(dst, fx, 0, fx, height, 1, gp.palette.Stroke, false)
	}
	for y := 0; y <= gp.h; y++ {
		fy := cs * float32(y)
		vector.StrokeLine(dst, 0, fy, width, fy, 1, gp.palette.Stroke, false)
	}
}

// Size returns the pixel dimensions of the painted surface.
func (gp *GridPainter) Size() (int, int) { return gp.w * gp.cellSize, gp.h * gp.cellSize }
