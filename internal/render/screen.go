package render

import (
	"strings"

	"conway-ca/internal/core"

	"github.com/gdamore/tcell/v2"
)

// ScreenCellWidth is the number of terminal columns per grid cell. Two
// columns keep cells roughly square in common terminal fonts.
const ScreenCellWidth = 2

// ScreenStyles are the tcell styles used for cells and text.
type ScreenStyles struct {
	Alive tcell.Style
	Dead  tcell.Style
	Text  tcell.Style
}

// DefaultScreenStyles paints live cells white on a black field.
func DefaultScreenStyles() ScreenStyles {
	return ScreenStyles{
		Alive: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
		Dead:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		Text:  tcell.StyleDefault,
	}
}

// ScreenRenderer draws generations onto a tcell screen: the grid at the top
// left, the status line directly below it and messages under that.
type ScreenRenderer struct {
	screen tcell.Screen
	styles ScreenStyles
	rows   int
}

// NewScreenRenderer draws onto an initialised screen.
func NewScreenRenderer(screen tcell.Screen, styles ScreenStyles) *ScreenRenderer {
	return &ScreenRenderer{screen: screen, styles: styles}
}

// Render draws one generation and its status line, then shows the screen.
func (r *ScreenRenderer) Render(f Frame, g *core.Grid) error {
	r.rows = g.H
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			style := r.styles.Dead
			if g.At(x, y) == core.Alive {
				style = r.styles.Alive
			}
			for c := 0; c < ScreenCellWidth; c++ {
				r.screen.SetContent(x*ScreenCellWidth+c, y, ' ', nil, style)
			}
		}
	}
	r.drawLine(g.H, f.Status())
	r.screen.Show()
	return nil
}

// Message replaces the text below the status line.
func (r *ScreenRenderer) Message(text string) error {
	_, height := r.screen.Size()
	for y := r.rows + 1; y < height; y++ {
		r.drawLine(y, "")
	}
	for i, line := range strings.Split(text, "\n") {
		r.drawLine(r.rows+1+i, line)
	}
	r.screen.Show()
	return nil
}

func (r *ScreenRenderer) drawLine(y int, text string) {
	width, _ := r.screen.Size()
	x := 0
	for _, ch := range text {
		if x >= width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, r.styles.Text)
		x++
	}
	for ; x < width; x++ {
		r.screen.SetContent(x, y, ' ', nil, r.styles.Text)
	}
}
