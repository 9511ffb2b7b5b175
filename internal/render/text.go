package render

import (
	"bufio"
	"fmt"
	"io"

	"conway-ca/internal/core"
)

// TextGlyphs are the runes used for live and dead cells in text frames.
type TextGlyphs struct {
	Alive rune
	Dead  rune
}

// DefaultGlyphs keeps frames plain ASCII.
func DefaultGlyphs() TextGlyphs { return TextGlyphs{Alive: '#', Dead: '.'} }

// Frame describes the status line shown with a generation.
type Frame struct {
	Generation uint64
	Population int
	Running    bool
	SpeedMs    int
}

// Status formats the frame's status line.
func (f Frame) Status() string {
	state := "stopped"
	if f.Running {
		state = "running"
	}
	return fmt.Sprintf("generation %d  population %d  %s  %dms", f.Generation, f.Population, state, f.SpeedMs)
}

// TextRenderer appends each generation to a stream as rows of glyphs, one
// line per grid row, preceded by a status line. It suits pipes and logs; the
// interactive terminal uses ScreenRenderer.
type TextRenderer struct {
	out    io.Writer
	glyphs TextGlyphs
}

// NewTextRenderer writes frames to out.
func NewTextRenderer(out io.Writer, glyphs TextGlyphs) *TextRenderer {
	return &TextRenderer{out: out, glyphs: glyphs}
}

// Render writes one frame.
func (r *TextRenderer) Render(f Frame, g *core.Grid) error {
	w := bufio.NewWriter(r.out)
	fmt.Fprintln(w, f.Status())
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) == core.Alive {
				w.WriteRune(r.glyphs.Alive)
			} else {
				w.WriteRune(r.glyphs.Dead)
			}
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// Message writes free text such as command help.
func (r *TextRenderer) Message(text string) error {
	_, err := fmt.Fprintln(r.out, text)
	return err
}
