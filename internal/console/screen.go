package console

import (
	"context"
	"unicode"

	"conway-ca/internal/render"
	"conway-ca/internal/ui"

	"github.com/gdamore/tcell/v2"
)

// KeyHelp lists the key and mouse bindings of the interactive screen.
const KeyHelp = `space start/stop   n step   r reset   + faster   - slower   ? help   q quit
click or drag to toggle cells`

// screenInput turns tcell events into commands. Mouse positions are mapped
// to cells through a ui.Pointer, so a held button toggles each newly
// entered cell once.
type screenInput struct {
	screen  tcell.Screen
	pointer *ui.Pointer
}

func newScreenInput(screen tcell.Screen, cols, rows int) *screenInput {
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	return &screenInput{screen: screen, pointer: ui.NewPointer(1, cols, rows)}
}

// run polls until the screen is finalised.
func (in *screenInput) run(ctx context.Context, cmds chan<- Command) {
	defer close(cmds)
	for {
		ev := in.screen.PollEvent()
		if ev == nil {
			return
		}
		cmd, ok := in.translate(ev)
		if !ok {
			continue
		}
		select {
		case cmds <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

func (in *screenInput) translate(ev tcell.Event) (Command, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return keyCommand(ev)
	case *tcell.EventMouse:
		return in.mouseCommand(ev)
	case *tcell.EventResize:
		in.screen.Sync()
	}
	return Command{}, false
}

func keyCommand(ev *tcell.EventKey) (Command, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Kind: CmdQuit}, true
	case tcell.KeyRune:
	default:
		return Command{}, false
	}
	switch unicode.ToLower(ev.Rune()) {
	case ' ':
		return Command{Kind: CmdStartStop}, true
	case 'n':
		return Command{Kind: CmdStep}, true
	case 'r':
		return Command{Kind: CmdReset}, true
	case '+', '=':
		return Command{Kind: CmdFaster}, true
	case '-':
		return Command{Kind: CmdSlower}, true
	case '?', 'h':
		return Command{Kind: CmdHelp}, true
	case 'q':
		return Command{Kind: CmdQuit}, true
	}
	return Command{}, false
}

func (in *screenInput) mouseCommand(ev *tcell.EventMouse) (Command, bool) {
	if ev.Buttons()&tcell.Button1 == 0 {
		in.pointer.Release()
		return Command{}, false
	}
	mx, my := ev.Position()
	col := mx / render.ScreenCellWidth

	var (
		x, y int
		ok   bool
	)
	if in.pointer.Down() {
		x, y, ok = in.pointer.Move(col, my)
	} else {
		x, y, ok = in.pointer.Press(col, my)
	}
	if !ok {
		return Command{}, false
	}
	return Command{Kind: CmdToggle, X: x, Y: y}, true
}
