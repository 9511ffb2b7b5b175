package console

import (
	"context"
	"strings"
	"testing"
	"time"

	"conway-ca/internal/config"
	"conway-ca/internal/render"
	"conway-ca/internal/sim"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zaptest"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	s.SetSize(80, 16)
	// Fini drops the contents, so it runs only after the test has read them.
	t.Cleanup(s.Fini)
	return s
}

// runScreen runs a blinker world on s, feeds it the events posted by inject
// and waits for the run to end on its own.
func runScreen(t *testing.T, s tcell.SimulationScreen, opts Options, inject func()) *Runner {
	t.Helper()
	cfg := config.Defaults()
	cfg.Grid.Cols, cfg.Grid.Rows = 5, 5
	opts.Sim = append(opts.Sim, sim.WithSeeds(blinker(t)))

	r, err := NewScreenRunner(cfg, zaptest.NewLogger(t), s, opts)
	if err != nil {
		t.Fatalf("NewScreenRunner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	inject()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish on its own")
	}
	return r
}

func pressRune(s tcell.SimulationScreen, ch rune) {
	s.PostEventWait(tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModNone))
}

func pressKey(s tcell.SimulationScreen, k tcell.Key) {
	s.PostEventWait(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func mouse(s tcell.SimulationScreen, x, y int, buttons tcell.ButtonMask) {
	s.PostEventWait(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
}

func screenRow(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		if r := cells[y*w+x].Runes; len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func cellAlive(t *testing.T, s tcell.SimulationScreen, x, y int) bool {
	t.Helper()
	cells, w, _ := s.GetContents()
	style := cells[y*w+x*render.ScreenCellWidth].Style
	switch style {
	case render.DefaultScreenStyles().Alive:
		return true
	case render.DefaultScreenStyles().Dead:
		return false
	}
	t.Fatalf("cell (%d,%d) is not drawn as a grid cell", x, y)
	return false
}

func TestScreenRunnerDrawsInitialGeneration(t *testing.T) {
	s := newSimScreen(t)
	runScreen(t, s, Options{}, func() { pressRune(s, 'q') })

	for x := 0; x < 5; x++ {
		if got, want := cellAlive(t, s, x, 2), x >= 1 && x <= 3; got != want {
			t.Fatalf("cell (%d,2) alive=%v, want %v", x, got, want)
		}
	}
	if got := screenRow(s, 5); got != "generation 0  population 3  stopped  200ms" {
		t.Fatalf("status = %q", got)
	}
	if !strings.HasPrefix(screenRow(s, 6), "space start/stop") {
		t.Fatalf("key help missing: %q", screenRow(s, 6))
	}
}

func TestScreenRunnerClickAndDragToggle(t *testing.T) {
	s := newSimScreen(t)
	r := runScreen(t, s, Options{}, func() {
		mouse(s, 1, 0, tcell.Button1) // press on cell (0,0)
		mouse(s, 0, 0, tcell.Button1) // same cell, ignored
		mouse(s, 0, 1, tcell.Button1) // drag into (0,1)
		mouse(s, 0, 1, tcell.ButtonNone)
		mouse(s, 9, 4, tcell.Button1) // new press on (4,4)
		mouse(s, 9, 4, tcell.ButtonNone)
		mouse(s, 40, 0, tcell.Button1) // right of the grid
		mouse(s, 40, 0, tcell.ButtonNone)
		pressRune(s, 'q')
	})

	if got := r.Controller().Population(); got != 6 {
		t.Fatalf("population = %d, want blinker + 3 toggled cells", got)
	}
	for _, c := range [][2]int{{0, 0}, {0, 1}, {4, 4}} {
		if !cellAlive(t, s, c[0], c[1]) {
			t.Fatalf("cell %v not drawn alive", c)
		}
	}
	if got := screenRow(s, 5); got != "generation 0  population 6  stopped  200ms" {
		t.Fatalf("status = %q", got)
	}
}

func TestScreenRunnerKeysDriveSimulation(t *testing.T) {
	s := newSimScreen(t)
	r := runScreen(t, s, Options{MaxGenerations: 1}, func() {
		pressRune(s, '+')
		pressRune(s, '+')
		pressRune(s, ' ')
	})

	if r.Controller().Generation() != 1 || r.Controller().Running() {
		t.Fatalf("generation=%d running=%v, want 1 and stopped", r.Controller().Generation(), r.Controller().Running())
	}
	for y := 0; y < 5; y++ {
		if got, want := cellAlive(t, s, 2, y), y >= 1 && y <= 3; got != want {
			t.Fatalf("cell (2,%d) alive=%v, want vertical blinker", y, got)
		}
	}
	if got := screenRow(s, 5); got != "generation 1  population 3  running  180ms" {
		t.Fatalf("status = %q", got)
	}
}

func TestScreenRunnerStepResetAndHelp(t *testing.T) {
	s := newSimScreen(t)
	r := runScreen(t, s, Options{}, func() {
		pressRune(s, 'n')
		pressRune(s, 'R')
		pressRune(s, '?')
		pressKey(s, tcell.KeyEscape)
	})

	if r.Controller().Generation() != 0 || !cellAlive(t, s, 1, 2) || cellAlive(t, s, 2, 1) {
		t.Fatal("reset did not restore the horizontal blinker")
	}
	if !strings.HasPrefix(screenRow(s, 6), "space start/stop") {
		t.Fatalf("help not shown: %q", screenRow(s, 6))
	}
}

func TestKeyCommandIgnoresUnboundKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone),
	} {
		if cmd, ok := keyCommand(ev); ok {
			t.Fatalf("key %v mapped to %+v", ev.Name(), cmd)
		}
	}
	if cmd, ok := keyCommand(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)); !ok || cmd.Kind != CmdQuit {
		t.Fatalf("ctrl-c = %+v, %v", cmd, ok)
	}
}
