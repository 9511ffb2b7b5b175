//go:build ebiten

package app

import (
	"sync"

	"conway-ca/internal/config"
	"conway-ca/internal/core"
	"conway-ca/internal/render"
	"conway-ca/internal/sim"
	"conway-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Game adapts the simulation controller to the ebiten.Game interface.
type Game struct {
	ctl     *sim.Controller
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	pointer *ui.Pointer
	log     *zap.Logger

	surfaceW, surfaceH int
	panelW             int

	mu    sync.Mutex
	frame *core.Grid
	dirty bool
}

// New builds the controller and wires its render callback to the painter.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	g := &Game{
		log:      log,
		surfaceW: cfg.Window.Width,
		surfaceH: cfg.Window.Height,
		panelW:   cfg.Window.PanelWidth,
	}
	ctl, err := sim.New(cfg, log, g.onGeneration)
	if err != nil {
		return nil, err
	}
	g.ctl = ctl

	cellSize := cfg.CellSize()
	size := ctl.Size()
	g.painter = render.NewGridPainter(size.W, size.H, cellSize, render.DefaultPalette())
	g.hud = ui.NewHUD(ctl, g.panelW)
	g.overlay = ui.NewOverlay(cellSize, size.W, size.H)
	g.pointer = ui.NewPointer(cellSize, size.W, size.H)

	if cfg.Sim.Autostart {
		ctl.RequestStart()
	}
	return g, nil
}

// onGeneration stores the latest snapshot; Draw uploads it.
func (g *Game) onGeneration(grid *core.Grid) {
	g.mu.Lock()
	g.frame = grid
	g.dirty = true
	g.mu.Unlock()
}

// Update handles per-frame input and lets the scheduler fire a due tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.ctl.Running() {
			g.ctl.RequestStop()
		} else {
			g.ctl.RequestStart()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctl.RequestStep()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctl.RequestReset()
	}

	g.handlePointer()
	g.overlay.Update()
	g.hud.Update(g.surfaceW)

	g.ctl.Advance()
	return nil
}

func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	var (
		x, y int
		ok   bool
	)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y, ok = g.pointer.Press(mx, my)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		x, y, ok = g.pointer.Move(mx, my)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.pointer.Release()
	}
	if !ok {
		return
	}
	if err := g.ctl.RequestToggle(x, y); err != nil {
		return
	}
	g.onGeneration(g.ctl.Snapshot())
}

// Draw renders the current generation, the overlay and the control panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	if g.dirty {
		g.painter.Upload(g.frame)
		g.dirty = false
	}
	g.mu.Unlock()

	g.painter.Draw(screen)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.surfaceW, g.surfaceH)
}

// Layout returns the logical screen size: the drawing surface plus the panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.surfaceW + g.panelW, g.surfaceH
}
