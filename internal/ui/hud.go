//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"conway-ca/internal/core"
	"conway-ca/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Controls is what the HUD needs from the simulation.
type Controls interface {
	core.ParameterControlsProvider
	core.IntParameterSetter
	Parameters() core.ParameterSnapshot
	Running() bool
	RequestStart()
	RequestStop()
	RequestStep() bool
	RequestReset() error
}

// HUD renders the control panel to the right of the grid: playback buttons,
// status lines and +/- speed controls.
type HUD struct {
	ctl        Controls
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	buttons      []hudButton
	controls     []hudControlState
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

type hudButton struct {
	label   string
	rect    image.Rectangle
	enabled func(running bool) bool
	action  func()
}

// NewHUD constructs a HUD for the provided controls and panel width.
func NewHUD(ctl Controls, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{ctl: ctl, width: width, title: "Life Controls"}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	// The controller logs failed resets.
	h.buttons = []hudButton{
		{label: "Start", enabled: func(r bool) bool { return !r }, action: ctl.RequestStart},
		{label: "Stop", enabled: func(r bool) bool { return r }, action: ctl.RequestStop},
		{label: "Step", enabled: func(r bool) bool { return !r }, action: func() { ctl.RequestStep() }},
		{label: "Reset", enabled: func(bool) bool { return true }, action: func() { ctl.RequestReset() }},
	}
	controls := ctl.ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, c := range controls {
		h.controls[i] = hudControlState{control: c, value: "--"}
	}
	h.layout()
	return h
}

// Update refreshes the cached parameter snapshot and handles clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.ctl.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawStatus()
	h.drawButtons()
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.intValue = parsed
		state.value = strconv.Itoa(parsed)
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	running := h.ctl.Running()
	for _, b := range h.buttons {
		if pointInRect(px, my, b.rect) && b.enabled(running) {
			b.action()
			return
		}
	}
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if !h.canAdjust(state, direction) {
		return
	}
	target := state.control.Clamp(state.intValue + direction*stepOf(state.control))
	if h.ctl.SetIntParameter(state.control.Key, target) {
		state.intValue = target
		state.value = strconv.Itoa(target)
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if state == nil || direction == 0 || !state.hasValue {
		return false
	}
	target := state.control.Clamp(state.intValue + direction*stepOf(state.control))
	return target != state.intValue
}

func stepOf(c core.ParameterControl) int {
	if c.Step <= 0 {
		return 1
	}
	return c.Step
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	label := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	value := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	status := "Stopped"
	if h.ctl.Running() {
		status = "Running"
	}
	lines := [][2]string{
		{"Status", status},
		{"Generation", h.paramValue(sim.KeyGeneration)},
		{"Population", h.paramValue(sim.KeyPopulation)},
	}
	for i, l := range lines {
		y := statusTop + i*statusLine
		text.Draw(h.panel, l[0], face, panelPadding, y, label)
		bounds := text.BoundString(face, l[1])
		text.Draw(h.panel, l[1], face, h.width-panelPadding-bounds.Dx(), y, value)
	}
}

func (h *HUD) paramValue(key string) string {
	if p, ok := h.snapshot.Lookup(key); ok {
		return p.Value
	}
	return "--"
}

func (h *HUD) drawButtons() {
	running := h.ctl.Running()
	for _, b := range h.buttons {
		h.drawButton(b.rect, b.label, b.enabled(running))
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.canAdjust(state, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	inner := h.width - 2*panelPadding
	bw := (inner - buttonGap) / 2
	for i := range h.buttons {
		col, row := i%2, i/2
		x := panelPadding + col*(bw+buttonGap)
		y := buttonsTop + row*(buttonHeight+buttonGap)
		h.buttons[i].rect = image.Rect(x, y, x+bw, y+buttonHeight)
	}
	rows := (len(h.buttons) + 1) / 2
	controlsTop := buttonsTop + rows*(buttonHeight+buttonGap) + buttonGap
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonHeight   = 26
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	statusLine     = 18
	statusTop      = panelPadding + headerBaseline + 26
	buttonsTop     = statusTop + 3*statusLine
)
