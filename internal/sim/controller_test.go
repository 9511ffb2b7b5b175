package sim

import (
	"errors"
	"testing"
	"time"

	"conway-ca/internal/config"
	"conway-ca/internal/core"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type frames struct {
	grids []*core.Grid
}

func (f *frames) render(g *core.Grid) { f.grids = append(f.grids, g) }

func newController(t *testing.T, opts ...Option) (*Controller, *core.ManualClock, *frames) {
	t.Helper()
	clock := core.NewManualClock(time.Unix(0, 0))
	f := &frames{}
	opts = append([]Option{WithClock(clock)}, opts...)
	c, err := New(config.Defaults(), zaptest.NewLogger(t), f.render, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, clock, f
}

func TestNewSeedsAndRendersOnce(t *testing.T) {
	c, _, f := newController(t)
	if len(f.grids) != 1 {
		t.Fatalf("startup frames = %d, want 1", len(f.grids))
	}
	if c.Population() != 53 {
		t.Fatalf("population = %d, want glider + pulsar = 53", c.Population())
	}
	if c.Size() != (core.Size{W: 50, H: 50}) {
		t.Fatalf("size = %+v", c.Size())
	}
	if c.Speed() != 200 || c.Running() {
		t.Fatalf("speed=%d running=%v, want 200 and stopped", c.Speed(), c.Running())
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Grid.Cols = 0
	if _, err := New(cfg, nil, nil); !errors.Is(err, core.ErrInvalidDimension) {
		t.Fatalf("err=%v, want ErrInvalidDimension", err)
	}

	cfg = config.Defaults()
	cfg.Grid.Cols, cfg.Grid.Rows = 10, 10
	if _, err := New(cfg, nil, nil); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("err=%v, want ErrOutOfBounds for pulsar on 10x10", err)
	}
}

func TestStartStopCycle(t *testing.T) {
	c, clock, f := newController(t)
	c.RequestStart()
	if !c.Advance() {
		t.Fatal("first generation not produced on start")
	}
	clock.Add(200 * time.Millisecond)
	if !c.Advance() {
		t.Fatal("second generation not produced after delay")
	}
	c.RequestStop()
	clock.Add(time.Second)
	if c.Advance() {
		t.Fatal("generation produced after stop")
	}
	if c.Generation() != 2 || len(f.grids) != 3 {
		t.Fatalf("generation=%d frames=%d, want 2 and 3", c.Generation(), len(f.grids))
	}
}

func TestToggleIntent(t *testing.T) {
	c, _, _ := newController(t)
	if err := c.RequestToggle(40, 40); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if c.Snapshot().At(40, 40) != core.Alive {
		t.Fatal("toggle did not land")
	}
	before := c.Snapshot()
	if err := c.RequestToggle(50, 0); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("err=%v, want ErrOutOfBounds", err)
	}
	if err := c.RequestToggle(0, -1); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("err=%v, want ErrOutOfBounds", err)
	}
	if !c.Snapshot().Equal(before) {
		t.Fatal("rejected toggle changed the grid")
	}
}

func TestSetSpeedClamps(t *testing.T) {
	c, _, _ := newController(t)
	if got := c.RequestSetSpeed(5); got != 10 {
		t.Fatalf("applied = %d, want 10", got)
	}
	if got := c.RequestSetSpeed(5000); got != 1000 {
		t.Fatalf("applied = %d, want 1000", got)
	}
	if got := c.RequestSetSpeed(350); got != 350 || c.Speed() != 350 {
		t.Fatalf("applied=%d speed=%d, want 350", got, c.Speed())
	}
	if !c.SetIntParameter(KeySpeed, 120) || c.Speed() != 120 {
		t.Fatal("SetIntParameter did not change speed")
	}
	if c.SetIntParameter("unknown", 1) {
		t.Fatal("unknown parameter accepted")
	}
}

func TestStepAndReset(t *testing.T) {
	start := core.Glider()
	c, _, f := newController(t, WithSeeds(start))
	initial := c.Snapshot()
	if !c.RequestStep() || !c.RequestStep() {
		t.Fatal("step while stopped failed")
	}
	if c.Generation() != 2 || c.Snapshot().Equal(initial) {
		t.Fatal("steps did not advance the grid")
	}
	if err := c.RequestReset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if c.Generation() != 0 || !c.Snapshot().Equal(initial) {
		t.Fatal("reset did not restore the seeded grid")
	}
	if len(f.grids) != 4 {
		t.Fatalf("frames = %d, want 4", len(f.grids))
	}
}

func TestParametersReportState(t *testing.T) {
	c, _, _ := newController(t)
	c.RequestStart()
	c.Advance()
	snap := c.Parameters()
	for key, want := range map[string]string{
		KeySpeed:      "200",
		KeyRunning:    "true",
		KeyGeneration: "1",
	} {
		p, ok := snap.Lookup(key)
		if !ok {
			t.Fatalf("parameter %q missing", key)
		}
		if p.Value != want {
			t.Fatalf("%s = %q, want %q", key, p.Value, want)
		}
	}
	ctrls := c.ParameterControls()
	if len(ctrls) != 1 || ctrls[0].Key != KeySpeed || ctrls[0].Step != 10 {
		t.Fatalf("controls = %+v", ctrls)
	}
}

func TestAdjustSpeedBySteps(t *testing.T) {
	c, _, _ := newController(t)
	if got := c.RequestAdjustSpeed(-3); got != 170 {
		t.Fatalf("applied = %d, want 170", got)
	}
	if got := c.RequestAdjustSpeed(200); got != 1000 {
		t.Fatalf("applied = %d, want clamp at 1000", got)
	}
}

func TestFailedResetIsLoggedAndKeepsGrid(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	c, err := New(config.Defaults(), zap.New(obs), nil, WithClock(core.NewManualClock(time.Unix(0, 0))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	edge, err := core.NewSeedPattern("edge", 49, 49, [][]uint8{{1, 1}})
	if err != nil {
		t.Fatalf("NewSeedPattern: %v", err)
	}
	c.RequestStep()
	before := c.Snapshot()
	c.seeds = append(c.seeds, edge)

	if err := c.RequestReset(); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("err=%v, want ErrOutOfBounds", err)
	}
	if logs.FilterMessage("reset failed").Len() != 1 {
		t.Fatalf("reset failure not logged: %v", logs.All())
	}
	if !c.Snapshot().Equal(before) || c.Generation() != 1 {
		t.Fatal("failed reset changed the simulation")
	}
}

func TestToggleRacesStep(t *testing.T) {
	c, _, _ := newController(t)
	const n = 200

	done := make(chan error, 1)
	go func() {
		for i := 0; i < n; i++ {
			if err := c.RequestToggle(i%50, 25); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()
	for i := 0; i < n; i++ {
		if !c.RequestStep() {
			t.Fatalf("step %d refused", i)
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if c.Generation() != n {
		t.Fatalf("generation = %d, want %d", c.Generation(), n)
	}

	// Once both sides are quiet, the next toggle lands on the current grid.
	before := c.Snapshot()
	if err := c.RequestToggle(0, 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	after := c.Snapshot()
	if after.At(0, 0) == before.At(0, 0) || after.Population()-before.Population() == 0 {
		t.Fatal("toggle after the race did not flip the current grid")
	}
}
