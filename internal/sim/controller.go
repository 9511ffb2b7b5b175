// Package sim owns the running simulation: the current generation, the
// scheduler and the speed bounds. Front ends talk to it only through the
// Request* intent methods and read it through snapshots.
package sim

import (
	"fmt"
	"strconv"
	"time"

	"conway-ca/internal/config"
	"conway-ca/internal/core"
	"conway-ca/internal/sched"
	"conway-ca/internal/sims/life"

	"go.uber.org/zap"
)

// Parameter keys reported through Parameters and accepted by SetIntParameter.
const (
	KeySpeed      = "speed_ms"
	KeyGeneration = "generation"
	KeyPopulation = "population"
	KeyRunning    = "running"
)

// Controller is the single owner of simulation state.
type Controller struct {
	store *core.Store
	sched *sched.Scheduler
	seeds []core.SeedPattern
	log   *zap.Logger

	speedCtl core.ParameterControl
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	clock core.Clock
	seeds []core.SeedPattern
}

// WithClock replaces the wall clock used by the scheduler.
func WithClock(c core.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithSeeds replaces the startup patterns.
func WithSeeds(seeds ...core.SeedPattern) Option {
	return func(o *options) { o.seeds = seeds }
}

// New creates the grid, stamps the seed patterns and renders the initial
// generation through onGeneration.
func New(cfg *config.Config, log *zap.Logger, onGeneration sched.RenderFunc, opts ...Option) (*Controller, error) {
	if log == nil {
		log = zap.NewNop()
	}
	o := options{clock: core.SystemClock{}, seeds: core.DefaultSeeds()}
	for _, opt := range opts {
		opt(&o)
	}

	grid, err := core.NewGrid(cfg.Grid.Cols, cfg.Grid.Rows)
	if err != nil {
		return nil, fmt.Errorf("create grid: %w", err)
	}
	for _, p := range o.seeds {
		if err := core.Seed(grid, p); err != nil {
			return nil, fmt.Errorf("seed %s: %w", p.Name, err)
		}
	}

	c := &Controller{
		store: core.NewStore(grid),
		seeds: o.seeds,
		log:   log,
		speedCtl: core.ParameterControl{
			Key:    KeySpeed,
			Label:  "Speed (ms)",
			Type:   core.ParamTypeInt,
			Step:   cfg.Sim.SpeedStepMs,
			Min:    cfg.Sim.MinSpeedMs,
			Max:    cfg.Sim.MaxSpeedMs,
			HasMin: true,
			HasMax: true,
		},
	}
	speed := c.speedCtl.Clamp(cfg.Sim.SpeedMs)
	c.sched = sched.New(c.store, life.Step, onGeneration,
		sched.WithClock(o.clock),
		sched.WithSpeed(core.Delay(speed)),
		sched.WithLogger(log),
	)
	log.Info("simulation ready",
		zap.Int("cols", grid.W),
		zap.Int("rows", grid.H),
		zap.Int("population", grid.Population()),
		zap.Int("speed_ms", speed),
	)
	return c, nil
}

// RequestStart begins stepping. Starting a running simulation is a no-op.
func (c *Controller) RequestStart() { c.sched.Start() }

// RequestStop halts stepping; a tick already scheduled will not run.
func (c *Controller) RequestStop() { c.sched.Stop() }

// RequestToggle flips the cell at (x, y) in the current generation.
func (c *Controller) RequestToggle(x, y int) error {
	if err := c.store.Toggle(x, y); err != nil {
		c.log.Warn("toggle rejected", zap.Int("x", x), zap.Int("y", y), zap.Error(err))
		return err
	}
	c.log.Debug("cell toggled", zap.Int("x", x), zap.Int("y", y))
	return nil
}

// RequestSetSpeed clamps ms to the configured bounds, applies it to steps
// scheduled from now on and returns the applied value.
func (c *Controller) RequestSetSpeed(ms int) int {
	applied := c.speedCtl.Clamp(ms)
	if applied != ms {
		c.log.Debug("speed clamped", zap.Int("requested", ms), zap.Int("applied", applied))
	}
	c.sched.SetSpeed(core.Delay(applied))
	return applied
}

// RequestAdjustSpeed moves the delay by steps speed increments (negative is
// faster) and returns the applied value.
func (c *Controller) RequestAdjustSpeed(steps int) int {
	return c.RequestSetSpeed(c.Speed() + steps*c.speedCtl.Step)
}

// RequestStep advances one generation while stopped.
func (c *Controller) RequestStep() bool { return c.sched.StepOnce() }

// RequestReset stops the simulation, clears the grid and stamps the seeds.
// A failed reset is logged and leaves the current generation in place.
func (c *Controller) RequestReset() error {
	c.sched.Stop()
	if err := c.store.Reset(c.seeds...); err != nil {
		c.log.Warn("reset failed", zap.Error(err))
		return fmt.Errorf("reset: %w", err)
	}
	c.sched.Reset()
	c.log.Info("simulation reset", zap.Int("population", c.store.Population()))
	return nil
}

// Advance lets the scheduler fire a due tick. Host loops call it every frame.
func (c *Controller) Advance() bool { return c.sched.Advance() }

// NextDue reports when the pending tick becomes due.
func (c *Controller) NextDue() (time.Time, bool) { return c.sched.NextDue() }

// Snapshot returns a copy of the current generation.
func (c *Controller) Snapshot() *core.Grid { return c.store.Current() }

// Size returns the grid dimensions.
func (c *Controller) Size() core.Size { return c.store.Size() }

// Running reports whether the simulation is stepping.
func (c *Controller) Running() bool { return c.sched.Running() }

// Speed returns the delay between generations in milliseconds.
func (c *Controller) Speed() int { return int(c.sched.Speed() / time.Millisecond) }

// Generation returns the number of steps since startup or the last reset.
func (c *Controller) Generation() uint64 { return c.sched.Generation() }

// Population counts live cells in the current generation.
func (c *Controller) Population() int { return c.store.Population() }

// Parameters reports the values shown on the control panel.
func (c *Controller) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Playback",
			Params: []core.Parameter{
				intParam(KeySpeed, "Speed (ms)", c.Speed()),
				{Key: KeyRunning, Label: "Running", Type: core.ParamTypeBool, Value: strconv.FormatBool(c.Running())},
			},
		},
		{
			Name: "World",
			Params: []core.Parameter{
				{Key: KeyGeneration, Label: "Generation", Type: core.ParamTypeInt, Value: strconv.FormatUint(c.Generation(), 10)},
				intParam(KeyPopulation, "Population", c.Population()),
			},
		},
	}}
}

// ParameterControls lists the adjustable parameters.
func (c *Controller) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{c.speedCtl}
}

// SetIntParameter applies a HUD adjustment.
func (c *Controller) SetIntParameter(key string, value int) bool {
	if key != KeySpeed {
		return false
	}
	c.RequestSetSpeed(value)
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}
