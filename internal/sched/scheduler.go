// Package sched drives repeated generation steps at a configurable delay.
//
// The scheduler is an explicit two-state machine:
//
//	Stopped --Start--> Running
//	Running --Stop---> Stopped
//	Running --tick---> Running   (step, render, schedule the next tick)
//
// Only one tick is pending at a time. Each pending tick carries the epoch it
// was scheduled in; Stop bumps the epoch, so a tick that fires after a Stop
// (or after a Stop/Start pair) finds a mismatched epoch and does nothing.
// The delay is read when a tick is scheduled, never while it is waiting.
//
// The scheduler does no work on its own goroutine. A host loop calls Advance
// (the ebiten Update, or the terminal front end's timer loop), which keeps all
// steps on a single goroutine.
package sched

import (
	"fmt"
	"sync"
	"time"

	"conway-ca/internal/core"

	"go.uber.org/zap"
)

// State is the scheduler's lifecycle state.
type State int

const (
	// Stopped has no pending tick; StepOnce is allowed.
	Stopped State = iota
	// Running keeps exactly one tick pending.
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StepFunc computes the next generation from the current one.
type StepFunc func(*core.Grid) *core.Grid

// RenderFunc receives a snapshot after every generation.
type RenderFunc func(*core.Grid)

// Tick identifies one scheduled step.
type Tick struct {
	Epoch uint64
	Due   time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock.
func WithClock(c core.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithSpeed sets the initial inter-generation delay.
func WithSpeed(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.speed = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// DefaultSpeed is the delay between generations when none is configured.
const DefaultSpeed = 200 * time.Millisecond

// Scheduler advances a Store one generation per tick while running.
type Scheduler struct {
	mu sync.Mutex

	store  *core.Store
	step   StepFunc
	render RenderFunc
	clock  core.Clock
	log    *zap.Logger

	state      State
	speed      time.Duration
	epoch      uint64
	pending    *Tick
	generation uint64
}

// New builds a stopped scheduler and renders the initial grid once so the
// seeded state is visible before the first step.
func New(store *core.Store, step StepFunc, render RenderFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:  store,
		step:   step,
		render: render,
		clock:  core.SystemClock{},
		log:    zap.NewNop(),
		speed:  DefaultSpeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.emit(store.Current())
	return s
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Running reports whether the scheduler is in the Running state.
func (s *Scheduler) Running() bool { return s.State() == Running }

// Speed returns the configured delay between generations.
func (s *Scheduler) Speed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// Generation returns the number of steps taken so far.
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Start moves Stopped to Running and schedules a tick due immediately.
// It reports whether a transition happened.
func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Running {
		return false
	}
	s.state = Running
	s.scheduleLocked(0)
	s.log.Info("simulation started", zap.Duration("speed", s.speed), zap.Uint64("generation", s.generation))
	return true
}

// Stop moves Running to Stopped and invalidates the pending tick.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Stopped {
		return false
	}
	s.state = Stopped
	s.epoch++
	s.pending = nil
	s.log.Info("simulation stopped", zap.Uint64("generation", s.generation))
	return true
}

// SetSpeed changes the delay used for ticks scheduled from now on. A tick
// that is already pending keeps its due time.
func (s *Scheduler) SetSpeed(d time.Duration) {
	if d <= 0 {
		d = time.Millisecond
	}
	s.mu.Lock()
	s.speed = d
	s.mu.Unlock()
	s.log.Debug("speed changed", zap.Duration("speed", d))
}

// Pending returns the tick waiting to fire, if any.
func (s *Scheduler) Pending() (Tick, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Tick{}, false
	}
	return *s.pending, true
}

// NextDue returns when the pending tick becomes due.
func (s *Scheduler) NextDue() (time.Time, bool) {
	t, ok := s.Pending()
	return t.Due, ok
}

// Advance fires the pending tick if it is due. It reports whether a
// generation was produced.
func (s *Scheduler) Advance() bool {
	s.mu.Lock()
	if s.pending == nil || s.clock.Now().Before(s.pending.Due) {
		s.mu.Unlock()
		return false
	}
	t := *s.pending
	s.mu.Unlock()
	return s.Fire(t)
}

// Fire runs the step for t. A tick from an older epoch, one that already
// fired, or one that fires while stopped is a no-op.
func (s *Scheduler) Fire(t Tick) bool {
	s.mu.Lock()
	if s.state != Running || t.Epoch != s.epoch || s.pending == nil || *s.pending != t {
		s.mu.Unlock()
		s.log.Debug("dropped stale tick", zap.Uint64("epoch", t.Epoch))
		return false
	}
	s.pending = nil
	s.mu.Unlock()

	snap, ok := s.advanceStore()

	s.mu.Lock()
	if s.state == Running && t.Epoch == s.epoch {
		s.scheduleLocked(s.speed)
	}
	s.mu.Unlock()

	if ok {
		s.emit(snap)
	}
	return ok
}

// StepOnce advances exactly one generation while stopped.
func (s *Scheduler) StepOnce() bool {
	if s.Running() {
		return false
	}
	snap, ok := s.advanceStore()
	if ok {
		s.emit(snap)
	}
	return ok
}

// Reset zeroes the generation counter and renders the store's current grid.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	s.generation = 0
	s.mu.Unlock()
	s.emit(s.store.Current())
}

func (s *Scheduler) advanceStore() (*core.Grid, bool) {
	snap, err := s.store.Advance(s.step)
	if err != nil {
		s.log.Error("step failed", zap.Error(err))
		return nil, false
	}
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()
	return snap, true
}

func (s *Scheduler) scheduleLocked(delay time.Duration) {
	s.pending = &Tick{Epoch: s.epoch, Due: s.clock.Now().Add(delay)}
}

func (s *Scheduler) emit(g *core.Grid) {
	if s.render != nil {
		s.render(g)
	}
}
