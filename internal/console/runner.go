// Package console is the terminal front end. Interactive sessions draw on a
// tcell screen and take keys and mouse input; piped sessions print plain
// text frames and read line commands.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"conway-ca/internal/config"
	"conway-ca/internal/core"
	"conway-ca/internal/render"
	"conway-ca/internal/sim"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures a Runner.
type Options struct {
	// MaxGenerations stops the run once this many generations were produced.
	// Zero runs until quit or cancellation.
	MaxGenerations uint64
	Sim            []sim.Option
}

// Sink receives generations and messages. Only the runner's writer
// goroutine calls it.
type Sink interface {
	Render(f render.Frame, g *core.Grid) error
	Message(text string) error
}

// frame is one unit of output; a nil grid means text is a message.
type frame struct {
	meta render.Frame
	grid *core.Grid
	text string
}

// Runner drives a Controller from terminal input and shows every generation.
type Runner struct {
	ctl   *sim.Controller
	sink  Sink
	input func(ctx context.Context, cmds chan<- Command)
	help  string
	log   *zap.Logger
	opts  Options

	frames chan frame
	done   <-chan struct{}
}

// NewRunner reads line commands from in and prints text frames to out.
func NewRunner(cfg *config.Config, log *zap.Logger, in io.Reader, out io.Writer, opts Options) (*Runner, error) {
	r, err := newRunner(cfg, log, render.NewTextRenderer(out, render.DefaultGlyphs()), opts)
	if err != nil {
		return nil, err
	}
	r.input = func(ctx context.Context, cmds chan<- Command) { r.readLines(ctx, in, cmds) }
	r.help = Usage
	return r, nil
}

// NewScreenRunner draws on screen and takes keys and mouse events from it.
// The caller owns the screen; finalising it ends the event reader.
func NewScreenRunner(cfg *config.Config, log *zap.Logger, screen tcell.Screen, opts Options) (*Runner, error) {
	r, err := newRunner(cfg, log, render.NewScreenRenderer(screen, render.DefaultScreenStyles()), opts)
	if err != nil {
		return nil, err
	}
	size := r.ctl.Size()
	events := newScreenInput(screen, size.W, size.H)
	r.input = events.run
	r.help = KeyHelp
	r.send(frame{text: KeyHelp})
	return r, nil
}

func newRunner(cfg *config.Config, log *zap.Logger, sink Sink, opts Options) (*Runner, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runner{
		sink:   sink,
		log:    log,
		opts:   opts,
		frames: make(chan frame, 64),
	}
	ctl, err := sim.New(cfg, log, r.emit, opts.Sim...)
	if err != nil {
		return nil, err
	}
	r.ctl = ctl
	// The construction-time render happens before r.ctl is set; queue the
	// initial frame now that its status can be read.
	r.emit(ctl.Snapshot())
	if cfg.Sim.Autostart {
		ctl.RequestStart()
	}
	return r, nil
}

// Controller exposes the simulation driven by the runner.
func (r *Runner) Controller() *sim.Controller { return r.ctl }

// Run processes commands and ticks until quit, MaxGenerations, exhausted
// input while stopped, or ctx cancellation. The input reader is not part of
// the group: a blocked read cannot be interrupted, so it is abandoned on return.
func (r *Runner) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	r.done = gctx.Done()

	cmds := make(chan Command)
	go r.input(gctx, cmds)

	g.Go(func() error {
		defer close(r.frames)
		return r.loop(gctx, cmds)
	})
	g.Go(func() error {
		for f := range r.frames {
			if f.grid == nil {
				if err := r.sink.Message(f.text); err != nil {
					return fmt.Errorf("write message: %w", err)
				}
				continue
			}
			if err := r.sink.Render(f.meta, f.grid); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
		return nil
	})
	return g.Wait()
}

func (r *Runner) loop(ctx context.Context, cmds <-chan Command) error {
	for {
		if r.finished() {
			r.ctl.RequestStop()
			return nil
		}
		// Input is exhausted and nothing is scheduled: no further event can occur.
		if cmds == nil && !r.ctl.Running() {
			return nil
		}

		var (
			timer *time.Timer
			fire  <-chan time.Time
		)
		if due, ok := r.ctl.NextDue(); ok {
			timer = time.NewTimer(time.Until(due))
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return nil
		case cmd, ok := <-cmds:
			stopTimer(timer)
			if !ok {
				cmds = nil
				continue
			}
			if quit := r.apply(cmd); quit {
				r.ctl.RequestStop()
				return nil
			}
		case <-fire:
			r.ctl.Advance()
		}
	}
}

func (r *Runner) finished() bool {
	return r.opts.MaxGenerations > 0 && r.ctl.Generation() >= r.opts.MaxGenerations
}

func (r *Runner) apply(cmd Command) (quit bool) {
	switch cmd.Kind {
	case CmdStart:
		r.ctl.RequestStart()
	case CmdStop:
		r.ctl.RequestStop()
	case CmdStartStop:
		if r.ctl.Running() {
			r.ctl.RequestStop()
		} else {
			r.ctl.RequestStart()
		}
	case CmdSpeed:
		r.ctl.RequestSetSpeed(cmd.Speed)
	case CmdFaster:
		r.ctl.RequestAdjustSpeed(-1)
	case CmdSlower:
		r.ctl.RequestAdjustSpeed(1)
	case CmdToggle:
		if err := r.ctl.RequestToggle(cmd.X, cmd.Y); err != nil {
			return false
		}
		r.emit(r.ctl.Snapshot())
	case CmdStep:
		if !r.ctl.RequestStep() {
			r.log.Info("step ignored while running")
		}
	case CmdReset:
		r.ctl.RequestReset()
	case CmdHelp:
		r.send(frame{text: r.help})
	case CmdQuit:
		return true
	}
	return false
}

func (r *Runner) readLines(ctx context.Context, in io.Reader, cmds chan<- Command) {
	defer close(cmds)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		cmd, err := ParseCommand(sc.Text())
		if err != nil {
			r.log.Warn("bad command", zap.String("line", sc.Text()), zap.Error(err))
			continue
		}
		if cmd.Kind == CmdNone {
			continue
		}
		select {
		case cmds <- cmd:
		case <-ctx.Done():
			return
		}
	}
	if err := sc.Err(); err != nil {
		r.log.Warn("read commands", zap.Error(err))
	}
}

// emit is the render callback. It runs on the loop goroutine or during
// construction, before any goroutine starts; the render made inside sim.New
// is dropped because the controller is not yet reachable.
func (r *Runner) emit(g *core.Grid) {
	if r.ctl == nil {
		return
	}
	r.send(frame{
		meta: render.Frame{
			Generation: r.ctl.Generation(),
			Population: g.Population(),
			Running:    r.ctl.Running(),
			SpeedMs:    r.ctl.Speed(),
		},
		grid: g,
	})
}

func (r *Runner) send(f frame) {
	select {
	case r.frames <- f:
	case <-r.done:
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}
