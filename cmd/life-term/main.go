package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"conway-ca/internal/config"
	"conway-ca/internal/console"
	"conway-ca/internal/logging"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	generations := flag.Uint64("generations", 0, "stop after this many generations (0 runs until quit)")
	plain := flag.Bool("plain", false, "print text frames and read line commands even on a terminal")

	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	interactive := !*plain && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	log, err := newLogger(cfg.Logging, interactive)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := console.Options{MaxGenerations: *generations}
	var runner *console.Runner
	if interactive {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer screen.Fini()
		screen.Clear()
		runner, err = console.NewScreenRunner(cfg, log, screen, opts)
		if err != nil {
			return err
		}
	} else {
		runner, err = console.NewRunner(cfg, log, os.Stdin, os.Stdout, opts)
		if err != nil {
			return err
		}
	}

	log.Info("terminal session started", zap.Bool("interactive", interactive), zap.Uint64("max_generations", *generations))
	if err := runner.Run(ctx); err != nil {
		return err
	}
	log.Info("terminal session ended", zap.Uint64("generation", runner.Controller().Generation()))
	return nil
}

// newLogger keeps stderr logs off the screen while tcell owns the terminal;
// log to a file (logging.output) to keep them.
func newLogger(cfg config.LoggingConfig, interactive bool) (*zap.Logger, error) {
	if interactive && (cfg.Output == "" || cfg.Output == "stderr" || cfg.Output == "stdout") {
		return zap.NewNop(), nil
	}
	return logging.New(cfg)
}
