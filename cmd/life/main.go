//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"conway-ca/internal/app"
	"conway-ca/internal/config"
	"conway-ca/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	game, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(60)

	log.Info("window opened", zap.Int("width", w), zap.Int("height", h))
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
