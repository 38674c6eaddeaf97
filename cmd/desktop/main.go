package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/desktop"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/profile"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	logger, closeLog, err := logging.NewFromEnv("desktop")
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := game.LoadConfig()
	if err != nil {
		return err
	}

	opts := desktop.Options{
		Game:   cfg,
		Logger: logger,
	}
	if path, err := profile.DefaultPath(); err != nil {
		logger.Warn("profile disabled", "err", err)
	} else {
		opts.Profile = profile.NewStore(path)
	}

	if config.GetEnvBool("INVADERS_AUDIO", true) {
		player := audio.NewPlayer()
		if err := player.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer player.Close()
			opts.Observers = append(opts.Observers, player)
		}
	}

	g := desktop.New(opts)
	defer g.Close()

	w, h := g.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetTPS(config.TargetFPS)

	logger.Info("window opened", "width", w, "height", h)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	logger.Info("window closed")
	return nil
}
