package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
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

	logger, closeLog, err := logging.NewFromEnv("game")
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := game.LoadConfig()
	if err != nil {
		return err
	}

	opts := loop.Options{
		Logger:  logger,
		Game:    cfg,
		Profile: profileStore(logger),
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

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("session started")
	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts)
	logger.Info("session ended")
	return err
}

func profileStore(logger *log.Logger) *profile.Store {
	path, err := profile.DefaultPath()
	if err != nil {
		logger.Warn("profile disabled", "err", err)
		return nil
	}
	return profile.NewStore(path)
}
