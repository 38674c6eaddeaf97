package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	invlog "github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	drainTimeout = 15 * time.Second
)

func main() {
	logger := invlog.New(os.Stderr, "ssh")
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("could not load .env", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	cfg, err := game.LoadConfig()
	if err != nil {
		logger.Fatal("invalid game config", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath,
		"width", cfg.Playfield.Width, "height", cfg.Playfield.Height, "timeLimit", cfg.TimeLimit)

	registry := loop.NewRegistry()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(registry, cfg, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// TCP_NODELAY keeps key presses from being batched.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "players", registry.Count())

	if left := registry.Shutdown(drainTimeout); left > 0 {
		logger.Warn("players still connected after countdown", "players", left)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs one independent game per SSH session.
func gameMiddleware(registry *loop.Registry, cfg game.Config, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			h := registry.Register(sess.User())
			defer registry.Unregister(h)

			sessLog := logger.With("user", sess.User(), "session", h.ID)
			sessLog.Info("session started", "term", pty.Term,
				"cols", pty.Window.Width, "rows", pty.Window.Height)

			size := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					size.update(win.Width, win.Height)
				}
			}()

			err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, loop.Options{
				TermSizeFunc: size.getSize,
				Logger:       sessLog,
				Game:         cfg,
				PlayerName:   sess.User(),
				Shutdown:     h.ShutdownCh(),
				Inactivity:   true,
			})
			if err != nil {
				sessLog.Warn("game error", "err", err)
			}

			sessLog.Info("session ended")
			next(sess)
		}
	}
}

// sizeTracker follows SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
