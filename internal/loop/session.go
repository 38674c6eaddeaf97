// Package loop runs one terminal session: it reads keys, drives the game
// from a frame ticker and a one second ticker, and draws the playfield and
// its screens with the half-block canvas.
package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/menu"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/profile"
)

// restartDelay keeps a burst of fire at the moment of death from skipping
// the game over screen.
const restartDelay = time.Second

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Game         game.Config // Zero value means game.DefaultConfig
	Seed         int64       // Zero seeds from the clock
	Observers    []game.Observer
	Profile      *profile.Store // Optional; remembers name and level
	PlayerName   string         // Prefills the name field
	Shutdown     <-chan struct{}
	Inactivity   bool // Warn and disconnect idle players
}

// Session is a single player's terminal session.
type Session struct {
	opts     Options
	logger   *log.Logger
	game     *game.Game
	menu     *menu.Form
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	writer   io.Writer
	stream   *input.Stream
	termSize draw.TermSizeFunc
	rng      *rand.Rand

	particles []*object.Particle

	running      bool
	prevLeft     bool
	prevRight    bool
	overAt       time.Time
	lastInput    time.Time
	inactive     bool
	shuttingDown bool
	shutdownLeft float64 // Seconds until auto-disconnect
	shutdownCh   <-chan struct{}
	prevScreen   screen
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Game
	if cfg == (game.Config{}) {
		cfg = game.DefaultConfig()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	name, level := opts.PlayerName, ""
	if opts.Profile != nil {
		p, err := opts.Profile.Load()
		if err != nil {
			logger.Warn("could not load profile", "path", opts.Profile.Path(), "err", err)
		}
		if name == "" {
			name = p.Name
		}
		level = p.Level
	}

	termWidth, termHeight, _ := termSize()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight,
		float64(cfg.Playfield.Width), float64(cfg.Playfield.Height))
	canvas.SetOffset(offsetCol, offsetRow)

	return &Session{
		opts:       opts,
		logger:     logger,
		game:       game.New(cfg, rng),
		menu:       menu.New(name, level),
		canvas:     canvas,
		cw:         draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:     w,
		stream:     input.StartStream(r),
		termSize:   termSize,
		rng:        rng,
		running:    true,
		lastInput:  time.Now(),
		shutdownCh: opts.Shutdown,
		prevScreen: screenNone,
	}
}

// Run plays a session until the player quits, the input ends or ctx is
// cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run(ctx)
}

// Run drives the session. The game is only touched from this goroutine.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	frames := time.NewTicker(config.TargetFrameTime)
	defer frames.Stop()
	seconds := time.NewTicker(time.Second)
	defer seconds.Stop()

	last := time.Now()
	for s.running {
		select {
		case <-ctx.Done():
			s.running = false
		case <-s.shutdownCh:
			s.beginShutdown()
		case <-seconds.C:
			s.game.TickSecond()
			s.dispatch()
		case now := <-frames.C:
			delta := now.Sub(last)
			last = now
			if err := s.frame(now, delta); err != nil {
				return err
			}
		}
	}

	s.releaseParticles()
	draw.ClearScreen(s.writer)
	return nil
}

func (s *Session) frame(now time.Time, delta time.Duration) error {
	in := input.ReadInput(s.stream)
	if s.stream.Closed() {
		s.running = false
		return nil
	}

	s.trackActivity(now, in)
	s.handleInput(now, in)
	if s.shuttingDown {
		s.tickShutdown(delta)
	}

	s.game.Step()
	s.dispatch()
	s.updateParticles(delta)

	s.updateScreen()
	return s.drawFrame(now)
}

// trackActivity warns and then disconnects players who stop typing.
func (s *Session) trackActivity(now time.Time, in input.Input) {
	if !s.opts.Inactivity {
		return
	}
	idle := now.Sub(s.lastInput).Seconds()
	switch {
	case len(in.Pressed) > 0:
		s.lastInput = now
		s.inactive = false
	case idle > config.InactivityDisconnectUser:
		s.logger.Info("disconnecting idle player", "player", s.game.Player())
		s.running = false
	case idle > config.InactivityWarnUser:
		s.inactive = true
	}
}

// handleInput turns one frame of keys into game commands.
func (s *Session) handleInput(now time.Time, in input.Input) {
	if in.Interrupt {
		s.running = false
		return
	}
	if s.shuttingDown {
		if in.Quit {
			s.running = false
		}
		return
	}

	switch s.game.Phase() {
	case game.PhaseMenu:
		if s.menu.Apply(in) {
			s.start()
		}
		return
	case game.PhasePlaying:
		s.steer(in)
		for i := 0; i < in.Fire; i++ {
			s.game.Fire()
		}
		if in.Pause {
			s.game.TogglePause()
		}
	case game.PhasePaused:
		s.steer(in)
		if in.Pause {
			s.game.TogglePause()
		}
	case game.PhaseGameOver:
		if (in.Enter || in.Fire > 0) && now.Sub(s.overAt) >= restartDelay {
			s.resetKeys()
			s.game.Restart()
		}
	}

	if in.Quit {
		s.running = false
	}
}

// steer emulates key down and key up from the held-key window. Releasing a
// direction only stops the ship if it is moving that way.
func (s *Session) steer(in input.Input) {
	vx := s.game.Ship().VX
	switch {
	case in.Left && in.Right:
		if !s.prevLeft {
			s.game.MoveLeft()
		} else if !s.prevRight {
			s.game.MoveRight()
		}
	case in.Left:
		s.game.MoveLeft()
	case in.Right:
		s.game.MoveRight()
	case s.prevLeft && vx < 0, s.prevRight && vx > 0:
		s.game.StopMoving()
	}
	s.prevLeft, s.prevRight = in.Left, in.Right
}

func (s *Session) resetKeys() {
	input.ResetKeyInput(s.stream)
	s.prevLeft, s.prevRight = false, false
}

func (s *Session) start() {
	name, level := s.menu.Values()
	s.resetKeys()
	s.game.Start(name, level)

	if s.opts.Profile == nil {
		return
	}
	if err := s.opts.Profile.Save(profile.Profile{Name: name, Level: level}); err != nil {
		s.logger.Warn("could not save profile", "path", s.opts.Profile.Path(), "err", err)
	}
}

// dispatch forwards pending game events to observers and effects.
func (s *Session) dispatch() {
	for _, e := range s.game.DrainEvents() {
		for _, o := range s.opts.Observers {
			o.Observe(e)
		}

		switch e.Type {
		case game.EventStarted:
			s.logger.Info("game started", "player", s.game.Player(), "level", s.game.Level())
		case game.EventEnemyDestroyed:
			s.explode(e.X, e.Y, 12, 150)
		case game.EventGameOver:
			s.overAt = time.Now()
			if e.Reason == game.ReasonCollision {
				s.explode(e.X, e.Y, 40, 220)
			}
			s.logger.Info("game over",
				"player", s.game.Player(),
				"score", e.Score,
				"reason", e.Reason,
				"time", s.game.Clock())
		case game.EventWaveSpawned:
			s.logger.Debug("wave spawned", "enemies", e.Count)
		}
	}
}

func (s *Session) explode(x, y float64, count int, speed float64) {
	s.particles = append(s.particles, object.SpawnExplosion(x, y, count, speed, 0.6, s.rng)...)
}

// updateParticles ages explosion particles. They freeze while paused.
func (s *Session) updateParticles(delta time.Duration) {
	if s.game.Paused() {
		return
	}
	kept := s.particles[:0]
	for _, p := range s.particles {
		if p.Update(delta) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

func (s *Session) releaseParticles() {
	for _, p := range s.particles {
		p.Release()
	}
	s.particles = nil
}

// beginShutdown shows the countdown screen and pauses a running game.
func (s *Session) beginShutdown() {
	s.shutdownCh = nil
	if s.shuttingDown {
		return
	}
	s.shuttingDown = true
	s.shutdownLeft = config.ShutdownDisplaySeconds
	if s.game.Phase() == game.PhasePlaying {
		s.game.TogglePause()
	}
}

func (s *Session) tickShutdown(delta time.Duration) {
	s.shutdownLeft -= delta.Seconds()
	if s.shutdownLeft <= 0 {
		s.running = false
	}
}

// updateScreen follows terminal resizes, clamping to the max render size.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSize()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.cw.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the offset that centers the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
