// Package desktop runs the game in a window with ebiten, drawing the
// playfield at its native pixel size.
package desktop

import (
	"image/color"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/menu"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/profile"
)

const (
	restartDelay = time.Second
	tickDelta    = time.Second / 60
)

// Options configures the window.
type Options struct {
	Game       game.Config
	Logger     *log.Logger
	Observers  []game.Observer
	Profile    *profile.Store
	PlayerName string
}

// Game implements ebiten.Game around a game session.
type Game struct {
	opts      Options
	logger    *log.Logger
	game      *game.Game
	form      *menu.Form
	seconds   *time.Ticker
	rng       *rand.Rand
	particles []*object.Particle
	overAt    time.Time
}

var _ ebiten.Game = (*Game)(nil)

// New creates the window game. Call Close when RunGame returns.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Game
	if cfg == (game.Config{}) {
		cfg = game.DefaultConfig()
	}

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

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Game{
		opts:    opts,
		logger:  logger,
		game:    game.New(cfg, rng),
		form:    menu.New(name, level),
		seconds: time.NewTicker(time.Second),
		rng:     rng,
	}
}

// Close stops the clock ticker.
func (g *Game) Close() {
	g.seconds.Stop()
}

// WindowSize returns the playfield size in pixels.
func (g *Game) WindowSize() (int, int) {
	pf := g.game.Config().Playfield
	return pf.Width, pf.Height
}

// Layout keeps the logical screen at playfield size; ebiten scales it.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.WindowSize()
}

// Update runs one tick: clock, keys, step, effects.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		return ebiten.Termination
	}

	select {
	case <-g.seconds.C:
		g.game.TickSecond()
	default:
	}

	if quit := g.handleKeys(); quit {
		return ebiten.Termination
	}

	g.game.Step()
	g.dispatch()
	g.updateParticles()
	return nil
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func justReleased(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

// handleKeys maps this tick's keys to commands. Reports a quit request.
func (g *Game) handleKeys() bool {
	switch g.game.Phase() {
	case game.PhaseMenu:
		in := input.Input{
			Text:      ebiten.AppendInputChars(nil),
			Enter:     justPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter),
			Tab:       justPressed(ebiten.KeyTab),
			Up:        justPressed(ebiten.KeyArrowUp),
			Down:      justPressed(ebiten.KeyArrowDown),
			Backspace: justPressed(ebiten.KeyBackspace),
		}
		if g.form.Apply(in) {
			g.start()
		}
		return false

	case game.PhasePlaying, game.PhasePaused:
		g.steer()
		if justPressed(ebiten.KeySpace) {
			g.game.Fire()
		}
		if justPressed(ebiten.KeyEscape, ebiten.KeyP) {
			g.game.TogglePause()
		}

	case game.PhaseGameOver:
		if justPressed(ebiten.KeyEnter, ebiten.KeySpace) && time.Since(g.overAt) >= restartDelay {
			g.game.Restart()
		}
	}
	return justPressed(ebiten.KeyQ)
}

// steer forwards key down and key up. Releasing a direction only stops the
// ship if it is moving that way.
func (g *Game) steer() {
	vx := g.game.Ship().VX
	switch {
	case justPressed(ebiten.KeyArrowLeft, ebiten.KeyA):
		g.game.MoveLeft()
	case justPressed(ebiten.KeyArrowRight, ebiten.KeyD):
		g.game.MoveRight()
	case justReleased(ebiten.KeyArrowLeft, ebiten.KeyA) && vx < 0:
		g.game.StopMoving()
	case justReleased(ebiten.KeyArrowRight, ebiten.KeyD) && vx > 0:
		g.game.StopMoving()
	}
}

func (g *Game) start() {
	name, level := g.form.Values()
	g.game.Start(name, level)
	if g.opts.Profile == nil {
		return
	}
	if err := g.opts.Profile.Save(profile.Profile{Name: name, Level: level}); err != nil {
		g.logger.Warn("could not save profile", "path", g.opts.Profile.Path(), "err", err)
	}
}

func (g *Game) dispatch() {
	for _, e := range g.game.DrainEvents() {
		for _, o := range g.opts.Observers {
			o.Observe(e)
		}
		switch e.Type {
		case game.EventStarted:
			g.logger.Info("game started", "player", g.game.Player(), "level", g.game.Level())
		case game.EventEnemyDestroyed:
			g.particles = append(g.particles, object.SpawnExplosion(e.X, e.Y, 16, 150, 0.6, g.rng)...)
		case game.EventGameOver:
			g.overAt = time.Now()
			if e.Reason == game.ReasonCollision {
				g.particles = append(g.particles, object.SpawnExplosion(e.X, e.Y, 48, 220, 0.8, g.rng)...)
			}
			g.logger.Info("game over", "player", g.game.Player(), "score", e.Score, "reason", e.Reason)
		}
	}
}

func (g *Game) updateParticles() {
	if g.game.Paused() {
		return
	}
	kept := g.particles[:0]
	for _, p := range g.particles {
		if p.Update(tickDelta) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(g.particles[len(kept):])
	g.particles = kept
}

func fade(c color.RGBA, intensity float64) color.RGBA {
	a := uint8(float64(c.A) * intensity)
	// ebiten expects premultiplied alpha
	scale := float64(a) / 255
	return color.RGBA{
		R: uint8(float64(c.R) * scale),
		G: uint8(float64(c.G) * scale),
		B: uint8(float64(c.B) * scale),
		A: a,
	}
}
