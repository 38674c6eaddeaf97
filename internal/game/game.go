// Package game holds the rules of a single session: the ship, the enemy
// waves, bullets, score and clock. It is driven by commands, Step and
// TickSecond, all called from one goroutine.
package game

import (
	"math/rand"

	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Game is one player's session. It is not safe for concurrent use.
type Game struct {
	cfg     Config
	spawner *object.Spawner

	phase   Phase
	ship    *object.Ship
	enemies []*object.Enemy
	bullets []*object.Bullet
	score   int
	clock   Clock
	reason  GameOverReason

	player string
	level  string

	events []Event

	// Scratch buffers reused every tick
	objects     []object.Object
	enemyMarks  []bool
	bulletMarks []bool
}

// New creates a session in the menu phase. cfg must be valid.
func New(cfg Config, rng *rand.Rand) *Game {
	g := &Game{
		cfg:     cfg,
		spawner: object.NewSpawner(cfg.Playfield, rng),
		phase:   PhaseMenu,
	}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.ship = object.NewShip(g.cfg.Playfield)
	g.enemies = nil
	g.bullets = nil
	g.score = 0
	g.clock.Reset()
	g.reason = ReasonNone
}

func (g *Game) emit(e Event) {
	e.Score = g.score
	g.events = append(g.events, e)
}

func center(r physics.Rect) (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Start begins play from the menu with the given player name and level.
// Ignored outside the menu.
func (g *Game) Start(name, level string) {
	if g.phase != PhaseMenu {
		return
	}
	g.player = name
	g.level = level
	g.reset()
	g.phase = PhasePlaying
	g.emit(Event{Type: EventStarted})
}

// Restart begins a new session after a game over, keeping the player's
// name and level. Ignored in every other phase.
func (g *Game) Restart() {
	if g.phase != PhaseGameOver {
		return
	}
	g.reset()
	g.phase = PhasePlaying
	g.emit(Event{Type: EventStarted})
}

// TogglePause switches between playing and paused.
func (g *Game) TogglePause() {
	switch g.phase {
	case PhasePlaying:
		g.phase = PhasePaused
		g.emit(Event{Type: EventPaused})
	case PhasePaused:
		g.phase = PhasePlaying
		g.emit(Event{Type: EventResumed})
	}
}

func (g *Game) canSteer() bool {
	return g.phase == PhasePlaying || g.phase == PhasePaused
}

// MoveLeft sets the ship moving left. Applies while playing or paused.
func (g *Game) MoveLeft() {
	if g.canSteer() {
		g.ship.MoveLeft()
	}
}

// MoveRight sets the ship moving right. Applies while playing or paused.
func (g *Game) MoveRight() {
	if g.canSteer() {
		g.ship.MoveRight()
	}
}

// StopMoving halts the ship. Applies while playing or paused.
func (g *Game) StopMoving() {
	if g.canSteer() {
		g.ship.Stop()
	}
}

// Fire spawns a bullet at the ship's nose unless the bullet cap is reached.
// Reports whether a bullet was fired.
func (g *Game) Fire() bool {
	if g.phase != PhasePlaying || len(g.bullets) >= g.cfg.MaxBullets {
		return false
	}
	b := g.spawner.SpawnBullet(g.ship)
	g.bullets = append(g.bullets, b)
	x, y := center(b.Bounds())
	g.emit(Event{Type: EventFired, X: x, Y: y})
	return true
}

// TickSecond advances the session clock by one second and ends the game
// once the time limit is exceeded. Ignored unless playing.
func (g *Game) TickSecond() {
	if g.phase != PhasePlaying {
		return
	}
	if g.clock.Tick() > g.cfg.TimeLimit {
		g.end(ReasonTimeUp)
	}
}

func (g *Game) end(reason GameOverReason) {
	g.phase = PhaseGameOver
	g.reason = reason
	g.ship.Stop()
	x, y := center(g.ship.Bounds())
	g.emit(Event{Type: EventGameOver, X: x, Y: y, Reason: reason})
}

// DrainEvents returns the events emitted since the last call.
func (g *Game) DrainEvents() []Event {
	if len(g.events) == 0 {
		return nil
	}
	events := g.events
	g.events = nil
	return events
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Elapsed returns the elapsed session seconds.
func (g *Game) Elapsed() int { return g.clock.Elapsed() }

// Clock returns the elapsed time as HH:MM:SS.
func (g *Game) Clock() string { return g.clock.String() }

// Paused reports whether the session is paused.
func (g *Game) Paused() bool { return g.phase == PhasePaused }

// Over reports whether the session has ended.
func (g *Game) Over() bool { return g.phase == PhaseGameOver }

// Reason returns why the last session ended.
func (g *Game) Reason() GameOverReason { return g.reason }

// Player returns the name the session was started with.
func (g *Game) Player() string { return g.player }

// Level returns the level label the session was started with.
func (g *Game) Level() string { return g.level }

// Config returns the session rules.
func (g *Game) Config() Config { return g.cfg }

// Ship returns the player's ship.
func (g *Game) Ship() *object.Ship { return g.ship }

// Objects returns every live entity in draw order: ship, enemies, bullets.
func (g *Game) Objects() []object.Object {
	return g.appendObjects(nil)
}

func (g *Game) appendObjects(dst []object.Object) []object.Object {
	dst = append(dst, g.ship)
	for _, e := range g.enemies {
		dst = append(dst, e)
	}
	for _, b := range g.bullets {
		dst = append(dst, b)
	}
	return dst
}
