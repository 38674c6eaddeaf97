package game

import (
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// Snapshot is a copy of everything a renderer needs for one frame.
type Snapshot struct {
	Phase     Phase
	Playfield object.Playfield
	Ship      physics.Rect
	ShipVX    float64
	Enemies   []physics.Rect
	Bullets   []physics.Rect
	Score     int
	Elapsed   int
	Clock     string
	TimeLimit int
	Reason    GameOverReason
	Player    string
	Level     string
}

// Snapshot copies the current session state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:     g.phase,
		Playfield: g.cfg.Playfield,
		Ship:      g.ship.Bounds(),
		ShipVX:    g.ship.VX,
		Enemies:   make([]physics.Rect, len(g.enemies)),
		Bullets:   make([]physics.Rect, len(g.bullets)),
		Score:     g.score,
		Elapsed:   g.clock.Elapsed(),
		Clock:     g.clock.String(),
		TimeLimit: g.cfg.TimeLimit,
		Reason:    g.reason,
		Player:    g.player,
		Level:     g.level,
	}
	for i, e := range g.enemies {
		s.Enemies[i] = e.Bounds()
	}
	for i, b := range g.bullets {
		s.Bullets[i] = b.Bounds()
	}
	return s
}

// Paused reports whether the snapshot was taken while paused.
func (s Snapshot) Paused() bool { return s.Phase == PhasePaused }

// Over reports whether the snapshot was taken after the session ended.
func (s Snapshot) Over() bool { return s.Phase == PhaseGameOver }
