package game

import (
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// Step advances the session by one frame. Ignored unless playing.
//
// Entities move first, then an empty field is refilled, then enemies are
// checked against the bottom edge and the ship, then bullets against
// enemies, then bullets against the top edge. A ship collision ends the
// session immediately and skips the bullet phases.
func (g *Game) Step() {
	if g.phase != PhasePlaying {
		return
	}

	g.advance()
	g.refill()
	if g.resolveEnemies() {
		return
	}
	g.resolveHits()
	g.resolveBullets()
}

func (g *Game) advance() {
	ctx := object.UpdateContext{Playfield: g.cfg.Playfield}
	g.objects = g.appendObjects(g.objects[:0])
	for _, obj := range g.objects {
		obj.Update(ctx)
	}
	clear(g.objects)
}

func (g *Game) refill() {
	if len(g.enemies) > 0 {
		return
	}
	g.enemies = g.spawner.SpawnEnemies()
	g.emit(Event{Type: EventWaveSpawned, Count: len(g.enemies)})
}

// resolveEnemies drops enemies below the playfield and reports whether any
// enemy touches the ship, ending the session if so.
func (g *Game) resolveEnemies() bool {
	marks := resetMarks(&g.enemyMarks, len(g.enemies))
	shipBox := g.ship.Bounds()
	crashed := false

	for i, e := range g.enemies {
		if e.Passed(g.cfg.Playfield) {
			marks[i] = true
		}
		if physics.Overlaps(shipBox, e.Bounds()) {
			crashed = true
		}
	}
	g.enemies = removeMarked(g.enemies, marks)

	if crashed {
		g.end(ReasonCollision)
	}
	return crashed
}

// resolveHits lets each bullet destroy at most one enemy not already hit
// this frame.
func (g *Game) resolveHits() {
	hitEnemies := resetMarks(&g.enemyMarks, len(g.enemies))
	hitBullets := resetMarks(&g.bulletMarks, len(g.bullets))

	for bi, b := range g.bullets {
		bulletBox := b.Bounds()
		for ei, e := range g.enemies {
			if hitEnemies[ei] || !physics.Overlaps(bulletBox, e.Bounds()) {
				continue
			}
			hitEnemies[ei] = true
			hitBullets[bi] = true
			g.score += g.cfg.KillScore
			x, y := center(e.Bounds())
			g.emit(Event{Type: EventEnemyDestroyed, X: x, Y: y, ScoreAdd: g.cfg.KillScore})
			break
		}
	}

	g.enemies = removeMarked(g.enemies, hitEnemies)
	g.bullets = removeMarked(g.bullets, hitBullets)
}

func (g *Game) resolveBullets() {
	marks := resetMarks(&g.bulletMarks, len(g.bullets))
	for i, b := range g.bullets {
		marks[i] = b.Passed()
	}
	g.bullets = removeMarked(g.bullets, marks)
}

// resetMarks returns buf resized to n with every mark cleared.
func resetMarks(buf *[]bool, n int) []bool {
	if cap(*buf) < n {
		*buf = make([]bool, n)
	}
	marks := (*buf)[:n]
	clear(marks)
	return marks
}

// removeMarked filters items in place, keeping those whose mark is false.
func removeMarked[T any](items []T, marks []bool) []T {
	kept := items[:0]
	for i, item := range items {
		if !marks[i] {
			kept = append(kept, item)
		}
	}
	clear(items[len(kept):])
	return kept
}
