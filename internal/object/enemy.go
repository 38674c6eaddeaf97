package object

import "github.com/tomz197/invaders/internal/physics"

// Enemy dimensions.
const (
	EnemyWidth  = 50.0
	EnemyHeight = 50.0
)

var enemySprite = []string{
	"..#.....#..",
	"...#...#...",
	"..#######..",
	".##.###.##.",
	"###########",
	"#.#######.#",
	"#.#.....#.#",
	"...##.##...",
}

// Enemy falls straight down at a speed fixed when it spawns.
type Enemy struct {
	X, Y  float64 // Top-left position
	Speed float64 // Pixels per tick, downward
}

// NewEnemy creates an enemy at (x, y) falling at speed.
func NewEnemy(x, y, speed float64) *Enemy {
	return &Enemy{X: x, Y: y, Speed: speed}
}

// Update moves the enemy down by its speed.
func (e *Enemy) Update(_ UpdateContext) {
	e.Y += e.Speed
}

// Passed reports whether the enemy has fallen past the bottom of the playfield.
func (e *Enemy) Passed(pf Playfield) bool {
	return e.Y > float64(pf.Height)
}

// Bounds returns the enemy's bounding box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: EnemyWidth, H: EnemyHeight}
}

// Draw renders the enemy sprite.
func (e *Enemy) Draw(ctx DrawContext) error {
	ctx.Canvas.DrawSprite(e.X, e.Y, EnemyWidth, EnemyHeight, enemySprite)
	return nil
}
