package object

import "github.com/tomz197/invaders/internal/physics"

// Bullet dimensions and speed.
const (
	BulletWidth  = 7.0
	BulletHeight = 10.0
	BulletSpeed  = 10.0
)

// Bullet is a projectile fired upward by the ship.
type Bullet struct {
	X, Y float64 // Top-left position
}

// NewBullet creates a bullet at (x, y).
func NewBullet(x, y float64) *Bullet {
	return &Bullet{X: x, Y: y}
}

// Update moves the bullet up.
func (b *Bullet) Update(_ UpdateContext) {
	b.Y -= BulletSpeed
}

// Passed reports whether the bullet has left through the top of the playfield.
func (b *Bullet) Passed() bool {
	return b.Y < 0
}

// Bounds returns the bullet's bounding box.
func (b *Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: BulletWidth, H: BulletHeight}
}

// Draw renders the bullet as a filled rectangle.
func (b *Bullet) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(b.X, b.Y, BulletWidth, BulletHeight)
	return nil
}
