package object

import "github.com/tomz197/invaders/internal/physics"

// Ship dimensions and handling.
const (
	ShipWidth        = 50.0
	ShipHeight       = 50.0
	ShipMaxSpeed     = 9.0
	shipBottomMargin = 10.0
)

var shipSprite = []string{
	".....#.....",
	"....###....",
	"....###....",
	".#..###..#.",
	".#########.",
	"###########",
	"###.###.###",
	"##.......##",
}

// Ship is the player-controlled ship. It only moves horizontally.
type Ship struct {
	X, Y     float64 // Top-left position
	VX       float64 // Horizontal velocity per tick
	MaxSpeed float64
}

// NewShip creates a ship centered at the bottom of the playfield.
func NewShip(pf Playfield) *Ship {
	return &Ship{
		X:        float64(pf.Width)/2 - ShipWidth/2,
		Y:        float64(pf.Height) - ShipHeight - shipBottomMargin,
		MaxSpeed: ShipMaxSpeed,
	}
}

// MoveLeft starts moving left at full speed.
func (s *Ship) MoveLeft() {
	s.VX = -s.MaxSpeed
}

// MoveRight starts moving right at full speed.
func (s *Ship) MoveRight() {
	s.VX = s.MaxSpeed
}

// Stop halts horizontal movement.
func (s *Ship) Stop() {
	s.VX = 0
}

// Update integrates the velocity and keeps the ship inside the playfield.
func (s *Ship) Update(ctx UpdateContext) {
	s.X = physics.Clamp(s.X+s.VX, 0, float64(ctx.Playfield.Width)-ShipWidth)
}

// Bounds returns the ship's bounding box.
func (s *Ship) Bounds() physics.Rect {
	return physics.Rect{X: s.X, Y: s.Y, W: ShipWidth, H: ShipHeight}
}

// Draw renders the ship sprite.
func (s *Ship) Draw(ctx DrawContext) error {
	ctx.Canvas.DrawSprite(s.X, s.Y, ShipWidth, ShipHeight, shipSprite)
	return nil
}
