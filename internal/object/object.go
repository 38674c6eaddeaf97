// Package object defines the playfield entities and how they move and draw.
package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Playfield is the visible simulation area in pixels, origin top-left, y down.
type Playfield struct {
	Width  int
	Height int
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Playfield Playfield
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // Playfield-scaled terminal canvas
}

// Object is a drawable and updatable playfield entity.
type Object interface {
	// Update advances the object by one tick.
	Update(ctx UpdateContext)

	// Bounds returns the object's current bounding box.
	Bounds() physics.Rect

	// Draw draws the object onto the terminal canvas.
	Draw(ctx DrawContext) error
}
