package object

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// ParticleSize is the drawn size of a particle in playfield pixels.
const ParticleSize = 5.0

// particlePool reuses Particle objects across explosions.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived explosion fragment. Particles are purely visual:
// they never collide and are owned by the render adapter, not the game.
type Particle struct {
	X, Y        float64 // Center position
	VX, VY      float64 // Velocity in pixels per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Fraction of velocity kept per second
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.2
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Update moves the particle. Returns true when it has burnt out.
func (p *Particle) Update(delta time.Duration) bool {
	dt := delta.Seconds()
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	drag := math.Pow(p.Drag, dt)
	p.VX *= drag
	p.VY *= drag
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Intensity returns the remaining brightness in [0, 1].
func (p *Particle) Intensity() float64 {
	if p.MaxLifetime <= 0 {
		return 0
	}
	return math.Max(0, p.Lifetime/p.MaxLifetime)
}

// Draw renders the particle as a small square.
func (p *Particle) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(p.X-ParticleSize/2, p.Y-ParticleSize/2, ParticleSize, ParticleSize)
	return nil
}

// SpawnExplosion creates count particles bursting out of (x, y).
func SpawnExplosion(x, y float64, count int, speed, lifetime float64, rng *rand.Rand) []*Particle {
	particles := make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// 50% to 150% speed variation
		v := speed * (0.5 + rng.Float64())
		particles = append(particles, NewParticle(
			x, y,
			math.Cos(angle)*v, math.Sin(angle)*v,
			lifetime*(0.7+rng.Float64()*0.6),
		))
	}
	return particles
}
