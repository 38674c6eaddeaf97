package object

import (
	"math/rand"
	"testing"
	"time"
)

var testField = Playfield{Width: 800, Height: 500}

func TestNewShipPosition(t *testing.T) {
	s := NewShip(testField)
	if s.X != 375 || s.Y != 440 {
		t.Fatalf("ship starts at (%v, %v), want (375, 440)", s.X, s.Y)
	}
	if s.VX != 0 {
		t.Fatalf("ship starts moving: VX = %v", s.VX)
	}
}

func TestShipCommands(t *testing.T) {
	s := NewShip(testField)

	s.MoveLeft()
	if s.VX != -ShipMaxSpeed {
		t.Errorf("MoveLeft: VX = %v, want %v", s.VX, -ShipMaxSpeed)
	}
	s.MoveRight()
	if s.VX != ShipMaxSpeed {
		t.Errorf("MoveRight: VX = %v, want %v", s.VX, ShipMaxSpeed)
	}
	s.Stop()
	if s.VX != 0 {
		t.Errorf("Stop: VX = %v, want 0", s.VX)
	}
}

func TestShipUpdateClampsToPlayfield(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ctx := UpdateContext{Playfield: testField}
	maxX := float64(testField.Width) - ShipWidth

	for i := 0; i < 2000; i++ {
		s := &Ship{
			X:        rng.Float64()*2000 - 600,
			Y:        440,
			VX:       rng.Float64()*40 - 20,
			MaxSpeed: ShipMaxSpeed,
		}
		s.Update(ctx)
		if s.X < 0 || s.X > maxX {
			t.Fatalf("ship x = %v outside [0, %v] after update", s.X, maxX)
		}
	}
}

func TestShipUpdateMoves(t *testing.T) {
	s := NewShip(testField)
	s.MoveRight()
	s.Update(UpdateContext{Playfield: testField})
	if s.X != 384 {
		t.Fatalf("x after one right tick = %v, want 384", s.X)
	}
}

func TestEnemyFalls(t *testing.T) {
	e := NewEnemy(200, -150, 3)
	e.Update(UpdateContext{Playfield: testField})
	if e.Y != -147 || e.X != 200 {
		t.Fatalf("enemy at (%v, %v), want (200, -147)", e.X, e.Y)
	}

	e.Y = 500
	if e.Passed(testField) {
		t.Error("enemy at the bottom edge counted as passed")
	}
	e.Y = 501
	if !e.Passed(testField) {
		t.Error("enemy below the bottom edge not counted as passed")
	}
}

func TestBulletRises(t *testing.T) {
	b := NewBullet(422, 440)
	b.Update(UpdateContext{Playfield: testField})
	if b.Y != 430 {
		t.Fatalf("bullet y = %v, want 430", b.Y)
	}

	b.Y = 0
	if b.Passed() {
		t.Error("bullet at y=0 counted as passed")
	}
	b.Y = -1
	if !b.Passed() {
		t.Error("bullet above the top not counted as passed")
	}
}

func TestSpawnEnemiesRanges(t *testing.T) {
	s := NewSpawner(testField, rand.New(rand.NewSource(42)))
	sizes := map[int]bool{}
	speeds := map[float64]bool{}

	for i := 0; i < 1000; i++ {
		wave := s.SpawnEnemies()
		if len(wave) < MinWaveSize || len(wave) > MaxWaveSize {
			t.Fatalf("wave of %d enemies", len(wave))
		}
		sizes[len(wave)] = true

		for _, e := range wave {
			if e.X < EnemySpawnMargin || e.X >= float64(testField.Width-EnemySpawnMargin) {
				t.Fatalf("enemy x = %v outside [100, 700)", e.X)
			}
			if e.Y < enemySpawnTop || e.Y > enemySpawnBottom {
				t.Fatalf("enemy y = %v outside [-250, -150]", e.Y)
			}
			if e.Speed != 2 && e.Speed != 3 && e.Speed != 4 {
				t.Fatalf("enemy speed = %v not in {2,3,4}", e.Speed)
			}
			speeds[e.Speed] = true
		}
	}

	if len(sizes) != 4 {
		t.Errorf("saw wave sizes %v, want all of 1..4", sizes)
	}
	if len(speeds) != 3 {
		t.Errorf("saw speeds %v, want all of {2,3,4}", speeds)
	}
}

func TestSpawnBulletAtNose(t *testing.T) {
	s := NewSpawner(testField, rand.New(rand.NewSource(1)))
	ship := NewShip(testField)

	b := s.SpawnBullet(ship)
	if b.X != ship.X+22 || b.Y != ship.Y {
		t.Fatalf("bullet at (%v, %v), want (%v, %v)", b.X, b.Y, ship.X+22, ship.Y)
	}
}

func TestParticleBurnsOut(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	particles := SpawnExplosion(100, 100, 12, 120, 0.5, rng)
	if len(particles) != 12 {
		t.Fatalf("got %d particles, want 12", len(particles))
	}

	p := particles[0]
	if p.Update(100 * time.Millisecond) {
		t.Fatal("particle burnt out after 100ms")
	}
	if p.X == 100 && p.Y == 100 {
		t.Error("particle did not move")
	}
	if i := p.Intensity(); i <= 0 || i >= 1 {
		t.Errorf("intensity = %v, want in (0, 1)", i)
	}
	if !p.Update(time.Second) {
		t.Fatal("particle still alive after its lifetime")
	}
}
