package object

import "math/rand"

// Wave and spawn placement parameters.
const (
	MinWaveSize = 1
	MaxWaveSize = 4

	// EnemySpawnMargin keeps spawned enemies this far from both side edges.
	EnemySpawnMargin = 100

	enemySpawnTop    = -250 // Highest spawn y (inclusive)
	enemySpawnBottom = -150 // Lowest spawn y (inclusive)

	// BulletNoseOffset centers a bullet on the ship's nose.
	BulletNoseOffset = 22.0
)

// EnemySpeeds is the set of fall speeds an enemy can spawn with.
var EnemySpeeds = [...]float64{2, 3, 4}

// Spawner creates enemy waves and bullets. It holds no state besides its
// random source and the playfield it spawns into.
type Spawner struct {
	rng       *rand.Rand
	playfield Playfield
}

// NewSpawner creates a spawner for pf. The playfield must be wider than
// 2*EnemySpawnMargin.
func NewSpawner(pf Playfield, rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng, playfield: pf}
}

// SpawnEnemies returns a wave of 1 to 4 enemies above the visible area,
// staggered in height so they do not arrive together.
func (s *Spawner) SpawnEnemies() []*Enemy {
	n := MinWaveSize + s.rng.Intn(MaxWaveSize-MinWaveSize+1)
	span := s.playfield.Width - 2*EnemySpawnMargin

	enemies := make([]*Enemy, 0, n)
	for i := 0; i < n; i++ {
		x := EnemySpawnMargin + s.rng.Intn(span)
		y := enemySpawnBottom - s.rng.Intn(enemySpawnBottom-enemySpawnTop+1)
		speed := EnemySpeeds[s.rng.Intn(len(EnemySpeeds))]
		enemies = append(enemies, NewEnemy(float64(x), float64(y), speed))
	}
	return enemies
}

// SpawnBullet returns a bullet leaving the ship's nose.
func (s *Spawner) SpawnBullet(ship *Ship) *Bullet {
	return NewBullet(ship.X+BulletNoseOffset, ship.Y)
}
