package game

import (
	"errors"
	"fmt"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
)

// Defaults for a session.
const (
	DefaultWidth      = 800
	DefaultHeight     = 500
	DefaultTimeLimit  = 120 // Seconds
	DefaultMaxBullets = 5
	DefaultKillScore  = 10
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid game config")

// Config holds the tunable rules of a session.
type Config struct {
	Playfield  object.Playfield
	TimeLimit  int // Session length in seconds; the game ends once elapsed exceeds it
	MaxBullets int // Live bullet cap
	KillScore  int // Points per destroyed enemy
}

// DefaultConfig returns the standard 800x500, 120 second rules.
func DefaultConfig() Config {
	return Config{
		Playfield:  object.Playfield{Width: DefaultWidth, Height: DefaultHeight},
		TimeLimit:  DefaultTimeLimit,
		MaxBullets: DefaultMaxBullets,
		KillScore:  DefaultKillScore,
	}
}

// LoadConfig returns the default config overridden by INVADERS_WIDTH,
// INVADERS_HEIGHT and INVADERS_TIME_LIMIT.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	cfg.Playfield.Width = config.GetEnvInt("INVADERS_WIDTH", cfg.Playfield.Width)
	cfg.Playfield.Height = config.GetEnvInt("INVADERS_HEIGHT", cfg.Playfield.Height)
	cfg.TimeLimit = config.GetEnvInt("INVADERS_TIME_LIMIT", cfg.TimeLimit)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that enemies can spawn and the ship fits on the playfield.
func (c Config) Validate() error {
	minWidth := 2*object.EnemySpawnMargin + 1
	if c.Playfield.Width < minWidth {
		return fmt.Errorf("%w: playfield width %d, need at least %d", ErrInvalidConfig, c.Playfield.Width, minWidth)
	}
	minHeight := int(object.ShipHeight) * 2
	if c.Playfield.Height < minHeight {
		return fmt.Errorf("%w: playfield height %d, need at least %d", ErrInvalidConfig, c.Playfield.Height, minHeight)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit %d must be positive", ErrInvalidConfig, c.TimeLimit)
	}
	if c.MaxBullets <= 0 {
		return fmt.Errorf("%w: bullet cap %d must be positive", ErrInvalidConfig, c.MaxBullets)
	}
	return nil
}
