package game

// EventType identifies something that happened during a command or tick.
type EventType int

const (
	EventStarted        EventType = iota // Session (re)started
	EventPaused                          // Playing -> Paused
	EventResumed                         // Paused -> Playing
	EventFired                           // A bullet was spawned
	EventWaveSpawned                     // A new enemy wave replaced an empty field
	EventEnemyDestroyed                  // A bullet destroyed an enemy
	EventGameOver                        // Session ended
)

// GameOverReason tells why a session ended.
type GameOverReason int

const (
	ReasonNone GameOverReason = iota
	ReasonCollision
	ReasonTimeUp
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonCollision:
		return "collision"
	case ReasonTimeUp:
		return "time up"
	default:
		return "none"
	}
}

// Event is emitted by the Game for adapters (sound, effects, logging) to
// react to. X and Y are the playfield center of the affected entity.
type Event struct {
	Type     EventType
	X, Y     float64
	ScoreAdd int            // EventEnemyDestroyed
	Score    int            // Score after the event
	Count    int            // EventWaveSpawned: wave size
	Reason   GameOverReason // EventGameOver
}

// Observer reacts to game events, e.g. by playing sounds.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }
