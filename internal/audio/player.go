// Package audio plays synthesized sound effects in reaction to game events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/invaders/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes effects and the background loop into the speaker. Until
// Init succeeds it only tracks what would play.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	background  *beep.Ctrl
	initialized bool
}

// NewPlayer creates a silent player. Call Init to open the speaker.
func NewPlayer() *Player {
	return &Player{
		rate:  sampleRate,
		mixer: &beep.Mixer{},
	}
}

// Init opens the audio device and starts streaming the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything.
func (p *Player) Close() {
	p.withMixer(func() {
		if p.background != nil {
			p.background.Paused = true
		}
		p.mixer.Clear()
		p.background = nil
	})
}

// withMixer runs fn with the mixer locked against the speaker goroutine.
func (p *Player) withMixer(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// Observe maps a game event to sound.
func (p *Player) Observe(e game.Event) {
	switch e.Type {
	case game.EventStarted:
		p.setBackground(true)
	case game.EventResumed:
		p.setBackground(true)
	case game.EventPaused:
		p.setBackground(false)
	case game.EventFired:
		p.play(ShotSound(p.rate))
	case game.EventEnemyDestroyed:
		p.play(ExplosionSound(p.rate))
	case game.EventGameOver:
		p.setBackground(false)
		if e.Reason == game.ReasonCollision {
			p.play(ExplosionSound(p.rate))
		}
		p.play(GameOverSound(p.rate))
	}
}

func (p *Player) play(s beep.Streamer) {
	p.withMixer(func() {
		p.mixer.Add(s)
	})
}

func (p *Player) setBackground(on bool) {
	p.withMixer(func() {
		if p.background == nil {
			if !on {
				return
			}
			p.background = &beep.Ctrl{Streamer: BackgroundMusic(p.rate)}
			p.mixer.Add(p.background)
			return
		}
		p.background.Paused = !on
	})
}

// BackgroundPlaying reports whether the background loop is audible.
func (p *Player) BackgroundPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.background != nil && !p.background.Paused
}

// Active returns the number of streamers in the mix, background included.
func (p *Player) Active() int {
	var n int
	p.withMixer(func() {
		n = p.mixer.Len()
	})
	return n
}
