package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/invaders/internal/game"
)

const testRate = beep.SampleRate(44100)

// drain streams s to the end and returns all samples.
func drain(t *testing.T, s beep.Streamer, limit int) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for len(out) < limit {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatalf("streamer produced more than %d samples", limit)
	return nil
}

func TestSweepLengthAndRange(t *testing.T) {
	d := 50 * time.Millisecond
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveNoise} {
		samples := drain(t, NewSweep(440, 220, d, wave, testRate), 1<<20)
		if len(samples) != testRate.N(d) {
			t.Fatalf("wave %d: %d samples, want %d", wave, len(samples), testRate.N(d))
		}
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d: sample %d = %v", wave, i, s)
			}
		}
	}
}

func TestEnvelopeFadesAndTruncates(t *testing.T) {
	d := 20 * time.Millisecond
	long := NewSweep(300, 300, time.Second, WaveSquare, testRate)
	samples := drain(t, NewEnvelope(long, d, 5*time.Millisecond, 5*time.Millisecond, testRate), 1<<20)

	if len(samples) != testRate.N(d) {
		t.Fatalf("%d samples, want %d", len(samples), testRate.N(d))
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, want silence at attack start", samples[0][0])
	}
	last := samples[len(samples)-1][0]
	if math.Abs(last) > 0.01 {
		t.Errorf("last sample = %v, want near silence after release", last)
	}
	mid := samples[len(samples)/2][0]
	if math.Abs(mid) != 1 {
		t.Errorf("sustain sample = %v, want full square amplitude", mid)
	}
}

func TestEffectsEnd(t *testing.T) {
	effects := map[string]beep.Streamer{
		"shot":      ShotSound(testRate),
		"game over": GameOverSound(testRate),
	}
	for name, s := range effects {
		samples := drain(t, s, testRate.N(2*time.Second))
		if len(samples) == 0 {
			t.Errorf("%s produced no samples", name)
		}
	}
}

func TestExplosionIsAudible(t *testing.T) {
	buf := make([][2]float64, testRate.N(100*time.Millisecond))
	n, _ := ExplosionSound(testRate).Stream(buf)

	var peak float64
	for _, s := range buf[:n] {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak == 0 {
		t.Fatal("explosion is silent")
	}
}

func TestBackgroundMusicIsEndless(t *testing.T) {
	s := BackgroundMusic(testRate)
	buf := make([][2]float64, 4096)
	for i := 0; i < 100; i++ {
		n, ok := s.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("background stopped after %d buffers", i)
		}
	}
}

func TestPlayerFollowsGameEvents(t *testing.T) {
	p := NewPlayer()

	p.Observe(game.Event{Type: game.EventStarted})
	if !p.BackgroundPlaying() {
		t.Fatal("background not playing after start")
	}

	p.Observe(game.Event{Type: game.EventFired})
	p.Observe(game.Event{Type: game.EventEnemyDestroyed})
	if got := p.Active(); got != 3 {
		t.Fatalf("%d streamers in the mix, want background plus two effects", got)
	}

	p.Observe(game.Event{Type: game.EventPaused})
	if p.BackgroundPlaying() {
		t.Fatal("background still playing while paused")
	}
	p.Observe(game.Event{Type: game.EventResumed})
	if !p.BackgroundPlaying() {
		t.Fatal("background not resumed")
	}

	p.Observe(game.Event{Type: game.EventGameOver, Reason: game.ReasonTimeUp})
	if p.BackgroundPlaying() {
		t.Fatal("background still playing after game over")
	}

	p.Close()
	if p.Active() != 0 || p.BackgroundPlaying() {
		t.Fatal("Close left sounds in the mix")
	}
}

func TestPausedBeforeStartStaysSilent(t *testing.T) {
	p := NewPlayer()
	p.Observe(game.Event{Type: game.EventPaused})
	if p.Active() != 0 {
		t.Fatal("pause before start added a streamer")
	}
}
