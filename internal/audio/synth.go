package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator wave shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// sweep is an oscillator whose frequency moves linearly from one value to
// another over its duration.
type sweep struct {
	from, to float64
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
	phase    float64
	position int
	total    int
}

// NewSweep returns a finite streamer gliding from one frequency to another.
// Pass the same frequency twice for a steady tone.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:  from,
		to:    to,
		wave:  wave,
		rate:  rate,
		rng:   rand.New(rand.NewSource(int64(from*1000 + to))),
		total: rate.N(duration),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.position >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.position >= s.total {
			return i, true
		}

		var val float64
		switch s.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			val = 1
			if s.phase >= 0.5 {
				val = -1
			}
		case WaveNoise:
			val = s.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(s.position) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope fades a streamer in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release. The result ends
// after duration even if s is longer.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if left := e.total - e.position; len(samples) > left {
		samples = samples[:left]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = math.Min(vol, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s by a linear gain. Zero or less is silent.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Effect durations.
const (
	ShotDuration      = 90 * time.Millisecond
	ExplosionDuration = 350 * time.Millisecond
	gameOverNote      = 220 * time.Millisecond
)

// ShotSound is a short descending blip.
func ShotSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(1400, 500, ShotDuration, WaveSquare, rate)
	return withVolume(NewEnvelope(osc, ShotDuration, 5*time.Millisecond, 40*time.Millisecond, rate), 0.15)
}

// ExplosionSound is a burst of decaying noise under a falling tone.
func ExplosionSound(rate beep.SampleRate) beep.Streamer {
	noise := NewEnvelope(NewSweep(1, 1, ExplosionDuration, WaveNoise, rate),
		ExplosionDuration, 2*time.Millisecond, 300*time.Millisecond, rate)
	thump := NewEnvelope(NewSweep(180, 40, ExplosionDuration, WaveSine, rate),
		ExplosionDuration, 2*time.Millisecond, 250*time.Millisecond, rate)
	return withVolume(beep.Mix(noise, thump), 0.25)
}

// GameOverSound is three falling notes.
func GameOverSound(rate beep.SampleRate) beep.Streamer {
	notes := []float64{392, 311, 196}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		osc := NewSweep(f, f, gameOverNote, WaveSquare, rate)
		parts = append(parts, NewEnvelope(osc, gameOverNote, 10*time.Millisecond, 80*time.Millisecond, rate))
	}
	return withVolume(beep.Seq(parts...), 0.2)
}

// backgroundLoop is an endless bass arpeggio.
type backgroundLoop struct {
	rate     beep.SampleRate
	notes    []float64
	noteLen  int
	position int
	phase    float64
}

// BackgroundMusic returns an endless quiet bass line.
func BackgroundMusic(rate beep.SampleRate) beep.Streamer {
	return &backgroundLoop{
		rate:    rate,
		notes:   []float64{55, 55, 82.41, 73.42, 65.41, 65.41, 82.41, 61.74},
		noteLen: rate.N(250 * time.Millisecond),
	}
}

func (b *backgroundLoop) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		step := b.position / b.noteLen
		inNote := b.position % b.noteLen
		freq := b.notes[step%len(b.notes)]

		// Short decay on each note keeps the line percussive.
		decay := 1 - float64(inNote)/float64(b.noteLen)
		val := 0.08 * decay * math.Sin(2*math.Pi*b.phase)
		samples[i][0] = val
		samples[i][1] = val

		b.phase += freq / float64(b.rate)
		b.phase -= math.Floor(b.phase)
		b.position++
		if b.position == b.noteLen*len(b.notes) {
			b.position = 0
		}
	}
	return len(samples), true
}

func (b *backgroundLoop) Err() error { return nil }
