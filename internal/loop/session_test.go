package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/profile"
)

func newTestSession(t *testing.T, opts Options) (*Session, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	opts.TermSizeFunc = func() (int, int, error) { return 80, 25, nil }
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	s := NewSession(bufio.NewReader(strings.NewReader("")), out, opts)
	return s, out
}

func startSession(t *testing.T, s *Session) {
	t.Helper()
	s.handleInput(time.Now(), input.Input{Text: []rune("ada"), Enter: true})
	if s.game.Phase() != game.PhasePlaying {
		t.Fatalf("phase = %v after submitting the menu", s.game.Phase())
	}
	s.dispatch()
}

func render(t *testing.T, s *Session, out *bytes.Buffer, now time.Time) string {
	t.Helper()
	out.Reset()
	if err := s.drawFrame(now); err != nil {
		t.Fatalf("drawFrame() error = %v", err)
	}
	return out.String()
}

func TestMenuEnterStartsGame(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	s.handleInput(time.Now(), input.Input{Enter: true})
	if s.game.Phase() != game.PhaseMenu {
		t.Fatal("started without a name")
	}

	startSession(t, s)
	if s.game.Player() != "ada" {
		t.Fatalf("player = %q", s.game.Player())
	}
}

func TestStartRemembersProfile(t *testing.T) {
	store := profile.NewStore(filepath.Join(t.TempDir(), "profile.yaml"))
	s, _ := newTestSession(t, Options{Profile: store})

	s.handleInput(time.Now(), input.Input{Text: []rune("ada")})
	s.handleInput(time.Now(), input.Input{Tab: true, Text: []rune("hard")})
	s.handleInput(time.Now(), input.Input{Enter: true})

	p, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "ada" || p.Level != "hard" {
		t.Fatalf("saved profile = %+v", p)
	}

	next, _ := newTestSession(t, Options{Profile: store})
	if name, level := next.menu.Values(); name != "ada" || level != "hard" {
		t.Fatalf("prefilled %q, %q from profile", name, level)
	}

	ssh, _ := newTestSession(t, Options{Profile: store, PlayerName: "bob"})
	if name, _ := ssh.menu.Values(); name != "bob" {
		t.Fatalf("explicit name lost to profile: %q", name)
	}
}

func TestFireAndPauseKeys(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	startSession(t, s)
	now := time.Now()

	s.handleInput(now, input.Input{Fire: 3})
	if n := len(s.game.Snapshot().Bullets); n != 3 {
		t.Fatalf("%d bullets, want 3", n)
	}

	s.handleInput(now, input.Input{Pause: true})
	if !s.game.Paused() {
		t.Fatal("pause key did not pause")
	}
	s.handleInput(now, input.Input{Fire: 1})
	if n := len(s.game.Snapshot().Bullets); n != 3 {
		t.Fatalf("fired while paused: %d bullets", n)
	}

	s.handleInput(now, input.Input{Pause: true})
	if s.game.Phase() != game.PhasePlaying {
		t.Fatal("pause key did not resume")
	}
}

func TestSteerEmulatesKeyUp(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	startSession(t, s)
	now := time.Now()
	vx := func() float64 { return s.game.Ship().VX }

	s.handleInput(now, input.Input{Left: true})
	if vx() >= 0 {
		t.Fatalf("VX = %v after left", vx())
	}
	s.handleInput(now, input.Input{})
	if vx() != 0 {
		t.Fatalf("VX = %v after releasing left", vx())
	}

	s.handleInput(now, input.Input{Right: true})
	s.handleInput(now, input.Input{Right: true, Left: true})
	if vx() >= 0 {
		t.Fatalf("newest key should win: VX = %v", vx())
	}
	s.handleInput(now, input.Input{Right: true})
	if vx() <= 0 {
		t.Fatalf("VX = %v after releasing left with right held", vx())
	}
	s.handleInput(now, input.Input{})
	if vx() != 0 {
		t.Fatalf("VX = %v after releasing right", vx())
	}
}

func TestRestartWaitsForDelay(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	startSession(t, s)

	for i := 0; i <= game.DefaultTimeLimit; i++ {
		s.game.TickSecond()
	}
	s.dispatch()
	if !s.game.Over() {
		t.Fatal("game not over after the time limit")
	}

	s.handleInput(time.Now(), input.Input{Fire: 1})
	if !s.game.Over() {
		t.Fatal("restarted inside the restart delay")
	}

	s.handleInput(time.Now().Add(2*restartDelay), input.Input{Enter: true})
	if s.game.Phase() != game.PhasePlaying {
		t.Fatalf("phase = %v after restart", s.game.Phase())
	}
}

func TestQuitKeys(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	s.handleInput(time.Now(), input.Input{Quit: true, Text: []rune("q")})
	if !s.running {
		t.Fatal("q quit from the menu instead of typing")
	}

	startSession(t, s)
	s.handleInput(time.Now(), input.Input{Quit: true})
	if s.running {
		t.Fatal("q did not quit while playing")
	}

	s2, _ := newTestSession(t, Options{})
	s2.handleInput(time.Now(), input.Input{Interrupt: true})
	if s2.running {
		t.Fatal("ctrl+c did not quit from the menu")
	}
}

func TestScreens(t *testing.T) {
	s, out := newTestSession(t, Options{})
	now := time.Now()

	menu := render(t, s, out, now)
	if !strings.Contains(menu, "Name ") || !strings.Contains(menu, "Level") {
		t.Fatalf("menu screen missing fields: %q", menu)
	}

	startSession(t, s)
	s.game.Step()
	playing := render(t, s, out, now)
	if !strings.Contains(playing, "Time: 00:00:00") || !strings.Contains(playing, "Score: 0") {
		t.Fatalf("HUD missing clock or score: %q", playing)
	}
	if !strings.Contains(playing, "\033[2J") {
		t.Fatal("screen change did not clear the terminal")
	}

	s.handleInput(now, input.Input{Pause: true})
	if paused := render(t, s, out, now); !strings.Contains(paused, "PAUSED") {
		t.Fatalf("paused panel missing: %q", paused)
	}
	s.handleInput(now, input.Input{Pause: true})

	for i := 0; i <= game.DefaultTimeLimit; i++ {
		s.game.TickSecond()
	}
	s.dispatch()
	over := render(t, s, out, now)
	if !strings.Contains(over, "Final score: 0") || !strings.Contains(over, "Time is up!") {
		t.Fatalf("game over screen incomplete: %q", over)
	}
}

func TestShutdownCountdown(t *testing.T) {
	s, out := newTestSession(t, Options{})
	startSession(t, s)

	s.beginShutdown()
	if !s.game.Paused() {
		t.Fatal("game kept running during shutdown")
	}
	if got := render(t, s, out, time.Now()); !strings.Contains(got, "SERVER SHUTTING DOWN") {
		t.Fatalf("shutdown screen missing: %q", got)
	}

	s.handleInput(time.Now(), input.Input{Pause: true})
	if !s.game.Paused() {
		t.Fatal("keys other than quit handled during shutdown")
	}

	s.tickShutdown(5 * time.Second)
	if !s.running {
		t.Fatal("disconnected before the countdown ended")
	}
	s.tickShutdown(6 * time.Second)
	if s.running {
		t.Fatal("still running after the countdown")
	}
}

func TestObserversSeeEvents(t *testing.T) {
	var seen []game.EventType
	obs := game.ObserverFunc(func(e game.Event) { seen = append(seen, e.Type) })
	s, _ := newTestSession(t, Options{Observers: []game.Observer{obs}})

	startSession(t, s)
	s.handleInput(time.Now(), input.Input{Fire: 1})
	s.dispatch()

	if len(seen) != 2 || seen[0] != game.EventStarted || seen[1] != game.EventFired {
		t.Fatalf("observed %v, want start then fire", seen)
	}
}

func TestParticlesBurnOutAndFreeze(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	startSession(t, s)

	s.explode(100, 100, 5, 100)
	s.handleInput(time.Now(), input.Input{Pause: true})
	s.updateParticles(time.Second)
	if len(s.particles) != 5 {
		t.Fatalf("%d particles while paused, want 5", len(s.particles))
	}

	s.handleInput(time.Now(), input.Input{Pause: true})
	s.updateParticles(time.Second)
	if len(s.particles) != 0 {
		t.Fatalf("%d particles after their lifetime", len(s.particles))
	}
}

func TestInactivity(t *testing.T) {
	s, out := newTestSession(t, Options{Inactivity: true})
	now := time.Now()

	s.lastInput = now.Add(-100 * time.Second)
	s.trackActivity(now, input.Input{})
	if !s.inactive {
		t.Fatal("no warning after 100 idle seconds")
	}
	if got := render(t, s, out, now); !strings.Contains(got, "INACTIVITY WARNING") {
		t.Fatalf("warning screen missing: %q", got)
	}

	s.trackActivity(now, input.Input{Pressed: []byte{'x'}})
	if s.inactive {
		t.Fatal("warning kept after a key press")
	}

	s.lastInput = now.Add(-130 * time.Second)
	s.trackActivity(now, input.Input{})
	if s.running {
		t.Fatal("idle player not disconnected")
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(200, 60)
	if w != 160 || h != 50 || col != 20 || row != 5 {
		t.Fatalf("clampTermSize(200, 60) = %d %d %d %d", w, h, col, row)
	}
	w, h, col, row = clampTermSize(80, 24)
	if w != 80 || h != 24 || col != 0 || row != 0 {
		t.Fatalf("clampTermSize(80, 24) = %d %d %d %d", w, h, col, row)
	}
}

func runAsync(ctx context.Context, r io.Reader, opts Options) <-chan error {
	done := make(chan error, 1)
	opts.TermSizeFunc = func() (int, int, error) { return 80, 25, nil }
	go func() {
		done <- Run(ctx, bufio.NewReader(r), io.Discard, opts)
	}()
	return done
}

func TestRunEndsWhenInputCloses(t *testing.T) {
	done := runAsync(context.Background(), strings.NewReader(""), Options{})
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after input closed")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, pr, Options{})
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
