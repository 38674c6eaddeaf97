package loop

import (
	"testing"
	"time"
)

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestRegistryShutdownWaitsForSessions(t *testing.T) {
	r := NewRegistry()
	a := r.Register("ada")
	b := r.Register("bob")
	if a.ID == b.ID {
		t.Fatal("duplicate session ids")
	}
	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}

	for _, h := range []*Handle{a, b} {
		go func(h *Handle) {
			<-h.ShutdownCh()
			r.Unregister(h)
		}(h)
	}

	if left := r.Shutdown(5 * time.Second); left != 0 {
		t.Fatalf("Shutdown() left %d sessions", left)
	}
}

func TestRegistryShutdownTimesOut(t *testing.T) {
	r := NewRegistry()
	h := r.Register("stuck")

	start := time.Now()
	if left := r.Shutdown(150 * time.Millisecond); left != 1 {
		t.Fatalf("Shutdown() left %d sessions, want 1", left)
	}
	if time.Since(start) < 150*time.Millisecond {
		t.Fatal("Shutdown returned before the timeout")
	}
	if !closed(h.ShutdownCh()) {
		t.Fatal("session was not notified")
	}

	late := r.Register("late")
	if !closed(late.ShutdownCh()) {
		t.Fatal("session registered during shutdown was not notified")
	}

	// A second shutdown must not close the channels again.
	r.Unregister(h)
	r.Unregister(late)
	if left := r.Shutdown(time.Second); left != 0 {
		t.Fatalf("second Shutdown() left %d", left)
	}
}
