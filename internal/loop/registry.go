package loop

import (
	"sync"
	"time"
)

const shutdownPollInterval = 100 * time.Millisecond

// Handle is a running session's entry in a Registry.
type Handle struct {
	ID       int
	User     string
	shutdown chan struct{}
}

// ShutdownCh is closed when the server starts shutting down.
func (h *Handle) ShutdownCh() <-chan struct{} {
	return h.shutdown
}

// Registry tracks live sessions so the server can warn them before it
// stops. Sessions share nothing else.
type Registry struct {
	mu       sync.Mutex
	sessions map[int]*Handle
	nextID   int
	closing  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int]*Handle),
		nextID:   1,
	}
}

// Register adds a session. Sessions registered during shutdown are told
// to stop straight away.
func (r *Registry) Register(user string) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := &Handle{
		ID:       r.nextID,
		User:     user,
		shutdown: make(chan struct{}),
	}
	r.nextID++
	if r.closing {
		close(h.shutdown)
	}
	r.sessions[h.ID] = h
	return h
}

// Unregister removes a session.
func (r *Registry) Unregister(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, h.ID)
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Shutdown notifies every session and waits until they have all
// unregistered or the timeout passes. Returns the number still running.
func (r *Registry) Shutdown(timeout time.Duration) int {
	r.mu.Lock()
	if !r.closing {
		r.closing = true
		for _, h := range r.sessions {
			close(h.shutdown)
		}
	}
	r.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(shutdownPollInterval)
	defer ticker.Stop()

	for {
		if n := r.Count(); n == 0 {
			return 0
		}
		select {
		case <-deadline:
			return r.Count()
		case <-ticker.C:
		}
	}
}
