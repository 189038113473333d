package conversation

import "sync"

// Registry hands out the per-session turn lock. The lock replaces the
// original boolean-flag convention with an explicit mutex: at most one turn
// runs per session, and an overlapping request is rejected rather than
// queued.
type Registry struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewRegistry builds an empty lock registry.
func NewRegistry() *Registry {
	return &Registry{active: make(map[string]struct{})}
}

// TryAcquire takes the turn lock for a session. It returns a release
// function and true on success, or nil and false when a turn is already in
// flight for that session. Releasing removes the session's entry, so the
// registry only ever holds in-flight sessions.
func (r *Registry) TryAcquire(sessionID string) (func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.active[sessionID]; busy {
		return nil, false
	}
	r.active[sessionID] = struct{}{}

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.active, sessionID)
	}, true
}

// InFlight reports how many sessions currently hold a turn lock.
func (r *Registry) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}
