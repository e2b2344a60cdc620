package authoring

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

const defaultSessionTTL = 2 * time.Hour

// Registry keeps live sessions by id so consecutive requests of one dialog
// reach the same Session.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[uuid.UUID]*Session
}

// NewRegistry creates a registry that expires sessions idle for longer than ttl.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Registry{
		ttl:      ttl,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Put registers a session.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

// Get returns the session with the id. Sessions of other users are reported
// as not found.
func (r *Registry) Get(userID, sessionID uuid.UUID) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[sessionID]
	r.mu.Unlock()

	if !ok || s.OwnerID() != userID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// Delete unregisters a session.
func (r *Registry) Delete(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle since before now minus the TTL.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
