// Package session keeps the currently valid token of every logged-in user.
package session

import (
	"sync"
	"time"
)

type entry struct {
	token     string
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Registry maps a user id to the last token issued for that user. Issuing a
// new token replaces the previous one, so each user holds one live session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int64]entry
	now      func() time.Time
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int64]entry),
		now:      time.Now,
	}
}

// Store records token as the current session of userID. Expired sessions
// of other users are pruned on the way.
func (r *Registry) Store(userID int64, token string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, e := range r.sessions {
		if e.expired(now) {
			delete(r.sessions, id)
		}
	}
	r.sessions[userID] = entry{token: token, expiresAt: expiresAt}
}

// Current returns the live token of userID, or "" when none was issued or it expired.
func (r *Registry) Current(userID int64) string {
	r.mu.RLock()
	e, ok := r.sessions[userID]
	r.mu.RUnlock()
	if !ok {
		return ""
	}

	if e.expired(r.now()) {
		r.mu.Lock()
		if cur, ok := r.sessions[userID]; ok && cur.token == e.token {
			delete(r.sessions, userID)
		}
		r.mu.Unlock()
		return ""
	}
	return e.token
}

// Revoke drops the session of userID if token is still its current one.
// It reports whether anything was removed.
func (r *Registry) Revoke(userID int64, token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[userID]
	if !ok || e.token != token {
		return false
	}
	delete(r.sessions, userID)
	return true
}

func (r *Registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
