package memory

import (
	"sort"
	"sync"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
)

// Ensure SessionRegistry implements the interface.
var _ driven.SessionRegistry = (*SessionRegistry)(nil)

// SessionRegistry is an in-memory implementation of driven.SessionRegistry.
// It holds at most one live session per key.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionRegistry creates a new in-memory session registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]domain.Session),
	}
}

// Register inserts a session unless its key is already live.
func (r *SessionRegistry) Register(session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.Key]; ok {
		return domain.ErrSearchInProgress
	}
	r.sessions[session.Key] = session
	return nil
}

// Get returns the live session for key.
func (r *SessionRegistry) Get(key string) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[key]
	return session, ok
}

// Remove deletes the session for key if it holds token.
// A nil token removes unconditionally.
func (r *SessionRegistry) Remove(key string, token *domain.CancelToken) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[key]
	if !ok {
		return false
	}
	if token != nil && session.Token != token {
		return false
	}
	delete(r.sessions, key)
	return true
}

// List returns all live sessions ordered by start time.
func (r *SessionRegistry) List() []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.Before(result[j].StartedAt)
	})
	return result
}
