package services

import (
	"time"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService registers live searches and cancels them on request.
type SessionService struct {
	registry driven.SessionRegistry
	now      func() time.Time
}

// NewSessionService creates a new session service backed by registry.
func NewSessionService(registry driven.SessionRegistry) *SessionService {
	return &SessionService{
		registry: registry,
		now:      time.Now,
	}
}

// Register creates a token for a new search under key.
// A key with a live search is rejected with domain.ErrSearchInProgress.
func (s *SessionService) Register(key string, targetID int64) (*domain.CancelToken, error) {
	token := domain.NewCancelToken()
	session := domain.Session{
		Key:       key,
		TargetID:  targetID,
		Token:     token,
		StartedAt: s.now(),
	}

	if err := s.registry.Register(session); err != nil {
		return nil, err
	}

	logger.Debug("Registered search session %q for product %d", key, targetID)
	return token, nil
}

// Cancel sets the token of the live search for key and forgets it.
// The running search observes the token at its next checkpoint.
func (s *SessionService) Cancel(key string) bool {
	session, ok := s.registry.Get(key)
	if !ok {
		return false
	}

	session.Token.Cancel()
	s.registry.Remove(key, session.Token)

	logger.Info("Cancelled search session %q", key)
	return true
}

// IsActive reports whether key has a live search.
func (s *SessionService) IsActive(key string) bool {
	_, ok := s.registry.Get(key)
	return ok
}

// Finish removes the entry for key if it still belongs to token.
func (s *SessionService) Finish(key string, token *domain.CancelToken) {
	if token == nil {
		return
	}
	if s.registry.Remove(key, token) {
		logger.Debug("Finished search session %q", key)
	}
}
