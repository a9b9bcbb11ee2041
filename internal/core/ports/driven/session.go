package driven

import "github.com/custodia-labs/wbrank/internal/core/domain"

// SessionRegistry tracks live searches by session key.
// Implementations must be safe for concurrent use.
type SessionRegistry interface {
	// Register inserts a session.
	// Returns domain.ErrSearchInProgress if the key already has a live session.
	Register(session domain.Session) error

	// Get returns the live session for key.
	Get(key string) (domain.Session, bool)

	// Remove deletes the session for key if its token is token.
	// A nil token removes unconditionally. Reports whether an entry was removed.
	Remove(key string, token *domain.CancelToken) bool

	// List returns all live sessions.
	List() []domain.Session
}
