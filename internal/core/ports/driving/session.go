package driving

import "github.com/custodia-labs/wbrank/internal/core/domain"

// SessionService exposes search registration and cancellation to callers.
type SessionService interface {
	// Register starts tracking a search for key and returns its token.
	// Returns domain.ErrSearchInProgress if key already has a live search.
	Register(key string, targetID int64) (*domain.CancelToken, error)

	// Cancel signals the live search for key.
	// Returns false if no search is active.
	Cancel(key string) bool

	// IsActive reports whether key has a live search.
	IsActive(key string) bool

	// Finish discards the registry entry for key if it still holds token.
	Finish(key string, token *domain.CancelToken)
}
