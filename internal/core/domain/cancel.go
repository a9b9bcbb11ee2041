package domain

import "sync/atomic"

// CancelToken is a shared cooperative cancellation signal.
// The caller may set it; a running search only reads it.
// Always pass it by pointer so both sides observe the same flag.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken returns an unset token.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel sets the token. Setting an already set token is a no-op.
// It reports whether this call changed the state.
func (t *CancelToken) Cancel() bool {
	return t.cancelled.CompareAndSwap(false, true)
}

// Cancelled reports whether the token has been set.
// A nil token is never cancelled.
func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	return t.cancelled.Load()
}
