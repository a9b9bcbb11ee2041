package domain

import "time"

// Session is a live search registered under a caller-scoped key
// (a chat id, a terminal, an MCP client session).
type Session struct {
	// Key identifies the caller.
	Key string

	// TargetID is the product being ranked.
	TargetID int64

	// Token cancels the search.
	Token *CancelToken

	// StartedAt is when the search was registered.
	StartedAt time.Time
}
