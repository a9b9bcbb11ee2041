package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidProductURL indicates the product link has no recognisable id.
	ErrInvalidProductURL = errors.New("invalid product url")

	// ErrSearchInProgress indicates a search is already running for the session.
	ErrSearchInProgress = errors.New("search in progress")

	// ErrNoKeywords indicates keyword extraction produced nothing to search for.
	ErrNoKeywords = errors.New("no keywords to search")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Upstream Errors.

	// ErrNetwork indicates a connection failure, timeout or non-success status.
	ErrNetwork = errors.New("network failure")

	// ErrParse indicates a malformed upstream response body.
	ErrParse = errors.New("parse failure")

	// ErrChannel indicates the progress channel rejected an update.
	// It is never fatal to a search.
	ErrChannel = errors.New("progress channel failure")

	// ErrShardNotFound indicates no storage shard serves the product card.
	ErrShardNotFound = errors.New("storage shard not found")
)
