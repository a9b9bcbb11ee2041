package driving

import (
	"context"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

// ProgressSink receives throttled progress updates during a search.
// It is supplied by the caller (CLI, TUI, MCP). A returned error is
// logged and never aborts the search.
type ProgressSink interface {
	// Update replaces the visible progress text.
	// cancellable reports whether a cancel affordance should be offered.
	Update(ctx context.Context, text string, cancellable bool) error
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(ctx context.Context, text string, cancellable bool) error

// Update calls f.
func (f ProgressFunc) Update(ctx context.Context, text string, cancellable bool) error {
	return f(ctx, text, cancellable)
}

// RankOptions configures a multi-keyword run.
type RankOptions struct {
	// PageBound overrides the configured page bound when > 0.
	PageBound int

	// UpdateInterval overrides the configured progress interval when > 0.
	UpdateInterval int
}

// RankService ranks a product within search results.
type RankService interface {
	// Search ranks the target for a single keyword.
	// token and sink may be nil. The returned outcome is always terminal.
	Search(ctx context.Context, req domain.SearchRequest, token *domain.CancelToken, sink ProgressSink) domain.RankOutcome

	// RankAll ranks the target for each keyword in order, stopping early
	// once token is set.
	RankAll(
		ctx context.Context,
		targetID int64,
		keywords []string,
		opts RankOptions,
		token *domain.CancelToken,
		sink ProgressSink,
	) domain.Report
}
