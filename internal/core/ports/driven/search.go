package driven

import (
	"context"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

// SearchIndex fetches ranked result pages from the marketplace search.
//
// Callers must call Pace before every FetchPage, including the first.
// Keeping the pause separate lets the caller re-check cancellation after
// the pause and before any network I/O.
type SearchIndex interface {
	// Pace blocks for the fixed inter-request delay.
	// It returns early only if ctx is done.
	Pace(ctx context.Context) error

	// FetchPage requests one page (1-based) of results for keyword.
	// Failures wrap domain.ErrNetwork or domain.ErrParse and are never retried.
	FetchPage(ctx context.Context, keyword string, page int) (*domain.ResultPage, error)
}
