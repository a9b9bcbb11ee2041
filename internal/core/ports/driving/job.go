package driving

import (
	"context"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

// RankJobRequest describes a full rank run for one caller.
type RankJobRequest struct {
	// SessionKey identifies the caller for cancellation.
	SessionKey string

	// ProductRef is a catalog link or bare product id.
	ProductRef string

	// Keywords overrides extraction when non-empty.
	Keywords []string

	// Options configures pagination.
	Options RankOptions
}

// RankJobResult is delivered once a started job reaches a terminal state.
type RankJobResult struct {
	Report *domain.Report
	Err    error
}

// RankJobService runs product lookup, keyword extraction and ranking
// under a registered session.
type RankJobService interface {
	// Start registers the session synchronously and runs the job in the
	// background. The channel receives exactly one result and is then closed.
	// Returns domain.ErrSearchInProgress if the session key is busy.
	Start(ctx context.Context, req RankJobRequest, sink ProgressSink) (<-chan RankJobResult, error)

	// Run is Start followed by waiting for the result.
	Run(ctx context.Context, req RankJobRequest, sink ProgressSink) (*domain.Report, error)
}
