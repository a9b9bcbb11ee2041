package services

import (
	"context"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// progressReporter throttles updates to a rate-limited progress channel.
type progressReporter struct {
	sink     driving.ProgressSink
	interval int
}

// due reports whether page gets an update: the first page and every
// interval-th page.
func (r progressReporter) due(page int) bool {
	if r.interval < 1 {
		return page == 1
	}
	return page == 1 || page%r.interval == 0
}

// maybeReport sends an update for view if one is due.
// Sink failures are logged and swallowed. Reports whether an update was sent.
func (r progressReporter) maybeReport(ctx context.Context, view domain.ProgressView) bool {
	if r.sink == nil || !r.due(view.Page) {
		return false
	}

	if err := r.sink.Update(ctx, domain.RenderProgress(view), true); err != nil {
		logger.Warn("Failed to update progress for keyword %q, page %d: %v", view.Keyword, view.Page, err)
		return false
	}
	return true
}
