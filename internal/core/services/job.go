package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// Ensure RankJobService implements the interface.
var _ driving.RankJobService = (*RankJobService)(nil)

// RankJobService runs a full rank for one caller: session registration,
// product lookup, keyword ranking and the final report.
type RankJobService struct {
	products driving.ProductService
	ranker   driving.RankService
	sessions driving.SessionService
}

// NewRankJobService creates a new rank job service.
func NewRankJobService(
	products driving.ProductService,
	ranker driving.RankService,
	sessions driving.SessionService,
) *RankJobService {
	return &RankJobService{
		products: products,
		ranker:   ranker,
		sessions: sessions,
	}
}

// Start registers the session and runs the job in a goroutine.
// The session is finished on every terminal path.
func (s *RankJobService) Start(
	ctx context.Context, req driving.RankJobRequest, sink driving.ProgressSink,
) (<-chan driving.RankJobResult, error) {
	targetID, err := domain.ParseProductID(req.ProductRef)
	if err != nil {
		return nil, err
	}

	token, err := s.sessions.Register(req.SessionKey, targetID)
	if err != nil {
		return nil, err
	}

	results := make(chan driving.RankJobResult, 1)
	go func() {
		defer close(results)
		defer s.sessions.Finish(req.SessionKey, token)

		report, err := s.run(ctx, req, targetID, token, sink)
		results <- driving.RankJobResult{Report: report, Err: err}
	}()

	return results, nil
}

// Run starts the job and waits for its result.
func (s *RankJobService) Run(
	ctx context.Context, req driving.RankJobRequest, sink driving.ProgressSink,
) (*domain.Report, error) {
	results, err := s.Start(ctx, req, sink)
	if err != nil {
		return nil, err
	}
	result := <-results
	return result.Report, result.Err
}

func (s *RankJobService) run(
	ctx context.Context,
	req driving.RankJobRequest,
	targetID int64,
	token *domain.CancelToken,
	sink driving.ProgressSink,
) (*domain.Report, error) {
	keywords := req.Keywords
	if len(keywords) == 0 {
		notify(ctx, sink, fmt.Sprintf("🔍 Fetching product %d...", targetID), true)

		info, err := s.products.Get(ctx, req.ProductRef)
		if err != nil {
			logger.Error("Rank job %q: product lookup failed: %v", req.SessionKey, err)
			notify(ctx, sink, "❌ Failed to get product information.", false)
			return nil, err
		}
		keywords = info.Keywords
	}

	if len(keywords) == 0 {
		notify(ctx, sink, "❌ No keywords to search for.", false)
		return nil, domain.ErrNoKeywords
	}

	notify(ctx, sink, fmt.Sprintf("🔎 Searching %d keywords...", len(keywords)), true)

	report := s.ranker.RankAll(ctx, targetID, keywords, req.Options, token, sink)
	notify(ctx, sink, domain.RenderReport(report), false)
	return &report, nil
}

// notify sends a status message; failures only affect presentation.
func notify(ctx context.Context, sink driving.ProgressSink, text string, cancellable bool) {
	if sink == nil {
		return
	}
	if err := sink.Update(ctx, text, cancellable); err != nil {
		logger.Warn("Failed to deliver status message: %v", err)
	}
}
