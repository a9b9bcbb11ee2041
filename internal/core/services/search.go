package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// Ensure RankService implements the interface.
var _ driving.RankService = (*RankService)(nil)

// searchState is owned by a single Search call.
type searchState struct {
	page    int
	total   int
	fetched int
	prior   []string
}

// RankService walks search result pages to find a product's rank.
// Pages are fetched strictly in order: rank depends on cumulative page
// order and the upstream forbids concurrent requests.
type RankService struct {
	index    driven.SearchIndex
	defaults domain.SearchSettings
}

// NewRankService creates a new rank service.
// Zero page bound or interval in defaults fall back to the domain defaults.
func NewRankService(index driven.SearchIndex, defaults domain.SearchSettings) *RankService {
	return &RankService{
		index:    index,
		defaults: defaults,
	}
}

// Search ranks the target product for a single keyword.
func (s *RankService) Search(
	ctx context.Context, req domain.SearchRequest, token *domain.CancelToken, sink driving.ProgressSink,
) domain.RankOutcome {
	return s.search(ctx, req, token, sink, nil)
}

// RankAll ranks the target for each keyword in extraction order.
// Once the token is set no new keyword is started; the in-flight keyword
// has already returned Cancelled and its line is kept.
func (s *RankService) RankAll(
	ctx context.Context,
	targetID int64,
	keywords []string,
	opts driving.RankOptions,
	token *domain.CancelToken,
	sink driving.ProgressSink,
) domain.Report {
	logger.Section("Rank Execution")
	logger.Debug("Target: %d, keywords: %d", targetID, len(keywords))

	report := domain.Report{
		TargetID: targetID,
		Outcomes: make([]domain.RankOutcome, 0, len(keywords)),
		Lines:    make([]string, 0, len(keywords)),
		Status:   domain.ReportCompleted,
	}

	for i, keyword := range keywords {
		if token.Cancelled() {
			break
		}

		req := domain.SearchRequest{
			TargetID:       targetID,
			Keyword:        keyword,
			PageBound:      opts.PageBound,
			UpdateInterval: opts.UpdateInterval,
			KeywordIndex:   i + 1,
			KeywordCount:   len(keywords),
		}
		outcome := s.search(ctx, req, token, sink, report.Lines)

		report.Outcomes = append(report.Outcomes, outcome)
		report.Lines = append(report.Lines, domain.RenderOutcomeLine(i+1, outcome))
	}

	if token.Cancelled() {
		report.Status = domain.ReportCancelled
	}

	logger.Info("Rank finished: status=%s, keywords processed=%d/%d",
		report.Status, len(report.Outcomes), len(keywords))
	return report
}

func (s *RankService) search(
	ctx context.Context,
	req domain.SearchRequest,
	token *domain.CancelToken,
	sink driving.ProgressSink,
	prior []string,
) domain.RankOutcome {
	req = s.applyDefaults(req).WithDefaults()
	if err := req.Validate(); err != nil {
		outcome := domain.Failed(err)
		outcome.Keyword = req.Keyword
		return outcome
	}

	logger.Info("Searching for %d with keyword %q", req.TargetID, req.Keyword)

	state := &searchState{
		page:  1,
		prior: append([]string(nil), prior...),
	}
	reporter := progressReporter{sink: sink, interval: req.UpdateInterval}

	outcome := s.paginate(ctx, req, state, token, reporter)
	outcome.Keyword = req.Keyword
	outcome.PagesFetched = state.fetched
	return outcome
}

// paginate drives the scan until a terminal outcome is reached.
func (s *RankService) paginate(
	ctx context.Context,
	req domain.SearchRequest,
	state *searchState,
	token *domain.CancelToken,
	reporter progressReporter,
) domain.RankOutcome {
	for state.page <= req.PageBound {
		if token.Cancelled() {
			logger.Info("Search cancelled for %d, keyword %q", req.TargetID, req.Keyword)
			return domain.Cancelled()
		}

		if err := s.index.Pace(ctx); err != nil {
			logger.Warn("Search pacing interrupted for keyword %q: %v", req.Keyword, err)
			return domain.Failed(fmt.Errorf("pace page %d: %w", state.page, err))
		}

		// A cancel requested during the pause must not cost a request.
		if token.Cancelled() {
			logger.Info("Search cancelled for %d, keyword %q before request", req.TargetID, req.Keyword)
			return domain.Cancelled()
		}

		page, err := s.index.FetchPage(ctx, req.Keyword, state.page)
		state.fetched++
		if err != nil {
			logger.Error("Search request failed for keyword %q, page %d: %v", req.Keyword, state.page, err)
			return domain.Failed(fmt.Errorf("fetch page %d: %w", state.page, err))
		}
		if page == nil {
			return domain.Failed(fmt.Errorf("fetch page %d: %w", state.page, errors.New("empty response")))
		}

		// The total is fixed by the first page.
		if state.page == 1 {
			state.total = page.Total
		}

		if len(page.Products) == 0 {
			logger.Info("No products on page %d for keyword %q", state.page, req.Keyword)
			return domain.NotFound(state.total, domain.StopExhausted)
		}

		if rank, ok := ScanPage(page, req.TargetID, state.page); ok {
			logger.Info("Found %d on page %d, position %d", req.TargetID, state.page, rank)
			return domain.Found(rank, state.page, state.total)
		}

		reporter.maybeReport(ctx, domain.ProgressView{
			Keyword:        req.Keyword,
			KeywordIndex:   req.KeywordIndex,
			KeywordCount:   req.KeywordCount,
			Total:          state.total,
			Page:           state.page,
			UpdateInterval: req.UpdateInterval,
			Prior:          state.prior,
		})

		state.page++
	}

	logger.Info("Product %d not found for keyword %q after %d pages", req.TargetID, req.Keyword, req.PageBound)
	return domain.NotFound(state.total, domain.StopPageBound)
}

// applyDefaults fills unset pagination fields from the service configuration.
func (s *RankService) applyDefaults(req domain.SearchRequest) domain.SearchRequest {
	if req.PageBound <= 0 {
		req.PageBound = s.defaults.PageBound
	}
	if req.UpdateInterval <= 0 {
		req.UpdateInterval = s.defaults.UpdateInterval
	}
	return req
}

// ScanPage returns the 1-based global rank of targetID on a page.
// The page size is taken from the page itself: rank = (P-1)*len(products) + i.
// Duplicate ids resolve to the first occurrence.
func ScanPage(page *domain.ResultPage, targetID int64, pageNumber int) (int, bool) {
	if page == nil || pageNumber < 1 {
		return 0, false
	}

	offset := (pageNumber - 1) * len(page.Products)
	for i, product := range page.Products {
		if product.ID == targetID {
			return offset + i + 1, true
		}
	}
	return 0, false
}
