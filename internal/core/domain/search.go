package domain

import "fmt"

// Search defaults.
const (
	// DefaultPageBound is the maximum number of result pages scanned per keyword.
	DefaultPageBound = 100

	// DefaultUpdateInterval is the page interval between progress reports.
	DefaultUpdateInterval = 5
)

// SearchRequest describes one keyword search for a target product.
// It is immutable once a search starts.
type SearchRequest struct {
	// TargetID is the product identifier being ranked.
	TargetID int64

	// Keyword is the search phrase.
	Keyword string

	// PageBound is the maximum number of pages to scan (>= 1).
	PageBound int

	// UpdateInterval is the page interval between progress reports (>= 1).
	UpdateInterval int

	// KeywordIndex is the 1-based position of Keyword within a multi-keyword run.
	KeywordIndex int

	// KeywordCount is the number of keywords in the run.
	KeywordCount int
}

// WithDefaults returns a copy of the request with zero values replaced by defaults.
func (r SearchRequest) WithDefaults() SearchRequest {
	if r.PageBound <= 0 {
		r.PageBound = DefaultPageBound
	}
	if r.UpdateInterval <= 0 {
		r.UpdateInterval = DefaultUpdateInterval
	}
	if r.KeywordIndex <= 0 {
		r.KeywordIndex = 1
	}
	if r.KeywordCount < r.KeywordIndex {
		r.KeywordCount = r.KeywordIndex
	}
	return r
}

// Validate checks the request is usable.
func (r SearchRequest) Validate() error {
	if r.TargetID <= 0 {
		return fmt.Errorf("%w: target id must be positive", ErrInvalidInput)
	}
	if r.Keyword == "" {
		return fmt.Errorf("%w: keyword is required", ErrInvalidInput)
	}
	if r.PageBound < 1 {
		return fmt.Errorf("%w: page bound must be at least 1", ErrInvalidInput)
	}
	if r.UpdateInterval < 1 {
		return fmt.Errorf("%w: update interval must be at least 1", ErrInvalidInput)
	}
	return nil
}

// ResultProduct is a single entry on a search result page.
type ResultProduct struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Brand string `json:"brand,omitempty"`
}

// ResultPage is one page of ranked search results.
// Total is only meaningful on the first page.
type ResultPage struct {
	Products []ResultProduct `json:"products"`
	Total    int             `json:"total"`
}

// OutcomeKind classifies a terminal search outcome.
type OutcomeKind string

// Terminal outcome kinds.
const (
	OutcomeFound     OutcomeKind = "found"
	OutcomeNotFound  OutcomeKind = "not_found"
	OutcomeCancelled OutcomeKind = "cancelled"
	OutcomeFailed    OutcomeKind = "failed"
)

// StopReason records why the pagination loop stopped.
// NotFound outcomes are split into exhausted and page_bound.
type StopReason string

// Stop reasons.
const (
	StopMatched   StopReason = "matched"
	StopExhausted StopReason = "exhausted"
	StopPageBound StopReason = "page_bound"
	StopCancelled StopReason = "cancelled"
	StopFailed    StopReason = "failed"
)

// RankOutcome is the terminal result of ranking one keyword.
// No further pages are fetched once an outcome is produced.
type RankOutcome struct {
	// Keyword is the searched phrase.
	Keyword string `json:"keyword"`

	// Kind is the outcome classification.
	Kind OutcomeKind `json:"kind"`

	// Rank is the 1-based global position (Found only).
	Rank int `json:"rank,omitempty"`

	// Page is the page the product was found on (Found only).
	Page int `json:"page,omitempty"`

	// Total is the result count captured from the first page.
	Total int `json:"total"`

	// PagesFetched is the number of pages requested from the index.
	PagesFetched int `json:"pages_fetched"`

	// Reason is the loop stop reason.
	Reason StopReason `json:"reason"`

	// Err is the failure cause (Failed only).
	Err error `json:"-"`

	// Error is the failure cause as text, kept for serialised reports.
	Error string `json:"error,omitempty"`
}

// Found builds a Found outcome.
func Found(rank, page, total int) RankOutcome {
	return RankOutcome{Kind: OutcomeFound, Rank: rank, Page: page, Total: total, Reason: StopMatched}
}

// NotFound builds a NotFound outcome with the given stop reason.
func NotFound(total int, reason StopReason) RankOutcome {
	return RankOutcome{Kind: OutcomeNotFound, Total: total, Reason: reason}
}

// Cancelled builds a Cancelled outcome.
func Cancelled() RankOutcome {
	return RankOutcome{Kind: OutcomeCancelled, Reason: StopCancelled}
}

// Failed builds a Failed outcome.
func Failed(err error) RankOutcome {
	outcome := RankOutcome{Kind: OutcomeFailed, Reason: StopFailed, Err: err}
	if err != nil {
		outcome.Error = err.Error()
	}
	return outcome
}

// IsError reports whether the outcome is rendered as an error line.
func (o RankOutcome) IsError() bool {
	return o.Kind == OutcomeCancelled || o.Kind == OutcomeFailed
}

// ReportStatus is the overall status of a multi-keyword run.
type ReportStatus string

// Report statuses.
const (
	ReportCompleted ReportStatus = "completed"
	ReportCancelled ReportStatus = "cancelled"
)

// Report is the final result of a multi-keyword run.
type Report struct {
	// TargetID is the ranked product.
	TargetID int64 `json:"target_id"`

	// Outcomes holds one outcome per processed keyword, in order.
	Outcomes []RankOutcome `json:"outcomes"`

	// Lines holds the rendered summary line for each outcome.
	Lines []string `json:"lines"`

	// Status is Completed unless the run was cancelled.
	Status ReportStatus `json:"status"`
}
