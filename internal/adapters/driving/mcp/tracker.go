package mcp

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
)

// Run states reported by rank_status.
const (
	stateRunning   = "running"
	stateCompleted = "completed"
	stateCancelled = "cancelled"
	stateFailed    = "failed"
)

// rankRun holds the latest visible state of one rank job.
type rankRun struct {
	mu        sync.RWMutex
	now       func() time.Time
	sessionID string
	product   string
	state     string
	text      string
	report    *domain.Report
	errText   string
	startedAt time.Time
	updatedAt time.Time
}

// RunSnapshot is a point-in-time copy of a rank job's state.
type RunSnapshot struct {
	SessionID string         `json:"session_id"`
	Product   string         `json:"product"`
	State     string         `json:"state"`
	Progress  string         `json:"progress"`
	Report    *domain.Report `json:"report,omitempty"`
	Error     string         `json:"error,omitempty"`
	StartedAt time.Time      `json:"started_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Update implements driving.ProgressSink by keeping the latest text.
func (r *rankRun) Update(_ context.Context, text string, _ bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	r.updatedAt = r.now()
	return nil
}

func (r *rankRun) finish(result driving.RankJobResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report = result.Report
	r.updatedAt = r.now()

	switch {
	case result.Err != nil:
		r.state = stateFailed
		r.errText = result.Err.Error()
	case result.Report != nil && result.Report.Status == domain.ReportCancelled:
		r.state = stateCancelled
	default:
		r.state = stateCompleted
	}
}

func (r *rankRun) snapshot() RunSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RunSnapshot{
		SessionID: r.sessionID,
		Product:   r.product,
		State:     r.state,
		Progress:  r.text,
		Report:    r.report,
		Error:     r.errText,
		StartedAt: r.startedAt,
		UpdatedAt: r.updatedAt,
	}
}

// tracker keeps the most recent run per session id.
// Nothing is persisted; entries live as long as the server.
type tracker struct {
	mu   sync.RWMutex
	now  func() time.Time
	runs map[string]*rankRun
}

func newTracker(now func() time.Time) *tracker {
	return &tracker{
		now:  now,
		runs: make(map[string]*rankRun),
	}
}

// prepare creates an unpublished run; it becomes visible via publish.
func (t *tracker) prepare(sessionID, product string) *rankRun {
	started := t.now()
	return &rankRun{
		now:       t.now,
		sessionID: sessionID,
		product:   product,
		state:     stateRunning,
		startedAt: started,
		updatedAt: started,
	}
}

func (t *tracker) publish(run *rankRun) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runs[run.sessionID] = run
}

func (t *tracker) get(sessionID string) (RunSnapshot, bool) {
	t.mu.RLock()
	run, ok := t.runs[sessionID]
	t.mu.RUnlock()
	if !ok {
		return RunSnapshot{}, false
	}
	return run.snapshot(), true
}

func (t *tracker) list() []RunSnapshot {
	t.mu.RLock()
	snapshots := make([]RunSnapshot, 0, len(t.runs))
	for _, run := range t.runs {
		snapshots = append(snapshots, run.snapshot())
	}
	t.mu.RUnlock()

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].StartedAt.Before(snapshots[j].StartedAt)
	})
	return snapshots
}
