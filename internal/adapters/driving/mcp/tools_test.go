package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
)

func ptr(v float64) *float64 { return &v }

func TestServer_handleProductInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("returns product info", func(t *testing.T) {
		product := &mockProductService{
			info: &domain.ProductInfo{
				Card:        domain.ProductCard{ID: 146972802, Title: "Кисель овсяный", Brand: "Леовит"},
				Composition: "овсяная мука",
				Country:     "Россия",
				Prices:      domain.Prices{Old: ptr(500), New: ptr(349.5)},
				Keywords:    []string{"кисель", "овсяный"},
			},
		}
		server := newTestServer(t, &Ports{
			Jobs: newMockJobService(), Sessions: &mockSessionService{}, Product: product,
		})

		_, output, err := server.handleProductInfo(ctx, nil, ProductInput{Product: "146972802"})

		require.NoError(t, err)
		assert.Equal(t, int64(146972802), output.ID)
		assert.Equal(t, "Кисель овсяный", output.Title)
		assert.Equal(t, "Леовит", output.Brand)
		assert.Equal(t, "Россия", output.Country)
		require.NotNil(t, output.NewPrice)
		assert.InDelta(t, 349.5, *output.NewPrice, 0.001)
		assert.Equal(t, []string{"кисель", "овсяный"}, output.Keywords)
	})

	t.Run("returns error without product service", func(t *testing.T) {
		server := newTestServer(t, &Ports{Jobs: newMockJobService(), Sessions: &mockSessionService{}})

		_, _, err := server.handleProductInfo(ctx, nil, ProductInput{Product: "1"})

		assert.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("returns lookup error", func(t *testing.T) {
		product := &mockProductService{err: domain.ErrInvalidProductURL}
		server := newTestServer(t, &Ports{
			Jobs: newMockJobService(), Sessions: &mockSessionService{}, Product: product,
		})

		_, _, err := server.handleProductInfo(ctx, nil, ProductInput{Product: "bad"})

		assert.ErrorIs(t, err, domain.ErrInvalidProductURL)
	})
}

func TestServer_handleStartRank(t *testing.T) {
	ctx := context.Background()

	t.Run("generates session id when omitted", func(t *testing.T) {
		jobs := newMockJobService()
		server := newTestServer(t, &Ports{Jobs: jobs, Sessions: &mockSessionService{}})

		_, output, err := server.handleStartRank(ctx, nil, StartRankInput{Product: "146972802"})

		require.NoError(t, err)
		_, parseErr := uuid.Parse(output.SessionID)
		assert.NoError(t, parseErr)
		assert.Equal(t, stateRunning, output.State)
		assert.Equal(t, output.SessionID, jobs.lastRequest().SessionKey)
		jobs.release <- driving.RankJobResult{Report: &domain.Report{Status: domain.ReportCompleted}}
	})

	t.Run("passes keywords and options through", func(t *testing.T) {
		jobs := newMockJobService()
		server := newTestServer(t, &Ports{Jobs: jobs, Sessions: &mockSessionService{}})

		_, _, err := server.handleStartRank(ctx, nil, StartRankInput{
			Product:   "146972802",
			Keywords:  []string{"кисель"},
			SessionID: "chat-1",
			Pages:     20,
			Interval:  2,
		})

		require.NoError(t, err)
		req := jobs.lastRequest()
		assert.Equal(t, "chat-1", req.SessionKey)
		assert.Equal(t, "146972802", req.ProductRef)
		assert.Equal(t, []string{"кисель"}, req.Keywords)
		assert.Equal(t, driving.RankOptions{PageBound: 20, UpdateInterval: 2}, req.Options)
		jobs.release <- driving.RankJobResult{Report: &domain.Report{Status: domain.ReportCompleted}}
	})

	t.Run("busy session is rejected and not tracked", func(t *testing.T) {
		jobs := newMockJobService()
		jobs.err = domain.ErrSearchInProgress
		server := newTestServer(t, &Ports{Jobs: jobs, Sessions: &mockSessionService{}})

		_, _, err := server.handleStartRank(ctx, nil, StartRankInput{Product: "1", SessionID: "chat-1"})

		assert.ErrorIs(t, err, domain.ErrSearchInProgress)
		_, ok := server.tracker.get("chat-1")
		assert.False(t, ok)
	})

	t.Run("status follows progress and final report", func(t *testing.T) {
		jobs := newMockJobService()
		server := newTestServer(t, &Ports{Jobs: jobs, Sessions: &mockSessionService{}})

		_, _, err := server.handleStartRank(ctx, nil, StartRankInput{Product: "1", SessionID: "chat-1"})
		require.NoError(t, err)

		sink := <-jobs.sinks
		require.NoError(t, sink.Update(ctx, "page 5", true))

		_, status, err := server.handleRankStatus(ctx, nil, SessionInput{SessionID: "chat-1"})
		require.NoError(t, err)
		assert.Equal(t, stateRunning, status.State)
		assert.Equal(t, "page 5", status.Progress)

		report := &domain.Report{TargetID: 1, Status: domain.ReportCancelled}
		jobs.release <- driving.RankJobResult{Report: report}

		require.Eventually(t, func() bool {
			_, status, err = server.handleRankStatus(ctx, nil, SessionInput{SessionID: "chat-1"})
			return err == nil && status.State == stateCancelled
		}, time.Second, 10*time.Millisecond)
		assert.Equal(t, report, status.Report)
	})

	t.Run("job error marks run failed", func(t *testing.T) {
		jobs := newMockJobService()
		server := newTestServer(t, &Ports{Jobs: jobs, Sessions: &mockSessionService{}})

		_, _, err := server.handleStartRank(ctx, nil, StartRankInput{Product: "1", SessionID: "chat-2"})
		require.NoError(t, err)
		<-jobs.sinks
		jobs.release <- driving.RankJobResult{Err: errors.New("catalog down")}

		require.Eventually(t, func() bool {
			snapshot, ok := server.tracker.get("chat-2")
			return ok && snapshot.State == stateFailed
		}, time.Second, 10*time.Millisecond)
		snapshot, _ := server.tracker.get("chat-2")
		assert.Equal(t, "catalog down", snapshot.Error)
	})
}

func TestServer_handleRankStatus_UnknownSession(t *testing.T) {
	server := newTestServer(t, &Ports{Jobs: newMockJobService(), Sessions: &mockSessionService{}})

	_, _, err := server.handleRankStatus(context.Background(), nil, SessionInput{SessionID: "nope"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleCancelRank(t *testing.T) {
	sessions := &mockSessionService{active: map[string]bool{"chat-1": true}}
	server := newTestServer(t, &Ports{Jobs: newMockJobService(), Sessions: sessions})

	t.Run("active session", func(t *testing.T) {
		_, output, err := server.handleCancelRank(context.Background(), nil, SessionInput{SessionID: "chat-1"})
		require.NoError(t, err)
		assert.True(t, output.Cancelled)
	})

	t.Run("idle session", func(t *testing.T) {
		_, output, err := server.handleCancelRank(context.Background(), nil, SessionInput{SessionID: "chat-9"})
		require.NoError(t, err)
		assert.False(t, output.Cancelled)
	})

	assert.Equal(t, []string{"chat-1", "chat-9"}, sessions.cancelled)
}

func TestServer_rankOptions(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Search.PageBound = 40
	settings.Search.UpdateInterval = 4

	tests := []struct {
		name     string
		ports    *Ports
		pages    int
		interval int
		expected driving.RankOptions
	}{
		{
			name:     "no settings service keeps input",
			ports:    &Ports{},
			expected: driving.RankOptions{},
		},
		{
			name:     "settings fill missing values",
			ports:    &Ports{Settings: &mockSettingsService{settings: &settings}},
			expected: driving.RankOptions{PageBound: 40, UpdateInterval: 4},
		},
		{
			name:     "input wins over settings",
			ports:    &Ports{Settings: &mockSettingsService{settings: &settings}},
			pages:    10,
			interval: 1,
			expected: driving.RankOptions{PageBound: 10, UpdateInterval: 1},
		},
		{
			name:     "settings error keeps input",
			ports:    &Ports{Settings: &mockSettingsService{err: errors.New("broken")}},
			pages:    7,
			expected: driving.RankOptions{PageBound: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.ports.Jobs = newMockJobService()
			tt.ports.Sessions = &mockSessionService{}
			server := newTestServer(t, tt.ports)

			assert.Equal(t, tt.expected, server.rankOptions(tt.pages, tt.interval))
		})
	}
}
