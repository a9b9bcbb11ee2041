package mcp

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
)

// mockJobService is a mock implementation of driving.RankJobService.
// Each Start hands its sink to the test through sinks and waits for a
// result on release.
type mockJobService struct {
	mu       sync.Mutex
	requests []driving.RankJobRequest
	err      error
	sinks    chan driving.ProgressSink
	release  chan driving.RankJobResult
}

func newMockJobService() *mockJobService {
	return &mockJobService{
		sinks:   make(chan driving.ProgressSink, 1),
		release: make(chan driving.RankJobResult, 1),
	}
}

func (m *mockJobService) Start(
	_ context.Context, req driving.RankJobRequest, sink driving.ProgressSink,
) (<-chan driving.RankJobResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	results := make(chan driving.RankJobResult, 1)
	m.sinks <- sink
	go func() {
		defer close(results)
		results <- <-m.release
	}()
	return results, nil
}

func (m *mockJobService) Run(
	ctx context.Context, req driving.RankJobRequest, sink driving.ProgressSink,
) (*domain.Report, error) {
	results, err := m.Start(ctx, req, sink)
	if err != nil {
		return nil, err
	}
	result := <-results
	return result.Report, result.Err
}

func (m *mockJobService) lastRequest() driving.RankJobRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	active    map[string]bool
	cancelled []string
}

func (m *mockSessionService) Register(_ string, _ int64) (*domain.CancelToken, error) {
	return domain.NewCancelToken(), nil
}

func (m *mockSessionService) Cancel(key string) bool {
	m.cancelled = append(m.cancelled, key)
	return m.active[key]
}

func (m *mockSessionService) IsActive(key string) bool {
	return m.active[key]
}

func (m *mockSessionService) Finish(_ string, _ *domain.CancelToken) {}

// mockProductService is a mock implementation of driving.ProductService.
type mockProductService struct {
	info *domain.ProductInfo
	err  error
}

func (m *mockProductService) Get(_ context.Context, _ string) (*domain.ProductInfo, error) {
	return m.info, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return nil }

func (m *mockSettingsService) SetKeywordStrategy(_ domain.KeywordStrategy) error { return nil }

func (m *mockSettingsService) SetLLM(_, _ string) error { return nil }

func (m *mockSettingsService) Validate() error { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}
