package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
)

// mockProductService implements driving.ProductService for CLI tests.
type mockProductService struct {
	info *domain.ProductInfo
	err  error
}

func (m *mockProductService) Get(_ context.Context, _ string) (*domain.ProductInfo, error) {
	return m.info, m.err
}

// mockRankJobService implements driving.RankJobService for CLI tests.
// Run replays progress through the sink and returns the canned report.
type mockRankJobService struct {
	progress []string
	report   *domain.Report
	err      error
	lastReq  driving.RankJobRequest
}

func (m *mockRankJobService) Start(
	ctx context.Context, req driving.RankJobRequest, sink driving.ProgressSink,
) (<-chan driving.RankJobResult, error) {
	results := make(chan driving.RankJobResult, 1)
	report, err := m.Run(ctx, req, sink)
	results <- driving.RankJobResult{Report: report, Err: err}
	close(results)
	return results, nil
}

func (m *mockRankJobService) Run(
	ctx context.Context, req driving.RankJobRequest, sink driving.ProgressSink,
) (*domain.Report, error) {
	m.lastReq = req
	for _, text := range m.progress {
		_ = sink.Update(ctx, text, true)
	}
	return m.report, m.err
}

// mockSessionService implements driving.SessionService for CLI tests.
type mockSessionService struct {
	cancelled []string
}

func (m *mockSessionService) Register(_ string, _ int64) (*domain.CancelToken, error) {
	return domain.NewCancelToken(), nil
}

func (m *mockSessionService) Cancel(key string) bool {
	m.cancelled = append(m.cancelled, key)
	return true
}

func (m *mockSessionService) IsActive(_ string) bool { return false }

func (m *mockSessionService) Finish(_ string, _ *domain.CancelToken) {}

// mockSettingsService implements driving.SettingsService for CLI tests.
type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	strategy    domain.KeywordStrategy
	llmURL      string
	llmModel    string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) SetKeywordStrategy(strategy domain.KeywordStrategy) error {
	if !strategy.IsValid() {
		return domain.ErrInvalidInput
	}
	m.strategy = strategy
	m.settings.Keywords.Strategy = strategy
	return nil
}

func (m *mockSettingsService) SetLLM(baseURL, model string) error {
	if model == "" {
		return errors.New("model is required")
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	m.llmURL, m.llmModel = baseURL, model
	m.settings.LLM = domain.LLMSettings{BaseURL: baseURL, Model: model}
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// setupTestServices installs mocks and returns a restore function.
func setupTestServices() (*Services, func()) {
	old := &Services{
		Product:       productService,
		Jobs:          rankJobService,
		Sessions:      sessionService,
		Settings:      settingsService,
		ConfigWatcher: configWatcher,
	}

	price := 349.0
	mocks := &Services{
		Product: &mockProductService{
			info: &domain.ProductInfo{
				Card:        domain.ProductCard{ID: 146972802, Title: "Кисель овсяный", Brand: "Леовит"},
				Composition: "овсяная мука",
				Country:     "Россия",
				Prices:      domain.Prices{New: &price},
				Photos:      []string{"https://basket-10.wbbasket.ru/vol1469/part146972/146972802/images/big/1.webp"},
				Keywords:    []string{"кисель", "овсяный"},
			},
		},
		Jobs: &mockRankJobService{
			progress: []string{"🔎 Searching 1 keywords...", "✅ Search complete!"},
			report: &domain.Report{
				TargetID: 146972802,
				Outcomes: []domain.RankOutcome{{Keyword: "кисель", Kind: domain.OutcomeFound, Rank: 12, Page: 1}},
				Lines:    []string{`  1. Keyword "кисель":`},
				Status:   domain.ReportCompleted,
			},
		},
		Sessions: &mockSessionService{},
		Settings: newMockSettingsService(),
	}
	SetServices(mocks)

	return mocks, func() { SetServices(old) }
}
