package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchBaseURL     = "search.base_url"
	keySearchPageBound   = "search.page_bound"
	keySearchInterval    = "search.update_interval"
	keySearchDelayMS     = "search.delay_ms"
	keySearchTimeoutMS   = "search.timeout_ms"
	keyCatalogPriceURL   = "catalog.price_base_url"
	keyCatalogMaxBasket  = "catalog.max_basket"
	keyCatalogCache      = "catalog.cache_shards"
	keyKeywordsStrategy  = "keywords.strategy"
	keyKeywordsLimit     = "keywords.limit"
	keyKeywordsStopWords = "keywords.stop_words"
	keyKeywordsOptions   = "keywords.options"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			BaseURL:        s.getString(keySearchBaseURL, defaults.Search.BaseURL),
			PageBound:      s.getPositiveInt(keySearchPageBound, defaults.Search.PageBound),
			UpdateInterval: s.getPositiveInt(keySearchInterval, defaults.Search.UpdateInterval),
			Delay:          s.getMillis(keySearchDelayMS, defaults.Search.Delay),
			Timeout:        s.getMillis(keySearchTimeoutMS, defaults.Search.Timeout),
		},
		Catalog: domain.CatalogSettings{
			PriceBaseURL: s.getString(keyCatalogPriceURL, defaults.Catalog.PriceBaseURL),
			MaxBasket:    s.getPositiveInt(keyCatalogMaxBasket, defaults.Catalog.MaxBasket),
			CacheShards:  s.getBool(keyCatalogCache, defaults.Catalog.CacheShards),
		},
		Keywords: domain.KeywordSettings{
			Strategy:  s.getStrategy(defaults.Keywords.Strategy),
			Limit:     s.getPositiveInt(keyKeywordsLimit, defaults.Keywords.Limit),
			StopWords: s.getStringSlice(keyKeywordsStopWords, defaults.Keywords.StopWords),
			Options:   s.getStringSlice(keyKeywordsOptions, defaults.Keywords.Options),
		},
		LLM: domain.LLMSettings{
			Model:   s.configStore.GetString(keyLLMModel),
			BaseURL: s.configStore.GetString(keyLLMBaseURL),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keySearchBaseURL, settings.Search.BaseURL},
		{keySearchPageBound, settings.Search.PageBound},
		{keySearchInterval, settings.Search.UpdateInterval},
		{keySearchDelayMS, int(settings.Search.Delay / time.Millisecond)},
		{keySearchTimeoutMS, int(settings.Search.Timeout / time.Millisecond)},
		{keyCatalogPriceURL, settings.Catalog.PriceBaseURL},
		{keyCatalogMaxBasket, settings.Catalog.MaxBasket},
		{keyCatalogCache, settings.Catalog.CacheShards},
		{keyKeywordsStrategy, settings.Keywords.Strategy.String()},
		{keyKeywordsLimit, settings.Keywords.Limit},
		{keyKeywordsStopWords, settings.Keywords.StopWords},
		{keyKeywordsOptions, settings.Keywords.Options},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// SetKeywordStrategy updates the keyword extraction strategy.
func (s *SettingsService) SetKeywordStrategy(strategy domain.KeywordStrategy) error {
	if !strategy.IsValid() {
		return fmt.Errorf("%w: keyword strategy %q", domain.ErrInvalidInput, strategy)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Keywords.Strategy = strategy
	return s.Save(settings)
}

// SetLLM configures the Ollama endpoint and model.
func (s *SettingsService) SetLLM(baseURL, model string) error {
	if model == "" {
		return fmt.Errorf("%w: llm model is required", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	settings.LLM.BaseURL = baseURL
	settings.LLM.Model = model

	return s.Save(settings)
}

// Validate checks the current settings are usable together.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Keywords.Strategy == domain.KeywordStrategyLLM && !settings.LLM.IsConfigured() {
		return fmt.Errorf("keyword strategy %q requires an LLM: %w",
			settings.Keywords.Strategy.Description(), domain.ErrLLMUnavailable)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Millisecond
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getStrategy(defaultVal domain.KeywordStrategy) domain.KeywordStrategy {
	val := s.configStore.GetString(keyKeywordsStrategy)
	if val == "" {
		return defaultVal
	}
	strategy := domain.KeywordStrategy(val)
	if !strategy.IsValid() {
		return defaultVal
	}
	return strategy
}
