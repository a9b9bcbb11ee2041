package driving

import "github.com/custodia-labs/wbrank/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetKeywordStrategy updates the keyword extraction strategy.
	SetKeywordStrategy(strategy domain.KeywordStrategy) error

	// SetLLM configures the LLM used by the llm keyword strategy.
	SetLLM(baseURL, model string) error

	// Validate checks the current settings are usable together.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
