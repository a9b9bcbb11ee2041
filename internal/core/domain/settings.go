package domain

import "time"

const unknownDescription = "Unknown"

// Upstream endpoint defaults.
const (
	// DefaultSearchBaseURL is the marketplace full-text search endpoint.
	// Callers append &query= and &page=.
	DefaultSearchBaseURL = "https://search.wb.ru/exactmatch/ru/common/v13/search?" +
		"ab_testing=false&appType=1&curr=rub&dest=-1257786&hide_dtype=13&" +
		"lang=ru&resultset=catalog&sort=popular&spp=30&suppressSpellcheck=false"

	// DefaultPriceBaseURL is the card detail endpoint used for prices.
	DefaultPriceBaseURL = "https://card.wb.ru/cards/v2/detail?" +
		"appType=1&curr=rub&dest=-1257786&spp=30&ab_testing=false&lang=ru"

	// DefaultUserAgent is sent with every upstream request.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0.4472.124"

	// DefaultRequestDelay is the fixed pause before every upstream request.
	DefaultRequestDelay = time.Second

	// DefaultRequestTimeout bounds a single upstream request.
	DefaultRequestTimeout = 5 * time.Second

	// DefaultMaxBasket is the highest storage shard probed for new products.
	DefaultMaxBasket = 30

	// DefaultKeywordLimit caps rule-based keyword extraction.
	DefaultKeywordLimit = 10

	// DefaultLLMKeywordCount is the number of keyphrases requested from the LLM.
	DefaultLLMKeywordCount = 5
)

// KeywordStrategy selects how keywords are derived from product metadata.
type KeywordStrategy string

// Available keyword strategies.
const (
	// KeywordStrategyRules uses title, option and composition words.
	KeywordStrategyRules KeywordStrategy = "rules"

	// KeywordStrategyLLM asks a language model for keyphrases.
	KeywordStrategyLLM KeywordStrategy = "llm"
)

// IsValid returns true if the strategy is recognised.
func (s KeywordStrategy) IsValid() bool {
	switch s {
	case KeywordStrategyRules, KeywordStrategyLLM:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s KeywordStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s KeywordStrategy) Description() string {
	switch s {
	case KeywordStrategyRules:
		return "Rules (title, options, composition)"
	case KeywordStrategyLLM:
		return "LLM (keyphrases from title and description)"
	default:
		return unknownDescription
	}
}

// SearchSettings holds ranking behaviour configuration.
type SearchSettings struct {
	// BaseURL is the search endpoint template.
	BaseURL string

	// PageBound is the maximum number of pages scanned per keyword.
	PageBound int

	// UpdateInterval is the page interval between progress reports.
	UpdateInterval int

	// Delay is the fixed pause before each page request.
	Delay time.Duration

	// Timeout bounds a single page request.
	Timeout time.Duration
}

// CatalogSettings holds product metadata retrieval configuration.
type CatalogSettings struct {
	// PriceBaseURL is the price endpoint.
	PriceBaseURL string

	// MaxBasket is the highest shard number probed.
	MaxBasket int

	// CacheShards enables the persistent shard cache.
	CacheShards bool
}

// KeywordSettings holds keyword extraction configuration.
type KeywordSettings struct {
	// Strategy selects the extractor.
	Strategy KeywordStrategy

	// Limit caps the number of keywords.
	Limit int

	// StopWords are ignored during rule-based extraction (lowercase).
	StopWords []string

	// Options lists the card option names mined for keywords.
	Options []string
}

// LLMSettings holds LLM provider configuration (Ollama).
type LLMSettings struct {
	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	return l.BaseURL != "" && l.Model != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	Search   SearchSettings
	Catalog  CatalogSettings
	Keywords KeywordSettings
	LLM      LLMSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; keyword extraction uses rules.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			BaseURL:        DefaultSearchBaseURL,
			PageBound:      DefaultPageBound,
			UpdateInterval: DefaultUpdateInterval,
			Delay:          DefaultRequestDelay,
			Timeout:        DefaultRequestTimeout,
		},
		Catalog: CatalogSettings{
			PriceBaseURL: DefaultPriceBaseURL,
			MaxBasket:    DefaultMaxBasket,
			CacheShards:  true,
		},
		Keywords: KeywordSettings{
			Strategy:  KeywordStrategyRules,
			Limit:     DefaultKeywordLimit,
			StopWords: DefaultStopWords(),
			Options:   DefaultKeywordOptions(),
		},
		LLM: LLMSettings{},
	}
}

// DefaultKeywordOptions returns the card options mined for keywords.
func DefaultKeywordOptions() []string {
	return []string{"Особенности продукта", "Назначение киселя", OptionComposition}
}

// DefaultStopWords returns the Russian stop words ignored during extraction.
func DefaultStopWords() []string {
	return []string{
		"и", "с", "для", "в", "на", "от", "по", "не", "при", "а", "но", "или", "что",
		"это", "все", "как", "так", "же", "бы", "к", "у", "о", "из", "за", "до",
		"под", "над", "без", "со", "про", "чтобы", "если", "когда", "где", "очень",
		"каждый", "любой", "другой", "этот", "тот", "самый", "какой", "какая", "какое",
	}
}

// AllKeywordStrategies returns all available keyword strategies.
func AllKeywordStrategies() []KeywordStrategy {
	return []KeywordStrategy{KeywordStrategyRules, KeywordStrategyLLM}
}
