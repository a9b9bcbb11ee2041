package keywords

import (
	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
)

// NewExtractor returns the extractor selected by settings.
// The llm strategy without a configured service degrades to rules.
func NewExtractor(settings domain.KeywordSettings, llm driven.LLMService) driven.KeywordExtractor {
	rules := NewRuleExtractor(settings)
	if settings.Strategy == domain.KeywordStrategyLLM && llm != nil {
		return NewLLMExtractor(llm, rules, domain.DefaultLLMKeywordCount)
	}
	return rules
}
