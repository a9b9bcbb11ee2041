package keywords

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// Ensure LLMExtractor implements the interface.
var _ driven.KeywordExtractor = (*LLMExtractor)(nil)

const keyphrasePrompt = `Extract exactly %d search keyphrases (one or two words each, in Russian)
that a shopper would type to find this product on a marketplace.
Reply with one keyphrase per line and nothing else.

Title: %s
Description: %s
`

// maxDescriptionRunes bounds the description sent to the model.
const maxDescriptionRunes = 1500

// LLMExtractor asks a language model for keyphrases.
type LLMExtractor struct {
	llm      driven.LLMService
	fallback driven.KeywordExtractor
	count    int
}

// NewLLMExtractor creates an LLM-backed extractor.
// fallback is used when the model fails or returns nothing; it may be nil.
func NewLLMExtractor(llm driven.LLMService, fallback driven.KeywordExtractor, count int) *LLMExtractor {
	if count <= 0 {
		count = domain.DefaultLLMKeywordCount
	}
	return &LLMExtractor{llm: llm, fallback: fallback, count: count}
}

// Name identifies the strategy.
func (e *LLMExtractor) Name() string {
	return domain.KeywordStrategyLLM.String()
}

// Extract returns up to count keyphrases from title and description.
func (e *LLMExtractor) Extract(ctx context.Context, card domain.ProductCard) ([]string, error) {
	keywords, err := e.generate(ctx, card)
	if err == nil {
		return keywords, nil
	}
	if e.fallback == nil {
		return nil, err
	}

	logger.Warn("LLM keyword extraction failed for %d, using %s: %v", card.ID, e.fallback.Name(), err)
	return e.fallback.Extract(ctx, card)
}

func (e *LLMExtractor) generate(ctx context.Context, card domain.ProductCard) ([]string, error) {
	if e.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	prompt := fmt.Sprintf(keyphrasePrompt, e.count, card.Title, truncateRunes(card.Description, maxDescriptionRunes))
	out, err := e.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   128,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("generate keyphrases with %s: %w", e.llm.ModelName(), err)
	}

	keywords := parseKeyphrases(out, e.count)
	if len(keywords) == 0 {
		return nil, errors.Join(domain.ErrNoKeywords, fmt.Errorf("model %s returned no keyphrases", e.llm.ModelName()))
	}
	return keywords, nil
}

// parseKeyphrases reads one phrase per line, dropping list markers and duplicates.
func parseKeyphrases(out string, limit int) []string {
	seen := make(map[string]struct{})
	var result []string
	for _, line := range strings.Split(out, "\n") {
		phrase := strings.TrimSpace(line)
		phrase = strings.TrimLeft(phrase, "-*•0123456789.) ")
		phrase = strings.Trim(phrase, "\"'«» ")
		if phrase == "" {
			continue
		}
		key := strings.ToLower(phrase)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, phrase)
		if len(result) == limit {
			break
		}
	}
	return result
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
