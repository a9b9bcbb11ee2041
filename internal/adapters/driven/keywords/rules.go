package keywords

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// Ensure RuleExtractor implements the interface.
var _ driven.KeywordExtractor = (*RuleExtractor)(nil)

// minWordRunes is the shortest word kept; shorter words are mostly particles.
const minWordRunes = 3

// RuleExtractor derives keywords from card text without external services.
type RuleExtractor struct {
	stopWords map[string]struct{}
	options   []string
	limit     int
}

// NewRuleExtractor creates a rule-based extractor.
// Zero-value settings fields fall back to the domain defaults.
func NewRuleExtractor(settings domain.KeywordSettings) *RuleExtractor {
	stopWords := settings.StopWords
	if stopWords == nil {
		stopWords = domain.DefaultStopWords()
	}
	options := settings.Options
	if options == nil {
		options = domain.DefaultKeywordOptions()
	}
	limit := settings.Limit
	if limit <= 0 {
		limit = domain.DefaultKeywordLimit
	}

	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	return &RuleExtractor{stopWords: set, options: options, limit: limit}
}

// Name identifies the strategy.
func (e *RuleExtractor) Name() string {
	return domain.KeywordStrategyRules.String()
}

// Extract returns title words, then option values, then composition names.
func (e *RuleExtractor) Extract(_ context.Context, card domain.ProductCard) ([]string, error) {
	c := newCollector(e)

	c.addAll(strings.Fields(card.Title))
	for _, name := range e.options {
		for _, opt := range card.Options {
			if opt.Name == name {
				c.addAll(splitOptionValue(opt.Value))
			}
		}
	}
	c.addAll(card.Compositions)

	if len(c.words) == 0 {
		return nil, domain.ErrNoKeywords
	}

	logger.Debug("Rule extraction for %d: %v", card.ID, c.words)
	return c.words, nil
}

// accepts reports whether word passes the stop word and length filters.
func (e *RuleExtractor) accepts(word string) bool {
	if utf8.RuneCountInString(word) < minWordRunes {
		return false
	}
	_, stop := e.stopWords[strings.ToLower(word)]
	return !stop
}

// collector accumulates unique keywords up to the extractor limit.
type collector struct {
	e     *RuleExtractor
	seen  map[string]struct{}
	words []string
}

func newCollector(e *RuleExtractor) *collector {
	return &collector{e: e, seen: make(map[string]struct{})}
}

func (c *collector) addAll(words []string) {
	for _, w := range words {
		if len(c.words) >= c.e.limit {
			return
		}
		c.add(w)
	}
}

func (c *collector) add(word string) {
	word = strings.Trim(strings.TrimSpace(word), ".,:;!?()\"«»")
	if !c.e.accepts(word) {
		return
	}
	key := stem(word)
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}
	c.words = append(c.words, word)
}

// splitOptionValue splits a list-like option value into items.
// Semicolons count as commas; items are separated by a comma and a space,
// so "1,5%" stays whole.
func splitOptionValue(value string) []string {
	value = strings.ReplaceAll(value, ";", ",")
	parts := strings.Split(value, ", ")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// stem reduces a word to its Russian stem so inflected forms dedupe.
// Non-Cyrillic or unstemmable words compare by lowercase form.
func stem(word string) string {
	lower := strings.ToLower(word)
	if strings.ContainsRune(lower, ' ') {
		return lower
	}
	stemmed, err := snowball.Stem(lower, "russian", false)
	if err != nil || stemmed == "" {
		return lower
	}
	return stemmed
}
