package keywords

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

func kisselCard() domain.ProductCard {
	return domain.ProductCard{
		ID:    12345678,
		Title: "Кисель ягодный для детей",
		Options: []domain.ProductOption{
			{Name: "Особенности продукта", Value: "без консервантов; натуральный"},
			{Name: "Страна производства", Value: "Россия"},
			{Name: domain.OptionComposition, Value: "сахар, крахмал, клюква"},
		},
		Compositions: []string{"сахар", "ароматизатор"},
	}
}

func TestRuleExtractor_Extract_Order(t *testing.T) {
	extractor := NewRuleExtractor(domain.DefaultAppSettings().Keywords)

	keywords, err := extractor.Extract(context.Background(), kisselCard())

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Кисель", "ягодный", "детей",
		"без консервантов", "натуральный",
		"сахар", "крахмал", "клюква",
		"ароматизатор",
	}, keywords)
}

func TestRuleExtractor_Extract_SkipsUnlistedOptions(t *testing.T) {
	extractor := NewRuleExtractor(domain.KeywordSettings{})

	keywords, err := extractor.Extract(context.Background(), kisselCard())

	require.NoError(t, err)
	assert.NotContains(t, keywords, "Россия")
}

func TestRuleExtractor_Extract_StopWordsAndShortWords(t *testing.T) {
	extractor := NewRuleExtractor(domain.KeywordSettings{StopWords: []string{"Натуральный"}})
	card := domain.ProductCard{Title: "Сок из яблок натуральный 1 л"}

	keywords, err := extractor.Extract(context.Background(), card)

	require.NoError(t, err)
	assert.Equal(t, []string{"Сок", "яблок"}, keywords)
}

func TestRuleExtractor_Extract_StemDedupe(t *testing.T) {
	extractor := NewRuleExtractor(domain.KeywordSettings{})
	card := domain.ProductCard{
		Title:   "Кисель овсяный",
		Options: []domain.ProductOption{{Name: "Назначение киселя", Value: "киселя, завтрак"}},
	}

	keywords, err := extractor.Extract(context.Background(), card)

	require.NoError(t, err)
	assert.Equal(t, []string{"Кисель", "овсяный", "завтрак"}, keywords)
}

func TestRuleExtractor_Extract_Limit(t *testing.T) {
	words := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		words = append(words, fmt.Sprintf("слово%02d", i))
	}
	card := domain.ProductCard{Compositions: words}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, domain.DefaultKeywordLimit},
		{"custom", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewRuleExtractor(domain.KeywordSettings{Limit: tt.limit})

			keywords, err := extractor.Extract(context.Background(), card)

			require.NoError(t, err)
			assert.Len(t, keywords, tt.want)
			assert.Equal(t, "слово00", keywords[0])
		})
	}
}

func TestRuleExtractor_Extract_Empty(t *testing.T) {
	extractor := NewRuleExtractor(domain.KeywordSettings{})

	_, err := extractor.Extract(context.Background(), domain.ProductCard{Title: "и в на"})

	assert.ErrorIs(t, err, domain.ErrNoKeywords)
}

func TestRuleExtractor_Name(t *testing.T) {
	assert.Equal(t, "rules", NewRuleExtractor(domain.KeywordSettings{}).Name())
}

func TestSplitOptionValue(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"сахар; крахмал", []string{"сахар", "крахмал"}},
		{"жирность 1,5%, сахар", []string{"жирность 1,5%", "сахар"}},
		{"a, , b", []string{"a", "b"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, splitOptionValue(tt.value))
		})
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, stem("Кисель"), stem("киселя"))
	assert.NotEqual(t, stem("кисель"), stem("сахар"))
	assert.Equal(t, "без консервантов", stem("Без консервантов"))
}
