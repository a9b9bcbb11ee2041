package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"catalog url", "https://www.wildberries.ru/catalog/12345678/detail.aspx", 12345678, false},
		{"url with query", "https://www.wildberries.ru/catalog/987/detail.aspx?targetUrl=GP", 987, false},
		{"bare id", "12345", 12345, false},
		{"padded bare id", "  42 ", 42, false},
		{"empty", "", 0, true},
		{"no id", "https://www.wildberries.ru/catalog/", 0, true},
		{"text", "socks", 0, true},
		{"zero", "0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProductID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidProductURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocateProduct(t *testing.T) {
	loc := LocateProduct(123456789)

	assert.Equal(t, int64(1234), loc.Vol)
	assert.Equal(t, int64(123456), loc.Part)
}

func TestProductCard_Option(t *testing.T) {
	card := ProductCard{
		Options: []ProductOption{
			{Name: OptionCountry, Value: "Россия"},
			{Name: OptionComposition, Value: "хлопок"},
			{Name: OptionComposition, Value: "ignored duplicate"},
		},
	}

	val, ok := card.Option(OptionComposition)
	assert.True(t, ok)
	assert.Equal(t, "хлопок", val)

	_, ok = card.Option("missing")
	assert.False(t, ok)
}
