package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Well-known card option names.
const (
	OptionComposition = "Состав"
	OptionCountry     = "Страна производства"
)

var productURLPattern = regexp.MustCompile(`/catalog/(\d+)/detail\.aspx`)

// ParseProductID extracts a product id from a catalog link.
// A bare numeric id is accepted as well.
func ParseProductID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidProductURL)
	}

	digits := raw
	if m := productURLPattern.FindStringSubmatch(raw); m != nil {
		digits = m[1]
	}

	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidProductURL, raw)
	}
	return id, nil
}

// ShardLocation addresses a product within the storage shards.
type ShardLocation struct {
	// Vol is id / 100000.
	Vol int64

	// Part is id / 1000.
	Part int64
}

// LocateProduct computes the shard location for a product id.
func LocateProduct(id int64) ShardLocation {
	return ShardLocation{Vol: id / 100000, Part: id / 1000}
}

// ProductOption is a named card attribute.
type ProductOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductCard is the catalog metadata document for a product.
type ProductCard struct {
	// ID is the product identifier (article).
	ID int64 `json:"id"`

	// Title is the product name.
	Title string `json:"title"`

	// Brand is the seller's brand name.
	Brand string `json:"brand"`

	// Description is the free-form product description.
	Description string `json:"description"`

	// PhotoCount is the number of product photos.
	PhotoCount int `json:"photo_count"`

	// Options holds the card attributes in catalog order.
	Options []ProductOption `json:"options,omitempty"`

	// Compositions holds the composition component names.
	Compositions []string `json:"compositions,omitempty"`

	// Basket is the storage shard that served the card (e.g. "basket-12").
	Basket string `json:"basket"`
}

// Option returns the first option value with the given name.
func (c ProductCard) Option(name string) (string, bool) {
	for _, opt := range c.Options {
		if opt.Name == name {
			return opt.Value, true
		}
	}
	return "", false
}

// Prices holds the product's prices in roubles.
// A nil field means the price is unknown.
type Prices struct {
	Old *float64 `json:"old_price,omitempty"`
	New *float64 `json:"new_price,omitempty"`
}

// ProductInfo is the aggregated metadata presented for a product.
type ProductInfo struct {
	Card        ProductCard `json:"card"`
	Photos      []string    `json:"photos,omitempty"`
	Composition string      `json:"composition"`
	Country     string      `json:"country"`
	Prices      Prices      `json:"prices"`
	Keywords    []string    `json:"keywords"`
}
