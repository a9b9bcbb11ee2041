package driven

import (
	"context"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

// Catalog retrieves product metadata from the storage shards.
type Catalog interface {
	// FetchCard resolves the product's shard and downloads its card document.
	FetchCard(ctx context.Context, productID int64) (*domain.ProductCard, error)

	// FetchPrices returns the product's prices.
	// Unknown prices are nil fields, not errors.
	FetchPrices(ctx context.Context, productID int64) (domain.Prices, error)

	// PhotoURLs returns the photo links for a card.
	PhotoURLs(card domain.ProductCard) []string
}

// ShardCache remembers which storage shard serves a volume.
type ShardCache interface {
	// Get returns the shard for vol, or domain.ErrNotFound.
	Get(ctx context.Context, vol int64) (string, error)

	// Put records the shard for vol.
	Put(ctx context.Context, vol int64, basket string) error

	// Delete forgets the shard for vol.
	Delete(ctx context.Context, vol int64) error
}
