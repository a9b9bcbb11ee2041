package driving

import (
	"context"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

// ProductService retrieves product metadata and keywords.
type ProductService interface {
	// Get resolves a product link or id into aggregated product info.
	Get(ctx context.Context, ref string) (*domain.ProductInfo, error)
}
