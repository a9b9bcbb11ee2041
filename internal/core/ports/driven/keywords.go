package driven

import (
	"context"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

// KeywordExtractor derives search keywords from product metadata.
type KeywordExtractor interface {
	// Extract returns keywords in priority order.
	Extract(ctx context.Context, card domain.ProductCard) ([]string, error)

	// Name identifies the strategy for logging.
	Name() string
}
