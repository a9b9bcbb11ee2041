package wildberries

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// Ensure CatalogClient implements the interface.
var _ driven.Catalog = (*CatalogClient)(nil)

// CatalogRate is the catalog request rate (requests per second).
const CatalogRate = 1.0

// CatalogConfig configures the catalog client.
type CatalogConfig struct {
	// PriceBaseURL is the price endpoint; "&nm={id}" is appended.
	PriceBaseURL string

	// MaxBasket is the highest shard probed for new volumes.
	MaxBasket int

	// Cache remembers resolved shards. Nil disables caching.
	Cache driven.ShardCache

	// ShardHost builds the base URL of a shard; defaults to https://{basket}.wbbasket.ru.
	ShardHost func(basket string) string

	// Limiter throttles catalog requests; defaults to CatalogRate with burst 1.
	Limiter *rate.Limiter

	// Timeout bounds a single request.
	Timeout time.Duration

	// UserAgent overrides the browser-like default.
	UserAgent string

	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// CatalogClient retrieves product cards and prices.
type CatalogClient struct {
	priceBaseURL string
	maxBasket    int
	cache        driven.ShardCache
	shardHost    func(basket string) string
	limiter      *rate.Limiter
	fetch        *fetcher
}

// cardResponse is the card.json document format.
type cardResponse struct {
	IMTName     string `json:"imt_name"`
	NMID        int64  `json:"nm_id"`
	Description string `json:"description"`
	Selling     struct {
		BrandName string `json:"brand_name"`
	} `json:"selling"`
	Media struct {
		PhotoCount *int `json:"photo_count"`
	} `json:"media"`
	Options []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"options"`
	Compositions []struct {
		Name string `json:"name"`
	} `json:"compositions"`
}

// priceResponse is the card detail response format.
type priceResponse struct {
	Data struct {
		Products []struct {
			Sizes []struct {
				Price struct {
					Basic   int64 `json:"basic"`
					Product int64 `json:"product"`
				} `json:"price"`
			} `json:"sizes"`
		} `json:"products"`
	} `json:"data"`
}

// NewCatalogClient creates a new catalog client.
func NewCatalogClient(cfg CatalogConfig) *CatalogClient {
	if cfg.PriceBaseURL == "" {
		cfg.PriceBaseURL = domain.DefaultPriceBaseURL
	}
	if cfg.MaxBasket <= 0 {
		cfg.MaxBasket = domain.DefaultMaxBasket
	}
	if cfg.ShardHost == nil {
		cfg.ShardHost = defaultShardHost
	}
	if cfg.Limiter == nil {
		cfg.Limiter = rate.NewLimiter(rate.Limit(CatalogRate), 1)
	}

	return &CatalogClient{
		priceBaseURL: cfg.PriceBaseURL,
		maxBasket:    cfg.MaxBasket,
		cache:        cfg.Cache,
		shardHost:    cfg.ShardHost,
		limiter:      cfg.Limiter,
		fetch:        newFetcher(cfg.HTTPClient, cfg.UserAgent, cfg.Timeout),
	}
}

func defaultShardHost(basket string) string {
	return "https://" + basket + ".wbbasket.ru"
}

// FetchCard resolves the product's shard and downloads its card.
func (c *CatalogClient) FetchCard(ctx context.Context, productID int64) (*domain.ProductCard, error) {
	loc := domain.LocateProduct(productID)
	logger.Debug("Resolving shard for %d (vol=%d, part=%d)", productID, loc.Vol, loc.Part)

	if basket, ok := c.cachedBasket(ctx, loc.Vol); ok {
		card, err := c.fetchCardFrom(ctx, basket, loc, productID)
		if err == nil {
			return card, nil
		}
		logger.Warn("Cached shard %s failed for %d: %v", basket, productID, err)
		c.forget(ctx, loc.Vol)
	}

	var lastErr error
	for _, basket := range basketCandidates(loc.Vol, c.maxBasket) {
		card, err := c.fetchCardFrom(ctx, basket, loc, productID)
		if err == nil {
			c.remember(ctx, loc.Vol, basket)
			logger.Info("Found shard %s for %d", basket, productID)
			return card, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fetch card %d: %w", productID, err)
		}
		if IsNotFound(err) {
			logger.Debug("No card for %d on %s", productID, basket)
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w for %d: %w", domain.ErrShardNotFound, productID, lastErr)
	}
	return nil, fmt.Errorf("%w for %d", domain.ErrShardNotFound, productID)
}

// FetchPrices returns the product's prices; unknown prices are nil.
func (c *CatalogClient) FetchPrices(ctx context.Context, productID int64) (domain.Prices, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Prices{}, err
	}

	url := c.priceBaseURL + "&nm=" + strconv.FormatInt(productID, 10)
	var resp priceResponse
	if err := c.fetch.getJSON(ctx, url, &resp); err != nil {
		return domain.Prices{}, fmt.Errorf("fetch prices %d: %w", productID, err)
	}

	var prices domain.Prices
	if len(resp.Data.Products) == 0 || len(resp.Data.Products[0].Sizes) == 0 {
		logger.Warn("No sizes in price response for %d", productID)
		return prices, nil
	}

	price := resp.Data.Products[0].Sizes[0].Price
	prices.Old = kopecksToRoubles(price.Basic)
	prices.New = kopecksToRoubles(price.Product)
	return prices, nil
}

// PhotoURLs returns the large photo links for a card.
func (c *CatalogClient) PhotoURLs(card domain.ProductCard) []string {
	if card.Basket == "" {
		return nil
	}
	loc := domain.LocateProduct(card.ID)
	urls := make([]string, 0, card.PhotoCount)
	for i := 1; i <= card.PhotoCount; i++ {
		urls = append(urls, fmt.Sprintf("%s/vol%d/part%d/%d/images/big/%d.webp",
			c.shardHost(card.Basket), loc.Vol, loc.Part, card.ID, i))
	}
	return urls
}

func (c *CatalogClient) fetchCardFrom(
	ctx context.Context, basket string, loc domain.ShardLocation, productID int64,
) (*domain.ProductCard, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/vol%d/part%d/%d/info/ru/card.json", c.shardHost(basket), loc.Vol, loc.Part, productID)
	var resp cardResponse
	if err := c.fetch.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	card := &domain.ProductCard{
		ID:          resp.NMID,
		Title:       resp.IMTName,
		Brand:       resp.Selling.BrandName,
		Description: resp.Description,
		PhotoCount:  1,
		Basket:      basket,
	}
	if card.ID == 0 {
		card.ID = productID
	}
	if resp.Media.PhotoCount != nil {
		card.PhotoCount = *resp.Media.PhotoCount
	}
	for _, opt := range resp.Options {
		card.Options = append(card.Options, domain.ProductOption{Name: opt.Name, Value: opt.Value})
	}
	for _, comp := range resp.Compositions {
		if comp.Name != "" {
			card.Compositions = append(card.Compositions, comp.Name)
		}
	}
	return card, nil
}

func (c *CatalogClient) cachedBasket(ctx context.Context, vol int64) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	basket, err := c.cache.Get(ctx, vol)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Shard cache lookup failed for vol %d: %v", vol, err)
		}
		return "", false
	}
	return basket, true
}

func (c *CatalogClient) remember(ctx context.Context, vol int64, basket string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Put(ctx, vol, basket); err != nil {
		logger.Warn("Failed to cache shard %s for vol %d: %v", basket, vol, err)
	}
}

func (c *CatalogClient) forget(ctx context.Context, vol int64) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, vol); err != nil {
		logger.Warn("Failed to evict shard for vol %d: %v", vol, err)
	}
}

// kopecksToRoubles converts a price in kopecks; zero means unknown.
func kopecksToRoubles(kopecks int64) *float64 {
	if kopecks == 0 {
		return nil
	}
	roubles := float64(kopecks) / 100
	return &roubles
}
