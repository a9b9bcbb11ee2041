package wildberries

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// Ensure SearchClient implements the interface.
var _ driven.SearchIndex = (*SearchClient)(nil)

// SearchConfig configures the search client.
type SearchConfig struct {
	// BaseURL is the search endpoint with its fixed query parameters.
	BaseURL string

	// Delay is the fixed pause before every request.
	Delay time.Duration

	// Timeout bounds a single request.
	Timeout time.Duration

	// UserAgent overrides the browser-like default.
	UserAgent string

	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// SearchClient fetches ranked result pages from the marketplace search.
type SearchClient struct {
	baseURL string
	pacer   *Pacer
	fetch   *fetcher
}

// searchResponse is the search endpoint response format.
// Older API versions wrap the payload in "data".
type searchResponse struct {
	Data     *searchPayload  `json:"data"`
	Products []searchProduct `json:"products"`
	Total    int             `json:"total"`
}

type searchPayload struct {
	Products []searchProduct `json:"products"`
	Total    int             `json:"total"`
}

type searchProduct struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// NewSearchClient creates a new search client.
func NewSearchClient(cfg SearchConfig) *SearchClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultSearchBaseURL
	}
	client := &SearchClient{
		baseURL: cfg.BaseURL,
		pacer:   NewPacer(cfg.Delay),
		fetch:   newFetcher(cfg.HTTPClient, cfg.UserAgent, cfg.Timeout),
	}
	logger.Debug("Search client: delay=%s, timeout=%s", client.pacer.Delay(), client.fetch.timeout)
	return client
}

// NewSearchClientFromSettings creates a search client from application settings.
func NewSearchClientFromSettings(settings domain.SearchSettings) *SearchClient {
	return NewSearchClient(SearchConfig{
		BaseURL: settings.BaseURL,
		Delay:   settings.Delay,
		Timeout: settings.Timeout,
	})
}

// Pace blocks for the fixed inter-request delay.
func (c *SearchClient) Pace(ctx context.Context) error {
	return c.pacer.Wait(ctx)
}

// FetchPage requests one page of results for keyword.
func (c *SearchClient) FetchPage(ctx context.Context, keyword string, page int) (*domain.ResultPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1", domain.ErrInvalidInput)
	}

	var resp searchResponse
	if err := c.fetch.getJSON(ctx, c.pageURL(keyword, page), &resp); err != nil {
		return nil, fmt.Errorf("search %q page %d: %w", keyword, page, err)
	}

	products, total := resp.Products, resp.Total
	if resp.Data != nil {
		products, total = resp.Data.Products, resp.Data.Total
	}

	result := &domain.ResultPage{
		Products: make([]domain.ResultProduct, 0, len(products)),
		Total:    total,
	}
	for _, p := range products {
		result.Products = append(result.Products, domain.ResultProduct{ID: p.ID, Name: p.Name, Brand: p.Brand})
	}
	return result, nil
}

// pageURL appends the escaped keyword and page number to the base URL.
func (c *SearchClient) pageURL(keyword string, page int) string {
	sep := "&"
	if !strings.Contains(c.baseURL, "?") {
		sep = "?"
	} else if strings.HasSuffix(c.baseURL, "?") || strings.HasSuffix(c.baseURL, "&") {
		sep = ""
	}
	return fmt.Sprintf("%s%squery=%s&page=%d", c.baseURL, sep, url.QueryEscape(keyword), page)
}
