package wildberries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// maxErrorBody bounds how much of a failed response is drained.
const maxErrorBody = 4 << 10

// fetcher performs single GET requests and decodes JSON bodies.
type fetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

func newFetcher(client *http.Client, userAgent string, timeout time.Duration) *fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if userAgent == "" {
		userAgent = domain.DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = domain.DefaultRequestTimeout
	}
	return &fetcher{client: client, userAgent: userAgent, timeout: timeout}
}

// getJSON fetches url and decodes the body into out.
// Transport failures, timeouts and non-2xx statuses wrap domain.ErrNetwork;
// undecodable bodies wrap domain.ErrParse.
func (f *fetcher) getJSON(ctx context.Context, url string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		logger.Warn("Request to %s failed after %s: %v", url, time.Since(start).Round(time.Millisecond), err)
		return fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{StatusCode: resp.StatusCode, URL: url}
		if IsRateLimited(apiErr) {
			logger.L().Warn("Rate limited by upstream",
				zap.String("url", url), zap.Int("status", resp.StatusCode))
			return apiErr
		}
		logger.Warn("Request to %s returned status %d", url, resp.StatusCode)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// A deadline hit mid-body is a network failure, not a bad payload.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", domain.ErrNetwork, ctx.Err())
		}
		logger.Warn("Malformed response from %s: %v", url, err)
		return fmt.Errorf("%w: %w", domain.ErrParse, err)
	}

	logger.Debug("Request to %s succeeded in %s", url, time.Since(start).Round(time.Millisecond))
	return nil
}
