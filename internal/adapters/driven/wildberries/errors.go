package wildberries

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

// APIError represents a non-success upstream response.
// It matches domain.ErrNetwork with errors.Is.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wildberries: status %d (URL: %s)", e.StatusCode, e.URL)
}

// Unwrap classifies every status failure as a network failure.
func (e *APIError) Unwrap() error {
	return domain.ErrNetwork
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited checks if the upstream rejected the request for pacing.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}
