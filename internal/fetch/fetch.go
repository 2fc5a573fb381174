// Package fetch retrieves raw product page content over HTTP, abstracted
// behind an interface for testability.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a page is read. Retail product pages are
// large but bounded; anything past this holds no price.
const maxBodyBytes = 8 << 20

// Fetcher defines the interface for retrieving a page's raw content.
// Ordinary network failures (timeout, refused connection, non-2xx status)
// are returned as errors, never as panics.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher implements Fetcher with a plain GET carrying the configured
// request headers on every call.
type HTTPFetcher struct {
	headers map[string]string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures the HTTPFetcher.
type Option func(*HTTPFetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.client.Timeout = d
	}
}

// WithRateLimit installs a token-bucket floor on the outbound request rate,
// shared across all products. Every Fetch call waits for a token first.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(f *HTTPFetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewHTTPFetcher creates a fetcher that sends the given headers, unmodified,
// with every request.
func NewHTTPFetcher(headers map[string]string, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		headers: headers,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs one GET and returns the response body as text.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading body from %s: %w", url, err)
	}

	return string(body), nil
}
