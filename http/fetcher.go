// Package http provides an HTTP-based implementation of gutencore.Fetcher.
// Gutenberg serves static pages and plain-text assets, so a plain client
// with a courtesy rate limit is all that is needed.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/gutencore"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// defaultUserAgent identifies the tool to the server.
const defaultUserAgent = "gutencore/1.0 (+https://github.com/fwojciec/gutencore)"

// Ensure Fetcher implements gutencore.Fetcher at compile time.
var _ gutencore.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page and asset bodies over HTTP. A single token-bucket
// limiter spaces out consecutive requests so a run never hammers
// gutenberg.org.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRequestsPerSecond sets the courtesy rate limit.
// Defaults to 1 request per second.
func WithRequestsPerSecond(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", gutencore.Errorf(gutencore.EFETCH, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", gutencore.Errorf(gutencore.EFETCH, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", gutencore.Errorf(gutencore.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", gutencore.Errorf(gutencore.EFETCH, "reading body of %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. The underlying http.Client needs no explicit
// cleanup, so this is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
