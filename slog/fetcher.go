// Package slog provides logging decorators for gutencore interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/gutencore"
)

// Ensure LoggingFetcher implements gutencore.Fetcher at compile time.
var _ gutencore.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs each fetch with size and timing.
type LoggingFetcher struct {
	inner  gutencore.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a logging decorator around inner.
func NewLoggingFetcher(inner gutencore.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{inner: inner, logger: logger}
}

// Fetch delegates to the inner fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	body, err := f.inner.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch", "url", url, "duration", time.Since(start), "err", err)
		return "", err
	}
	f.logger.Info("fetch", "url", url, "bytes", len(body), "duration", time.Since(start))
	return body, nil
}

// Close delegates to the inner fetcher.
func (f *LoggingFetcher) Close() error {
	return f.inner.Close()
}
