package mock

import (
	"context"

	"github.com/fwojciec/gutencore"
)

var _ gutencore.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of gutencore.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ gutencore.TextFetcher = (*TextFetcher)(nil)

// TextFetcher is a mock implementation of gutencore.TextFetcher.
type TextFetcher struct {
	FetchTextFn func(ctx context.Context, ebookID string) (string, error)
}

func (f *TextFetcher) FetchText(ctx context.Context, ebookID string) (string, error) {
	return f.FetchTextFn(ctx, ebookID)
}
