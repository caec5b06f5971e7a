package mock

import (
	"context"

	"github.com/fwojciec/gutencore"
)

var _ gutencore.MetadataScraper = (*MetadataScraper)(nil)

// MetadataScraper is a mock implementation of gutencore.MetadataScraper.
type MetadataScraper struct {
	ScrapeFn func(ctx context.Context, url string) (*gutencore.Metadata, error)
}

func (s *MetadataScraper) Scrape(ctx context.Context, url string) (*gutencore.Metadata, error) {
	return s.ScrapeFn(ctx, url)
}
