package http

import (
	"context"
	"fmt"

	"github.com/fwojciec/gutencore"
)

// PlaintextURL returns the canonical Gutenberg CDN plain-text URL for an
// ebook ID. Example: "11" → "https://www.gutenberg.org/cache/epub/11/pg11.txt".
func PlaintextURL(ebookID string) string {
	return fmt.Sprintf("https://www.gutenberg.org/cache/epub/%s/pg%s.txt", ebookID, ebookID)
}

// Ensure TextFetcher implements gutencore.TextFetcher at compile time.
var _ gutencore.TextFetcher = (*TextFetcher)(nil)

// TextFetcher downloads the plain-text edition of an ebook from the
// Gutenberg CDN.
type TextFetcher struct {
	fetcher gutencore.Fetcher

	// BaseURL overrides the CDN URL template; used by tests.
	BaseURL string
}

// NewTextFetcher creates a TextFetcher on top of the given Fetcher.
func NewTextFetcher(fetcher gutencore.Fetcher) *TextFetcher {
	return &TextFetcher{fetcher: fetcher}
}

// FetchText returns the full plain text for the given ebook ID.
func (t *TextFetcher) FetchText(ctx context.Context, ebookID string) (string, error) {
	if ebookID == "" {
		return "", gutencore.Errorf(gutencore.EINVALID, "ebook ID required")
	}

	url := PlaintextURL(ebookID)
	if t.BaseURL != "" {
		url = fmt.Sprintf("%s/cache/epub/%s/pg%s.txt", t.BaseURL, ebookID, ebookID)
	}

	text, err := t.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", gutencore.Errorf(gutencore.EFETCH, "empty plain-text asset for ebook %s", ebookID)
	}
	return text, nil
}
