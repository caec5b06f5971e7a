package gutencore

import (
	"context"
	"unicode/utf8"
)

// DefaultWindowBudget is the number of characters kept at each end of the
// raw text before it is sent to the language model. Gutenberg boilerplate
// always sits near the head or tail, so a bounded window keeps model cost
// and latency flat regardless of book length.
const DefaultWindowBudget = 50000

// Fetcher retrieves the body of a URL as text.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// TextFetcher downloads the plain-text edition of an ebook.
type TextFetcher interface {
	// FetchText returns the full plain text for the given ebook ID.
	// Returns EFETCH on network failure or a missing plain-text asset.
	FetchText(ctx context.Context, ebookID string) (string, error)
}

// TruncatedWindow is the head/tail subset of the raw text used as model
// input. Derived data; never persisted.
type TruncatedWindow struct {
	Head string
	Tail string
}

// Truncate returns the first and last budget bytes of raw. If raw fits
// within a single budget both slices hold the whole text. Cuts snap
// inward to rune boundaries so the windows stay valid UTF-8.
func Truncate(raw string, budget int) TruncatedWindow {
	if budget <= 0 || len(raw) <= budget {
		return TruncatedWindow{Head: raw, Tail: raw}
	}
	return TruncatedWindow{
		Head: raw[:alignRuneLeft(raw, budget)],
		Tail: raw[alignRuneRight(raw, len(raw)-budget):],
	}
}

// alignRuneLeft moves i back to the start of the rune it falls inside,
// so raw[:i] does not end mid-rune.
func alignRuneLeft(raw string, i int) int {
	for i > 0 && !utf8.RuneStart(raw[i]) {
		i--
	}
	return i
}

// alignRuneRight moves i forward past any rune continuation bytes, so
// raw[i:] does not begin mid-rune.
func alignRuneRight(raw string, i int) int {
	for i < len(raw) && !utf8.RuneStart(raw[i]) {
		i++
	}
	return i
}
