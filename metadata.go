package gutencore

import (
	"context"
	"time"
)

// Metadata represents the bibliographic record scraped from an ebook page.
// It is created once per run and immutable thereafter.
type Metadata struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Language        string   `json:"language"`
	PublicationDate string   `json:"publicationDate,omitempty"`
	Subjects        []string `json:"subjects,omitempty"`
	Genre           string   `json:"genre,omitempty"`
	SourceURL       string   `json:"sourceUrl"`

	// RetrievedAt is the time the page was scraped. Callers control the
	// clock so reruns can be byte-identical.
	RetrievedAt time.Time `json:"retrievedAt"`
}

// Validate returns an error if the metadata contains invalid fields.
func (m *Metadata) Validate() error {
	if m.ID == "" {
		return Errorf(EINVALID, "metadata ebook ID required")
	}
	if m.SourceURL == "" {
		return Errorf(EINVALID, "metadata source URL required")
	}
	return nil
}

// MetadataScraper scrapes bibliographic metadata from an ebook page.
type MetadataScraper interface {
	// Scrape fetches and parses the ebook page at url.
	// Returns EFETCH if the page is unreachable and EPARSE if the
	// identifier or bibliographic table cannot be parsed.
	Scrape(ctx context.Context, url string) (*Metadata, error)
}

// MetadataWriter persists metadata records.
type MetadataWriter interface {
	// WriteMetadata writes the record keyed by its ebook ID, overwriting
	// any previous record for the same ID. Returns the written path.
	WriteMetadata(ctx context.Context, meta *Metadata) (string, error)
}
