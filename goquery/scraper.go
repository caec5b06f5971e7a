// Package goquery provides a goquery-based implementation of
// gutencore.MetadataScraper for Project Gutenberg ebook pages.
package goquery

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gutencore"
)

var (
	ebookIDRe    = regexp.MustCompile(`ebooks/(\d+)|/epub/(\d+)(?:/|$)`)
	lifeDatesRe  = regexp.MustCompile(`,\s*\d{4}-\d{4}$`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// "first published in 1868", "originally published in 1818"
	publishedRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:first\s+)?published\s+in\s+(\d{4})`),
		regexp.MustCompile(`(?i)(?:originally\s+)?published\s+in\s+(\d{4})`),
	}
)

// genreKeywords are scanned against subjects, in priority order, to derive
// a single genre-like label.
var genreKeywords = []string{
	"fiction", "novel", "poetry", "drama", "science fiction", "fantasy",
	"mystery", "detective", "horror", "romance", "children", "biography",
	"historical", "adventure", "satire",
}

// ExtractEbookID pulls the numeric ebook ID from a Gutenberg URL. Works
// for both page URLs (ebooks/11) and file URLs (/epub/11/).
func ExtractEbookID(url string) (string, error) {
	m := ebookIDRe.FindStringSubmatch(url)
	if m == nil {
		return "", gutencore.Errorf(gutencore.EPARSE, "cannot extract ebook ID from URL %q", url)
	}
	if m[1] != "" {
		return m[1], nil
	}
	return m[2], nil
}

// Ensure Scraper implements gutencore.MetadataScraper at compile time.
var _ gutencore.MetadataScraper = (*Scraper)(nil)

// Scraper scrapes bibliographic metadata from a Gutenberg ebook page.
type Scraper struct {
	fetcher gutencore.Fetcher

	// Now supplies the retrieval timestamp. Tests pin it for
	// reproducible output.
	Now func() time.Time
}

// NewScraper creates a Scraper on top of the given Fetcher.
func NewScraper(fetcher gutencore.Fetcher) *Scraper {
	return &Scraper{fetcher: fetcher, Now: time.Now}
}

// Scrape fetches and parses the ebook page at url.
func (s *Scraper) Scrape(ctx context.Context, url string) (*gutencore.Metadata, error) {
	if url == "" {
		return nil, gutencore.Errorf(gutencore.EINVALID, "ebook page URL required")
	}

	id, err := ExtractEbookID(url)
	if err != nil {
		return nil, err
	}

	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	meta, err := ParseMetadata(html, url)
	if err != nil {
		return nil, err
	}
	meta.ID = id
	meta.RetrievedAt = s.Now().UTC()
	return meta, nil
}

// ParseMetadata parses the bibliographic table of a Gutenberg ebook page.
// The caller fills in ID and RetrievedAt.
func ParseMetadata(html, sourceURL string) (*gutencore.Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, gutencore.Errorf(gutencore.EPARSE, "failed to parse HTML: %v", err)
	}

	table := doc.Find("table#about_book_table")
	if table.Length() == 0 {
		return nil, gutencore.Errorf(gutencore.EPARSE, "bibliographic table not found; page structure may be non-standard")
	}

	meta := &gutencore.Metadata{SourceURL: sourceURL}
	var subjects []string
	seen := make(map[string]bool)

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		th := tr.Find("th").First()
		td := tr.Find("td").First()
		if th.Length() == 0 || td.Length() == 0 {
			return
		}
		label := strings.ToLower(cleanText(th.Text()))
		value := cleanText(td.Text())

		switch label {
		case "author":
			// Strip a trailing life-dates range, e.g. "Shelley, Mary, 1797-1851".
			meta.Author = strings.TrimSpace(lifeDatesRe.ReplaceAllString(value, ""))
		case "title":
			meta.Title = value
		case "language":
			meta.Language = value
		case "subject":
			link := td.Find("a.block").First()
			if link.Length() == 0 {
				return
			}
			subject := cleanText(link.Text())
			if subject != "" && !seen[subject] {
				seen[subject] = true
				subjects = append(subjects, subject)
			}
		}
	})

	meta.Subjects = subjects
	meta.Genre = chooseGenre(subjects)

	if summary := doc.Find("div.summary-text-container"); summary.Length() > 0 {
		meta.PublicationDate = extractPublicationDate(summary.Text())
	}

	return meta, nil
}

// cleanText collapses whitespace runs to single spaces and trims the ends.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// extractPublicationDate extracts a 4-digit year from summary text such as
// "first published in 1868". Returns "" if no year is found.
func extractPublicationDate(summary string) string {
	for _, re := range publishedRes {
		if m := re.FindStringSubmatch(summary); m != nil {
			return m[1]
		}
	}
	return ""
}

// chooseGenre returns a single genre-like label from a list of subjects.
// Scans for common genre keywords; falls back to the first short subject.
func chooseGenre(subjects []string) string {
	if len(subjects) == 0 {
		return ""
	}
	for _, kw := range genreKeywords {
		for _, subject := range subjects {
			if strings.Contains(strings.ToLower(subject), kw) {
				return subject
			}
		}
	}
	for _, subject := range subjects {
		if len(strings.Fields(subject)) <= 4 {
			return subject
		}
	}
	return subjects[0]
}
