package pipeline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/gutencore"
	"github.com/fwojciec/gutencore/fs"
	"github.com/fwojciec/gutencore/mock"
	"github.com/fwojciec/gutencore/pipeline"
	"github.com/fwojciec/gutencore/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawText = `The Project Gutenberg eBook of Frankenstein

*** START OF THE PROJECT GUTENBERG EBOOK 84 ***

CONTENTS

 Letter 1
 Letter 2

Letter 1

To Mrs. Saville, England.

You will rejoice to hear that no disaster has accompanied the
commencement of an enterprise which you have regarded with such evil
forebodings.

THE END

*** END OF THE PROJECT GUTENBERG EBOOK 84 ***
`

func fixedMetadata() *gutencore.Metadata {
	return &gutencore.Metadata{
		ID:          "84",
		Title:       "Frankenstein; Or, The Modern Prometheus",
		Author:      "Shelley, Mary Wollstonecraft",
		Language:    "English",
		SourceURL:   "https://www.gutenberg.org/ebooks/84",
		RetrievedAt: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
	}
}

// newPipeline assembles a pipeline over real file writers and stubbed
// network and model collaborators.
func newPipeline(dir string, resolver gutencore.AnchorResolver) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Scraper: &mock.MetadataScraper{
			ScrapeFn: func(ctx context.Context, url string) (*gutencore.Metadata, error) {
				return fixedMetadata(), nil
			},
		},
		Metadata: fs.NewMetadataWriter(filepath.Join(dir, "metadata")),
		Texts: &mock.TextFetcher{
			FetchTextFn: func(ctx context.Context, ebookID string) (string, error) {
				return rawText, nil
			},
		},
		Resolver: resolver,
		Core:     fs.NewCoreTextWriter(filepath.Join(dir, "core_txts")),
		NewRunID: func() string { return "test-run" },
	}
}

func anchorResolver(start, end string) gutencore.AnchorResolver {
	return &mock.AnchorResolver{
		ResolveFn: func(ctx context.Context, window gutencore.TruncatedWindow, boundary gutencore.Boundary) (gutencore.Anchor, error) {
			if boundary == gutencore.BoundaryStart {
				return gutencore.Anchor{Boundary: boundary, Text: start}, nil
			}
			return gutencore.Anchor{Boundary: boundary, Text: end}, nil
		},
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts the core between the anchors", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := newPipeline(dir, anchorResolver("Letter 1", "THE END"))

		result, err := p.Run(context.Background(), "https://www.gutenberg.org/ebooks/84")

		require.NoError(t, err)
		assert.Equal(t, "84", result.Metadata.ID)
		assert.Equal(t, "test-run", result.RunID)
		assert.Less(t, result.CoreLen, result.RawLen)
		assert.NotEmpty(t, result.ContentHash)

		core, err := os.ReadFile(filepath.Join(dir, "core_txts", "84_clean.txt"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(core), "\n\nTo Mrs. Saville, England."))
		assert.False(t, strings.Contains(string(core), "THE END"))
		assert.False(t, strings.Contains(string(core), "PROJECT GUTENBERG"))
		// The ToC "Letter 1" entry must not fool the slicer: the ToC
		// lines precede the heading, so they cannot appear in the core.
		assert.False(t, strings.Contains(string(core), "Letter 2"))
	})

	t.Run("writes metadata JSON with the ebook ID", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := newPipeline(dir, anchorResolver("Letter 1", "THE END"))

		result, err := p.Run(context.Background(), "https://www.gutenberg.org/ebooks/84")
		require.NoError(t, err)

		data, err := os.ReadFile(result.MetadataPath)
		require.NoError(t, err)

		var meta gutencore.Metadata
		require.NoError(t, json.Unmarshal(data, &meta))
		assert.Equal(t, "84", meta.ID)
	})

	t.Run("is idempotent with a pinned clock and stubbed model", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := newPipeline(dir, anchorResolver("Letter 1", "THE END"))

		first, err := p.Run(context.Background(), "https://www.gutenberg.org/ebooks/84")
		require.NoError(t, err)
		firstMeta, err := os.ReadFile(first.MetadataPath)
		require.NoError(t, err)
		firstCore, err := os.ReadFile(first.CorePath)
		require.NoError(t, err)

		second, err := p.Run(context.Background(), "https://www.gutenberg.org/ebooks/84")
		require.NoError(t, err)
		secondMeta, err := os.ReadFile(second.MetadataPath)
		require.NoError(t, err)
		secondCore, err := os.ReadFile(second.CorePath)
		require.NoError(t, err)

		assert.Equal(t, firstMeta, secondMeta)
		assert.Equal(t, firstCore, secondCore)
		assert.Equal(t, first.ContentHash, second.ContentHash)
	})

	t.Run("hallucinated anchor fails without writing a core file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := newPipeline(dir, anchorResolver("Chapter Zero Of Nothing", "THE END"))

		_, err := p.Run(context.Background(), "https://www.gutenberg.org/ebooks/84")

		require.Error(t, err)
		assert.Equal(t, gutencore.EANCHOR, gutencore.ErrorCode(err))
		assert.NoFileExists(t, filepath.Join(dir, "core_txts", "84_clean.txt"))
	})

	t.Run("inverted anchors fail without writing a core file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		// "CONTENTS" occurs only before "Letter 1", so the end anchor
		// can never be found at or after the start anchor.
		p := newPipeline(dir, anchorResolver("Letter 1", "CONTENTS"))

		_, err := p.Run(context.Background(), "https://www.gutenberg.org/ebooks/84")

		require.Error(t, err)
		assert.Equal(t, gutencore.EANCHORORDER, gutencore.ErrorCode(err))
		assert.NoFileExists(t, filepath.Join(dir, "core_txts", "84_clean.txt"))
	})

	t.Run("model failure aborts before any slicing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		resolver := &mock.AnchorResolver{
			ResolveFn: func(ctx context.Context, window gutencore.TruncatedWindow, boundary gutencore.Boundary) (gutencore.Anchor, error) {
				return gutencore.Anchor{}, gutencore.Errorf(gutencore.EMODEL, "model returned no candidates")
			},
		}
		p := newPipeline(dir, resolver)

		_, err := p.Run(context.Background(), "https://www.gutenberg.org/ebooks/84")

		require.Error(t, err)
		assert.Equal(t, gutencore.EMODEL, gutencore.ErrorCode(err))
		assert.NoFileExists(t, filepath.Join(dir, "core_txts", "84_clean.txt"))
	})

	t.Run("fetch failure aborts the run", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := newPipeline(dir, anchorResolver("Letter 1", "THE END"))
		p.Texts = &mock.TextFetcher{
			FetchTextFn: func(ctx context.Context, ebookID string) (string, error) {
				return "", gutencore.Errorf(gutencore.EFETCH, "HTTP 404")
			},
		}

		_, err := p.Run(context.Background(), "https://www.gutenberg.org/ebooks/84")

		require.Error(t, err)
		assert.Equal(t, gutencore.EFETCH, gutencore.ErrorCode(err))
	})

	t.Run("resolves anchors through the three-stage resolver", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		completer := &mock.ScriptedCompleter{Responses: []string{
			// start boundary: map, select, extract
			"1. Letter 1\n2. CONTENTS",
			"1",
			"Letter 1",
			// end boundary: map (single candidate skips select), extract
			"THE END",
			"THE END",
		}}
		p := newPipeline(dir, resolve.NewResolver(completer))

		result, err := p.Run(context.Background(), "https://www.gutenberg.org/ebooks/84")

		require.NoError(t, err)
		assert.Equal(t, "Letter 1", result.StartAnchor.Text)
		assert.Equal(t, "THE END", result.EndAnchor.Text)
		assert.Equal(t, 5, completer.Calls())
	})
}
