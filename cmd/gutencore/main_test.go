package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/gutencore"
	main "github.com/fwojciec/gutencore/cmd/gutencore"
	"github.com/fwojciec/gutencore/fs"
	"github.com/fwojciec/gutencore/mock"
	"github.com/fwojciec/gutencore/pipeline"
	gutensnowball "github.com/fwojciec/gutencore/snowball"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMetadata() *gutencore.Metadata {
	return &gutencore.Metadata{
		ID:          "84",
		Title:       "Frankenstein; Or, The Modern Prometheus",
		Author:      "Shelley, Mary Wollstonecraft",
		Language:    "English",
		SourceURL:   "https://www.gutenberg.org/ebooks/84",
		RetrievedAt: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
	}
}

func testDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no command prints help and errors", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "extract")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "gutencore")
	})

	t.Run("unknown command errors", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"frobnicate"}, stdout, stderr)

		require.Error(t, err)
	})
}

// Global flags may precede the command name, so per-command wiring has to
// key off the parsed command rather than args[0]. Not parallel: t.Setenv.
func TestMain_Run_FlagBeforeCommand(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--verbose", "extract", "https://www.gutenberg.org/ebooks/84"}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Contains(t, stderr.String(), "GEMINI_API_KEY environment variable not set")
}

func TestCmdMeta(t *testing.T) {
	t.Parallel()

	t.Run("prints metadata JSON", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Scraper = &mock.MetadataScraper{
			ScrapeFn: func(ctx context.Context, url string) (*gutencore.Metadata, error) {
				return testMetadata(), nil
			},
		}

		cmd := &main.MetaCmd{URL: "https://www.gutenberg.org/ebooks/84"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		var meta gutencore.Metadata
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &meta))
		assert.Equal(t, "84", meta.ID)
		assert.Empty(t, stderr.String())
	})

	t.Run("save writes the metadata file", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Scraper = &mock.MetadataScraper{
			ScrapeFn: func(ctx context.Context, url string) (*gutencore.Metadata, error) {
				return testMetadata(), nil
			},
		}
		var written *gutencore.Metadata
		deps.Metadata = &mock.MetadataWriter{
			WriteMetadataFn: func(ctx context.Context, meta *gutencore.Metadata) (string, error) {
				written = meta
				return "metadata/84.metadata.json", nil
			},
		}

		cmd := &main.MetaCmd{URL: "https://www.gutenberg.org/ebooks/84", Save: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, written)
		assert.Equal(t, "84", written.ID)
		assert.Contains(t, stdout.String(), "Saved to metadata/84.metadata.json")
	})

	t.Run("reports scrape errors", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Scraper = &mock.MetadataScraper{
			ScrapeFn: func(ctx context.Context, url string) (*gutencore.Metadata, error) {
				return nil, gutencore.Errorf(gutencore.EPARSE, "bibliographic table not found")
			},
		}

		cmd := &main.MetaCmd{URL: "https://www.gutenberg.org/ebooks/84"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "bibliographic table not found")
	})
}

func TestCmdExtract(t *testing.T) {
	t.Parallel()

	t.Run("prints a run summary", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Pipeline = &pipeline.Pipeline{
			Scraper: &mock.MetadataScraper{
				ScrapeFn: func(ctx context.Context, url string) (*gutencore.Metadata, error) {
					return testMetadata(), nil
				},
			},
			Metadata: fs.NewMetadataWriter(filepath.Join(dir, "metadata")),
			Texts: &mock.TextFetcher{
				FetchTextFn: func(ctx context.Context, ebookID string) (string, error) {
					return "HEADER\n\nLetter 1\n\nProse.\n\nTHE END\n", nil
				},
			},
			Resolver: &mock.AnchorResolver{
				ResolveFn: func(ctx context.Context, window gutencore.TruncatedWindow, boundary gutencore.Boundary) (gutencore.Anchor, error) {
					if boundary == gutencore.BoundaryStart {
						return gutencore.Anchor{Boundary: boundary, Text: "Letter 1"}, nil
					}
					return gutencore.Anchor{Boundary: boundary, Text: "THE END"}, nil
				},
			},
			Core: fs.NewCoreTextWriter(filepath.Join(dir, "core_txts")),
		}

		cmd := &main.ExtractCmd{URL: "https://www.gutenberg.org/ebooks/84"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Frankenstein")
		assert.Contains(t, out, "ebook 84")
		assert.Contains(t, out, "84_clean.txt")
		assert.FileExists(t, filepath.Join(dir, "core_txts", "84_clean.txt"))
	})

	t.Run("reports pipeline errors", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Pipeline = &pipeline.Pipeline{
			Scraper: &mock.MetadataScraper{
				ScrapeFn: func(ctx context.Context, url string) (*gutencore.Metadata, error) {
					return nil, gutencore.Errorf(gutencore.EFETCH, "connection refused")
				},
			},
		}

		cmd := &main.ExtractCmd{URL: "https://www.gutenberg.org/ebooks/84"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "connection refused")
	})
}

func TestCmdAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("analyzes a cleaned text by ebook ID", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		coreDir := filepath.Join(dir, "core_txts")
		require.NoError(t, os.MkdirAll(coreDir, 0755))
		text := "The monster wandered. The monster wept. The monster slept."
		require.NoError(t, os.WriteFile(filepath.Join(coreDir, "84_clean.txt"), []byte(text), 0644))

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.DataDir = dir
		deps.Analyzer = gutensnowball.NewAnalyzer()

		cmd := &main.AnalyzeCmd{Target: "84", Width: 40}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "tokens")
		assert.Contains(t, out, "monster")
		assert.Contains(t, out, "#")
	})

	t.Run("prints concordance lines for a keyword", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "text.txt")
		require.NoError(t, os.WriteFile(path, []byte("A dreary night of November."), 0644))

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Analyzer = gutensnowball.NewAnalyzer()

		cmd := &main.AnalyzeCmd{Target: path, Word: "dreary", Width: 20}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Concordance for \"dreary\"")
		assert.Contains(t, stdout.String(), "night of November")
	})

	t.Run("missing text file is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.DataDir = t.TempDir()
		deps.Analyzer = gutensnowball.NewAnalyzer()

		cmd := &main.AnalyzeCmd{Target: "84"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, gutencore.ENOTFOUND, gutencore.ErrorCode(err))
	})
}
