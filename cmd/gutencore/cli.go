package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/gutencore"
	"github.com/fwojciec/gutencore/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	DataDir string
	Logger  *slog.Logger

	Scraper  gutencore.MetadataScraper
	Metadata gutencore.MetadataWriter
	Texts    gutencore.TextFetcher
	Core     gutencore.CoreTextWriter
	Analyzer gutencore.Analyzer
	Pipeline *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log progress to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract the literary core of an ebook"`
	Meta    MetaCmd    `cmd:"" help:"Scrape and print ebook metadata"`
	Analyze AnalyzeCmd `cmd:"" help:"Run demo statistics over a cleaned text"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL    string `arg:"" help:"Ebook page URL, e.g. https://www.gutenberg.org/ebooks/84"`
	Window int    `short:"w" default:"50000" help:"Per-end character budget for the model window"`
	Model  string `default:"gemini-2.5-flash" help:"Gemini model name"`
}

// MetaCmd is the "meta" subcommand.
type MetaCmd struct {
	URL  string `arg:"" help:"Ebook page URL"`
	Save bool   `short:"s" help:"Also write the metadata JSON file"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Target string `arg:"" help:"Ebook ID or path to a cleaned text file"`
	Word   string `short:"k" help:"Print concordance lines for this word"`
	Width  int    `default:"40" help:"Concordance context width in characters"`
}
