// Package pipeline wires the extraction steps into a single sequential
// run: scrape metadata, fetch the plain text, resolve the two boundary
// anchors, slice the literary core, and persist the outputs. One book per
// invocation; every step blocks and any error aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/gutencore"
	"github.com/google/uuid"
)

// Pipeline orchestrates a single-book extraction. All fields except
// WindowBudget and Logger are required.
type Pipeline struct {
	Scraper  gutencore.MetadataScraper
	Metadata gutencore.MetadataWriter
	Texts    gutencore.TextFetcher
	Resolver gutencore.AnchorResolver
	Core     gutencore.CoreTextWriter

	// WindowBudget is the per-end character budget for the model input
	// window. Defaults to gutencore.DefaultWindowBudget.
	WindowBudget int

	// Logger receives progress events. Nil disables logging.
	Logger *slog.Logger

	// NewRunID generates the run correlation ID. Defaults to a random
	// UUID; tests pin it.
	NewRunID func() string
}

// Result summarizes a completed extraction run.
type Result struct {
	RunID        string              `json:"runId"`
	Metadata     *gutencore.Metadata `json:"metadata"`
	MetadataPath string              `json:"metadataPath"`
	CorePath     string              `json:"corePath"`
	StartAnchor  gutencore.Anchor    `json:"startAnchor"`
	EndAnchor    gutencore.Anchor    `json:"endAnchor"`
	RawLen       int                 `json:"rawLen"`
	CoreLen      int                 `json:"coreLen"`

	// ContentHash is the xxhash of the written core text, for spotting
	// drift between reruns of the same book.
	ContentHash string `json:"contentHash"`
}

// Run extracts the literary core of the ebook at the given page URL.
//
// The metadata JSON is written as soon as the scrape succeeds; the core
// text file is only written after both anchors have been verified against
// the raw text, so anchor failures never leave a partial core file behind.
func (p *Pipeline) Run(ctx context.Context, url string) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	runID := p.runID()
	logger = logger.With("run", runID)

	meta, err := p.Scraper.Scrape(ctx, url)
	if err != nil {
		return nil, err
	}
	logger.Info("scraped metadata", "id", meta.ID, "title", meta.Title)

	metaPath, err := p.Metadata.WriteMetadata(ctx, meta)
	if err != nil {
		return nil, err
	}

	raw, err := p.Texts.FetchText(ctx, meta.ID)
	if err != nil {
		return nil, err
	}
	logger.Info("fetched plain text", "id", meta.ID, "bytes", len(raw))

	window := gutencore.Truncate(raw, p.windowBudget())

	start, err := p.Resolver.Resolve(ctx, window, gutencore.BoundaryStart)
	if err != nil {
		return nil, err
	}
	logger.Info("resolved anchor", "boundary", gutencore.BoundaryStart, "anchor", start.Text)

	end, err := p.Resolver.Resolve(ctx, window, gutencore.BoundaryEnd)
	if err != nil {
		return nil, err
	}
	logger.Info("resolved anchor", "boundary", gutencore.BoundaryEnd, "anchor", end.Text)

	core, err := gutencore.SliceCore(raw, start, end)
	if err != nil {
		return nil, err
	}

	corePath, err := p.Core.WriteCoreText(ctx, meta.ID, core)
	if err != nil {
		return nil, err
	}
	logger.Info("wrote core text", "path", corePath, "bytes", len(core))

	return &Result{
		RunID:        runID,
		Metadata:     meta,
		MetadataPath: metaPath,
		CorePath:     corePath,
		StartAnchor:  start,
		EndAnchor:    end,
		RawLen:       len(raw),
		CoreLen:      len(core),
		ContentHash:  fmt.Sprintf("%016x", xxhash.Sum64String(core)),
	}, nil
}

func (p *Pipeline) windowBudget() int {
	if p.WindowBudget > 0 {
		return p.WindowBudget
	}
	return gutencore.DefaultWindowBudget
}

func (p *Pipeline) runID() string {
	if p.NewRunID != nil {
		return p.NewRunID()
	}
	return uuid.NewString()
}
