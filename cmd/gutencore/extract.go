package main

import (
	"fmt"

	"github.com/fwojciec/gutencore"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	result, err := deps.Pipeline.Run(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gutencore.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracted %q by %s (ebook %s)\n", result.Metadata.Title, result.Metadata.Author, result.Metadata.ID)
	fmt.Fprintf(deps.Stdout, "  start anchor: %q\n", result.StartAnchor.Text)
	fmt.Fprintf(deps.Stdout, "  end anchor:   %q\n", result.EndAnchor.Text)
	fmt.Fprintf(deps.Stdout, "  metadata:     %s\n", result.MetadataPath)
	fmt.Fprintf(deps.Stdout, "  core text:    %s (%d of %d bytes, xxhash %s)\n",
		result.CorePath, result.CoreLen, result.RawLen, result.ContentHash)
	return nil
}
