package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/gutencore"
)

// Run executes the meta command.
func (c *MetaCmd) Run(deps *Dependencies) error {
	meta, err := deps.Scraper.Scrape(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gutencore.ErrorMessage(err))
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))

	if c.Save {
		path, err := deps.Metadata.WriteMetadata(deps.Ctx, meta)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gutencore.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved to %s\n", path)
	}

	return nil
}
