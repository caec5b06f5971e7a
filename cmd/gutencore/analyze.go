package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/gutencore"
	"github.com/fwojciec/gutencore/fs"
)

// barWidth is the widest frequency bar in the console plot.
const barWidth = 40

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	path := c.Target
	if _, err := os.Stat(path); err != nil {
		// Not a file; treat the target as an ebook ID.
		path = fs.CoreTextPath(filepath.Join(deps.DataDir, fs.CoreTextDirName), c.Target)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot read %s\n", path)
		return gutencore.Errorf(gutencore.ENOTFOUND, "no cleaned text at %s; run 'gutencore extract' first", path)
	}
	text := string(data)

	report, err := deps.Analyzer.Analyze(text)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gutencore.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %d tokens, %d types\n\n", path, report.TokenCount, report.TypeCount)

	fmt.Fprintln(deps.Stdout, "Top words:")
	printFrequencyPlot(deps, report.TopWords)

	if len(report.Collocations) > 0 {
		fmt.Fprintln(deps.Stdout, "\nCollocations:")
		for _, col := range report.Collocations {
			fmt.Fprintf(deps.Stdout, "  %-30s %d\n", col.First+" "+col.Second, col.Count)
		}
	}

	if c.Word != "" {
		fmt.Fprintf(deps.Stdout, "\nConcordance for %q:\n", c.Word)
		lines := deps.Analyzer.Concordance(text, c.Word, c.Width)
		if len(lines) == 0 {
			fmt.Fprintln(deps.Stdout, "  (no occurrences)")
		}
		for _, line := range lines {
			fmt.Fprintf(deps.Stdout, "  %*s  %s  %s\n", c.Width, line.Left, line.Keyword, line.Right)
		}
	}

	return nil
}

// printFrequencyPlot renders word frequencies as horizontal bars scaled to
// the most frequent word.
func printFrequencyPlot(deps *Dependencies, words []gutencore.WordCount) {
	if len(words) == 0 {
		return
	}
	maxCount := words[0].Count
	for _, w := range words {
		if w.Count > maxCount {
			maxCount = w.Count
		}
	}
	for _, w := range words {
		n := w.Count * barWidth / maxCount
		if n == 0 {
			n = 1
		}
		fmt.Fprintf(deps.Stdout, "  %-15s %-*s %d\n", w.Word, barWidth, strings.Repeat("#", n), w.Count)
	}
}
