package mock

import "github.com/fwojciec/gutencore"

var _ gutencore.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of gutencore.Analyzer.
type Analyzer struct {
	AnalyzeFn     func(text string) (*gutencore.AnalysisReport, error)
	ConcordanceFn func(text, word string, width int) []gutencore.ConcordanceLine
}

func (a *Analyzer) Analyze(text string) (*gutencore.AnalysisReport, error) {
	return a.AnalyzeFn(text)
}

func (a *Analyzer) Concordance(text, word string, width int) []gutencore.ConcordanceLine {
	return a.ConcordanceFn(text, word, width)
}
