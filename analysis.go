package gutencore

// WordCount is a word with its frequency. Analyzers group inflected forms
// under a single representative word.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Collocation is a pair of adjacent words that co-occur unusually often.
type Collocation struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Count  int    `json:"count"`
}

// ConcordanceLine is a keyword-in-context line: the target word with a
// fixed amount of surrounding text on each side.
type ConcordanceLine struct {
	Left    string `json:"left"`
	Keyword string `json:"keyword"`
	Right   string `json:"right"`
}

// AnalysisReport holds descriptive statistics for a cleaned text. Demo
// output only; nothing here feeds back into extraction.
type AnalysisReport struct {
	TokenCount   int           `json:"tokenCount"`
	TypeCount    int           `json:"typeCount"`
	TopWords     []WordCount   `json:"topWords"`
	Collocations []Collocation `json:"collocations"`
}

// Analyzer produces descriptive statistics over a cleaned text.
type Analyzer interface {
	// Analyze tokenizes the text and returns frequency and collocation
	// statistics. Returns EINVALID for empty input.
	Analyze(text string) (*AnalysisReport, error)

	// Concordance returns keyword-in-context lines for word, with at most
	// width characters of context on each side.
	Concordance(text, word string, width int) []ConcordanceLine
}
