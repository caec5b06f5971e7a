// Package snowball provides a gutencore.Analyzer built on the Snowball
// stemmer. It powers the demo analysis step: word frequencies grouped by
// stem, adjacent-pair collocations, and keyword-in-context concordance
// lines. Descriptive output only; nothing here feeds back into extraction.
package snowball

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/gutencore"
	"github.com/kljensen/snowball"
)

// Defaults for report sizing.
const (
	DefaultTopN                = 20
	DefaultMinCollocationCount = 2
	DefaultConcordanceLimit    = 25
)

// stopwords are excluded from frequency and collocation statistics.
// Function words dominate any raw count and say nothing about a book.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true,
	"him": true, "his": true, "i": true, "in": true, "is": true, "it": true,
	"its": true, "me": true, "my": true, "not": true, "of": true, "on": true,
	"or": true, "she": true, "so": true, "that": true, "the": true,
	"their": true, "them": true, "they": true, "this": true, "to": true,
	"was": true, "we": true, "were": true, "which": true, "with": true,
	"you": true, "your": true,
}

// Ensure Analyzer implements gutencore.Analyzer at compile time.
var _ gutencore.Analyzer = (*Analyzer)(nil)

// Analyzer computes descriptive statistics over a cleaned text.
type Analyzer struct {
	// TopN caps the frequency and collocation lists.
	// Defaults to DefaultTopN.
	TopN int

	// MinCollocationCount drops pairs seen fewer times.
	// Defaults to DefaultMinCollocationCount.
	MinCollocationCount int
}

// NewAnalyzer creates an Analyzer with default settings.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		TopN:                DefaultTopN,
		MinCollocationCount: DefaultMinCollocationCount,
	}
}

// token is a word occurrence with its byte span in the source text.
type token struct {
	text  string // lowercased
	start int
	end   int
}

// tokenize splits text into lowercased word tokens with byte offsets.
// A word is a maximal run of letters, digits, and interior apostrophes.
func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
		if isWord && start < 0 {
			start = i
		}
		if !isWord && start >= 0 {
			tokens = append(tokens, newToken(text, start, i))
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, newToken(text, start, len(text)))
	}
	return tokens
}

func newToken(text string, start, end int) token {
	word := strings.Trim(text[start:end], "'")
	return token{text: strings.ToLower(word), start: start, end: end}
}

// Tokenize returns the lowercased word tokens of text.
func Tokenize(text string) []string {
	tokens := tokenize(text)
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.text != "" {
			words = append(words, t.text)
		}
	}
	return words
}

// Analyze tokenizes the text and returns frequency and collocation
// statistics.
func (a *Analyzer) Analyze(text string) (*gutencore.AnalysisReport, error) {
	words := Tokenize(text)
	if len(words) == 0 {
		return nil, gutencore.Errorf(gutencore.EINVALID, "no tokens in text")
	}

	types := make(map[string]bool, len(words))
	for _, w := range words {
		types[w] = true
	}

	report := &gutencore.AnalysisReport{
		TokenCount:   len(words),
		TypeCount:    len(types),
		TopWords:     a.topWords(words),
		Collocations: a.collocations(words),
	}
	return report, nil
}

// topWords counts content words grouped by stem. Each group is reported
// under its most frequent surface form.
func (a *Analyzer) topWords(words []string) []gutencore.WordCount {
	stemCounts := make(map[string]int)
	surfaceCounts := make(map[string]map[string]int)

	for _, w := range words {
		if stopwords[w] || len(w) < 3 {
			continue
		}
		s := stem(w)
		stemCounts[s]++
		if surfaceCounts[s] == nil {
			surfaceCounts[s] = make(map[string]int)
		}
		surfaceCounts[s][w]++
	}

	counts := make([]gutencore.WordCount, 0, len(stemCounts))
	for s, n := range stemCounts {
		counts = append(counts, gutencore.WordCount{Word: commonestForm(surfaceCounts[s]), Count: n})
	}
	sortCounts(counts)
	return truncateCounts(counts, a.topN())
}

// collocations counts adjacent content-word pairs.
func (a *Analyzer) collocations(words []string) []gutencore.Collocation {
	pairCounts := make(map[[2]string]int)
	for i := 0; i+1 < len(words); i++ {
		first, second := words[i], words[i+1]
		if stopwords[first] || stopwords[second] || len(first) < 3 || len(second) < 3 {
			continue
		}
		pairCounts[[2]string{first, second}]++
	}

	minCount := a.MinCollocationCount
	if minCount <= 0 {
		minCount = DefaultMinCollocationCount
	}

	var pairs []gutencore.Collocation
	for pair, n := range pairCounts {
		if n < minCount {
			continue
		}
		pairs = append(pairs, gutencore.Collocation{First: pair[0], Second: pair[1], Count: n})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		if pairs[i].First != pairs[j].First {
			return pairs[i].First < pairs[j].First
		}
		return pairs[i].Second < pairs[j].Second
	})
	if len(pairs) > a.topN() {
		pairs = pairs[:a.topN()]
	}
	return pairs
}

// Concordance returns keyword-in-context lines for word, with at most
// width characters of context on each side. Matching is case-insensitive
// on whole tokens. At most DefaultConcordanceLimit lines are returned.
func (a *Analyzer) Concordance(text, word string, width int) []gutencore.ConcordanceLine {
	target := strings.ToLower(word)
	if target == "" {
		return nil
	}
	if width <= 0 {
		width = 40
	}

	var lines []gutencore.ConcordanceLine
	for _, t := range tokenize(text) {
		if t.text != target {
			continue
		}
		lo := max(0, t.start-width)
		for lo < t.start && !utf8.RuneStart(text[lo]) {
			lo++
		}
		hi := min(len(text), t.end+width)
		for hi > t.end && hi < len(text) && !utf8.RuneStart(text[hi]) {
			hi--
		}
		lines = append(lines, gutencore.ConcordanceLine{
			Left:    flatten(text[lo:t.start]),
			Keyword: text[t.start:t.end],
			Right:   flatten(text[t.end:hi]),
		})
		if len(lines) == DefaultConcordanceLimit {
			break
		}
	}
	return lines
}

func (a *Analyzer) topN() int {
	if a.TopN > 0 {
		return a.TopN
	}
	return DefaultTopN
}

// stem reduces a word to its English Snowball stem, falling back to the
// word itself for anything the stemmer rejects.
func stem(word string) string {
	s, err := snowball.Stem(word, "english", true)
	if err != nil || s == "" {
		return word
	}
	return s
}

func commonestForm(forms map[string]int) string {
	best, bestCount := "", -1
	for form, n := range forms {
		if n > bestCount || (n == bestCount && form < best) {
			best, bestCount = form, n
		}
	}
	return best
}

func sortCounts(counts []gutencore.WordCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})
}

func truncateCounts(counts []gutencore.WordCount, n int) []gutencore.WordCount {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

// flatten collapses line breaks so a concordance line prints on one row.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
