// Package resolve implements anchor resolution as a three-stage pipeline
// of model calls: map candidate boundary lines, select the best one, then
// extract it as an exact literal substring. Each stage is a pure function
// of the previous stage's output and the text window, so each can be unit
// tested with stubbed completions.
package resolve

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/gutencore"
)

// DefaultMaxCandidates bounds the map stage's output.
const DefaultMaxCandidates = 5

// Ensure Resolver implements gutencore.AnchorResolver at compile time.
var _ gutencore.AnchorResolver = (*Resolver)(nil)

// Resolver locates boundary anchors through up to three sequential model
// calls per boundary; the select call is skipped when the map stage yields
// a single candidate. No retries: a single bad response aborts resolution.
type Resolver struct {
	completer gutencore.Completer

	// MaxCandidates is the cap passed to the map stage.
	// Defaults to DefaultMaxCandidates.
	MaxCandidates int
}

// NewResolver creates a Resolver on top of the given Completer.
func NewResolver(completer gutencore.Completer) *Resolver {
	return &Resolver{completer: completer, MaxCandidates: DefaultMaxCandidates}
}

// Resolve runs the map, select, and extract stages for one boundary and
// returns the resulting anchor. The anchor is untrusted until verified
// against the raw text.
func (r *Resolver) Resolve(ctx context.Context, window gutencore.TruncatedWindow, boundary gutencore.Boundary) (gutencore.Anchor, error) {
	text := boundary.Window(window)
	if text == "" {
		return gutencore.Anchor{}, gutencore.Errorf(gutencore.EINVALID, "empty text window for %s boundary", boundary)
	}

	candidates, err := r.MapCandidates(ctx, text, boundary)
	if err != nil {
		return gutencore.Anchor{}, err
	}

	selected, err := r.SelectCandidate(ctx, text, boundary, candidates)
	if err != nil {
		return gutencore.Anchor{}, err
	}

	return r.ExtractAnchor(ctx, text, boundary, selected)
}

// MapCandidates asks the model to list candidate boundary lines in the
// text window. Returns EMODEL if the model proposes nothing usable.
func (r *Resolver) MapCandidates(ctx context.Context, text string, boundary gutencore.Boundary) ([]gutencore.Candidate, error) {
	prompt := fmt.Sprintf(mapPromptTmpl, r.maxCandidates(), describeBoundary(boundary), text)

	resp, err := r.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	candidates := ParseCandidates(resp, r.maxCandidates())
	if len(candidates) == 0 {
		return nil, gutencore.Errorf(gutencore.EMODEL, "model returned no %s boundary candidates", boundary)
	}
	return candidates, nil
}

// SelectCandidate asks the model to pick the single best candidate.
// The model is told to answer with a number; a verbatim candidate line is
// also accepted. Anything else is EMODEL.
func (r *Resolver) SelectCandidate(ctx context.Context, text string, boundary gutencore.Boundary, candidates []gutencore.Candidate) (gutencore.Candidate, error) {
	if len(candidates) == 0 {
		return "", gutencore.Errorf(gutencore.EINVALID, "no candidates to select from")
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	var sb strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, c)
	}

	prompt := fmt.Sprintf(selectPromptTmpl, describeBoundary(boundary), text, sb.String())

	resp, err := r.completer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	answer := cleanLine(resp)
	if answer == "" {
		return "", gutencore.Errorf(gutencore.EMODEL, "model returned empty selection for %s boundary", boundary)
	}

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(candidates) {
			return "", gutencore.Errorf(gutencore.EMODEL, "model selected candidate %d of %d", n, len(candidates))
		}
		return candidates[n-1], nil
	}

	for _, c := range candidates {
		if string(c) == answer {
			return c, nil
		}
	}
	return "", gutencore.Errorf(gutencore.EMODEL, "model selection %q matches no candidate", answer)
}

// ExtractAnchor asks the model for the selected candidate as an exact
// literal substring and returns it as the boundary's anchor.
func (r *Resolver) ExtractAnchor(ctx context.Context, text string, boundary gutencore.Boundary, selected gutencore.Candidate) (gutencore.Anchor, error) {
	prompt := fmt.Sprintf(extractPromptTmpl, describeBoundary(boundary), selected, text)

	resp, err := r.completer.Complete(ctx, prompt)
	if err != nil {
		return gutencore.Anchor{}, err
	}

	anchorText := cleanBlock(resp)
	if anchorText == "" {
		return gutencore.Anchor{}, gutencore.Errorf(gutencore.EMODEL, "model returned empty anchor for %s boundary", boundary)
	}

	anchor := gutencore.Anchor{Boundary: boundary, Text: anchorText}
	if err := anchor.Validate(); err != nil {
		return gutencore.Anchor{}, err
	}
	return anchor, nil
}

func (r *Resolver) maxCandidates() int {
	if r.MaxCandidates > 0 {
		return r.MaxCandidates
	}
	return DefaultMaxCandidates
}

func describeBoundary(boundary gutencore.Boundary) string {
	if boundary == gutencore.BoundaryEnd {
		return endBoundaryDesc
	}
	return startBoundaryDesc
}

// ParseCandidates parses the map stage's response into candidate lines:
// one candidate per non-empty line, list markers and surrounding quotes
// stripped, capped at max.
func ParseCandidates(resp string, max int) []gutencore.Candidate {
	var candidates []gutencore.Candidate
	for _, line := range strings.Split(stripCodeFence(resp), "\n") {
		c := cleanLine(line)
		if c == "" {
			continue
		}
		candidates = append(candidates, gutencore.Candidate(c))
		if len(candidates) == max {
			break
		}
	}
	return candidates
}

var listMarkerTrims = []string{"- ", "* ", "• "}

// cleanLine trims a single model-output line: whitespace, list markers,
// numbered-list prefixes, and surrounding quotes.
func cleanLine(line string) string {
	s := strings.TrimSpace(line)
	for _, marker := range listMarkerTrims {
		s = strings.TrimPrefix(s, marker)
	}
	// Numbered-list prefix such as "3. " or "3) ".
	if i := strings.IndexAny(s, ".)"); i > 0 && i <= 3 {
		if _, err := strconv.Atoi(s[:i]); err == nil && i+1 < len(s) && s[i+1] == ' ' {
			s = s[i+2:]
		}
	}
	s = strings.TrimSpace(s)
	s = trimMatchingQuotes(s)
	return strings.TrimSpace(s)
}

// cleanBlock trims a whole-response extraction: code fences, outer
// whitespace, and surrounding quotes. Interior newlines survive, since an
// anchor may legitimately span lines.
func cleanBlock(resp string) string {
	s := strings.TrimSpace(stripCodeFence(resp))
	return trimMatchingQuotes(s)
}

func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return s
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.Index(t, "\n"); i >= 0 {
		t = t[i+1:] // drop a language tag on the opening fence
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

func trimMatchingQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
