package gutencore

import (
	"context"
	"strings"
)

// CoreTextWriter persists the extracted literary core.
type CoreTextWriter interface {
	// WriteCoreText writes the cleaned text keyed by ebook ID,
	// overwriting any previous file for the same ID. Returns the written
	// path.
	WriteCoreText(ctx context.Context, ebookID, text string) (path string, err error)
}

// LocateStart returns the byte offset of the best occurrence of the start
// anchor in raw, or -1 if the anchor does not occur at all.
//
// A start anchor such as a chapter heading frequently occurs twice: once in
// the table of contents and once above the prose itself. A ToC entry runs
// straight on to more text, whereas a genuine heading is separated from the
// prose below by a blank line, so the first occurrence followed by a blank
// line wins. Falls back to the first occurrence if none qualifies.
func LocateStart(raw, anchor string) int {
	positions := occurrences(raw, anchor)
	if len(positions) == 0 {
		return -1
	}
	for _, pos := range positions {
		if followedByBlankLine(raw, pos+len(anchor)) {
			return pos
		}
	}
	return positions[0]
}

// SliceCore extracts the literary core of raw: the substring between the
// end of the start anchor and the beginning of the first end-anchor
// occurrence at or after it.
//
// Both anchors must occur verbatim (byte-for-byte) in raw; a missing
// anchor fails with EANCHOR. An end anchor that occurs only before the
// start anchor fails with EANCHORORDER. There is no fallback to the full
// text.
func SliceCore(raw string, start, end Anchor) (string, error) {
	if err := start.Validate(); err != nil {
		return "", err
	}
	if err := end.Validate(); err != nil {
		return "", err
	}

	startPos := LocateStart(raw, start.Text)
	if startPos < 0 {
		return "", Errorf(EANCHOR, "start anchor %q not found in source text", start.Text)
	}
	from := startPos + len(start.Text)

	if !strings.Contains(raw, end.Text) {
		return "", Errorf(EANCHOR, "end anchor %q not found in source text", end.Text)
	}

	rel := strings.Index(raw[from:], end.Text)
	if rel < 0 {
		return "", Errorf(EANCHORORDER, "end anchor %q precedes start anchor %q", end.Text, start.Text)
	}

	return raw[from : from+rel], nil
}

// occurrences returns the offsets of all non-overlapping occurrences of
// marker in text, in order.
func occurrences(text, marker string) []int {
	if marker == "" {
		return nil
	}
	var positions []int
	offset := 0
	for {
		idx := strings.Index(text[offset:], marker)
		if idx < 0 {
			return positions
		}
		positions = append(positions, offset+idx)
		offset += idx + len(marker)
	}
}

// followedByBlankLine reports whether the text at offset starts with a
// blank line, i.e. two consecutive line breaks. Tolerates CRLF endings,
// which Gutenberg plain-text editions use throughout.
func followedByBlankLine(text string, offset int) bool {
	rest := text[min(offset, len(text)):]
	for range 2 {
		rest = strings.TrimPrefix(rest, "\r")
		if !strings.HasPrefix(rest, "\n") {
			return false
		}
		rest = rest[1:]
	}
	return true
}
