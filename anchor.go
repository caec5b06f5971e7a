package gutencore

import "context"

// Boundary identifies which end of the literary core an anchor marks.
type Boundary string

// Boundary constants.
const (
	BoundaryStart Boundary = "start"
	BoundaryEnd   Boundary = "end"
)

// Window returns the half of the truncated window relevant to the
// boundary: the head for the start anchor, the tail for the end anchor.
func (b Boundary) Window(w TruncatedWindow) string {
	if b == BoundaryEnd {
		return w.Tail
	}
	return w.Head
}

// Anchor is a short literal substring of the raw text marking one boundary
// of the literary core. An anchor is only valid once it has been verified
// to occur verbatim in the raw text.
type Anchor struct {
	Boundary Boundary `json:"boundary"`
	Text     string   `json:"text"`
}

// Validate returns an error if the anchor contains invalid fields.
func (a Anchor) Validate() error {
	if a.Boundary != BoundaryStart && a.Boundary != BoundaryEnd {
		return Errorf(EINVALID, "anchor boundary must be start or end")
	}
	if a.Text == "" {
		return Errorf(EINVALID, "anchor text required")
	}
	return nil
}

// Candidate is one model-proposed boundary line awaiting selection.
type Candidate string

// Completer is a synchronous language-model completion capability: one
// prompt in, one text completion out. No streaming.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnchorResolver locates the anchor for one boundary of the literary core.
type AnchorResolver interface {
	// Resolve inspects the relevant half of the truncated window and
	// returns the anchor for the given boundary. Returns EMODEL if the
	// model output is empty or malformed. The returned anchor is
	// untrusted until verified against the raw text.
	Resolve(ctx context.Context, window TruncatedWindow, boundary Boundary) (Anchor, error)
}
