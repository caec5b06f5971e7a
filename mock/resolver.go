package mock

import (
	"context"

	"github.com/fwojciec/gutencore"
)

var _ gutencore.AnchorResolver = (*AnchorResolver)(nil)

// AnchorResolver is a mock implementation of gutencore.AnchorResolver.
type AnchorResolver struct {
	ResolveFn func(ctx context.Context, window gutencore.TruncatedWindow, boundary gutencore.Boundary) (gutencore.Anchor, error)
}

func (r *AnchorResolver) Resolve(ctx context.Context, window gutencore.TruncatedWindow, boundary gutencore.Boundary) (gutencore.Anchor, error) {
	return r.ResolveFn(ctx, window, boundary)
}
