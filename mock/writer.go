package mock

import (
	"context"

	"github.com/fwojciec/gutencore"
)

var _ gutencore.MetadataWriter = (*MetadataWriter)(nil)

// MetadataWriter is a mock implementation of gutencore.MetadataWriter.
type MetadataWriter struct {
	WriteMetadataFn func(ctx context.Context, meta *gutencore.Metadata) (string, error)
}

func (w *MetadataWriter) WriteMetadata(ctx context.Context, meta *gutencore.Metadata) (string, error) {
	return w.WriteMetadataFn(ctx, meta)
}

var _ gutencore.CoreTextWriter = (*CoreTextWriter)(nil)

// CoreTextWriter is a mock implementation of gutencore.CoreTextWriter.
type CoreTextWriter struct {
	WriteCoreTextFn func(ctx context.Context, ebookID, text string) (string, error)
}

func (w *CoreTextWriter) WriteCoreText(ctx context.Context, ebookID, text string) (string, error) {
	return w.WriteCoreTextFn(ctx, ebookID, text)
}
