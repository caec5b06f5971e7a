// Package fs provides file-based persistence for metadata records and
// extracted core texts.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/gutencore"
)

// Default output directories, relative to the data directory.
const (
	MetadataDirName = "metadata"
	CoreTextDirName = "core_txts"
)

// MetadataPath returns the metadata file path for an ebook ID.
func MetadataPath(dir, ebookID string) string {
	return filepath.Join(dir, ebookID+".metadata.json")
}

// CoreTextPath returns the cleaned-text file path for an ebook ID.
func CoreTextPath(dir, ebookID string) string {
	return filepath.Join(dir, ebookID+"_clean.txt")
}

// Ensure MetadataWriter implements gutencore.MetadataWriter at compile time.
var _ gutencore.MetadataWriter = (*MetadataWriter)(nil)

// MetadataWriter writes metadata records as JSON files to a directory.
type MetadataWriter struct {
	dir string
}

// NewMetadataWriter creates a MetadataWriter rooted at dir.
func NewMetadataWriter(dir string) *MetadataWriter {
	return &MetadataWriter{dir: dir}
}

// WriteMetadata writes the record to <dir>/<id>.metadata.json, overwriting
// any existing file for the same ID.
func (w *MetadataWriter) WriteMetadata(ctx context.Context, meta *gutencore.Metadata) (string, error) {
	if err := meta.Validate(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}

	path := MetadataPath(w.dir, meta.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Ensure CoreTextWriter implements gutencore.CoreTextWriter at compile time.
var _ gutencore.CoreTextWriter = (*CoreTextWriter)(nil)

// CoreTextWriter writes cleaned texts as UTF-8 plain-text files to a
// directory.
type CoreTextWriter struct {
	dir string
}

// NewCoreTextWriter creates a CoreTextWriter rooted at dir.
func NewCoreTextWriter(dir string) *CoreTextWriter {
	return &CoreTextWriter{dir: dir}
}

// WriteCoreText writes the text to <dir>/<id>_clean.txt, overwriting any
// existing file for the same ID.
func (w *CoreTextWriter) WriteCoreText(ctx context.Context, ebookID, text string) (string, error) {
	if ebookID == "" {
		return "", gutencore.Errorf(gutencore.EINVALID, "ebook ID required")
	}
	if text == "" {
		return "", gutencore.Errorf(gutencore.EINVALID, "core text required")
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}

	path := CoreTextPath(w.dir, ebookID)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", err
	}
	return path, nil
}
