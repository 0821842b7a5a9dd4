package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/oceanus-cli/internal/extractors/markdown"
	"github.com/custodia-labs/oceanus-cli/internal/extractors/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.TextExtractor = (*Registry)(nil)

// FileExtractor extracts plain text from files of a specific format.
type FileExtractor interface {
	// Extensions returns the lowercase file extensions this extractor
	// handles, including the leading dot.
	Extensions() []string

	// Extract reads the file and returns its plain text content.
	Extract(ctx context.Context, path string) (string, error)
}

// Registry routes extraction to format extractors by file extension.
type Registry struct {
	byExt map[string]FileExtractor
}

// NewRegistry creates a registry with the given extractors. Later
// extractors win extension conflicts.
func NewRegistry(extractors ...FileExtractor) *Registry {
	r := &Registry{byExt: make(map[string]FileExtractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[strings.ToLower(ext)] = e
		}
	}
	return r
}

// NewDefaultRegistry creates a registry with all built-in extractors.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		plaintext.New(),
		markdown.New(),
	)
}

// Supports reports whether the file at path has a registered extractor.
func (r *Registry) Supports(path string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extract reads the file and returns its plain text content.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		if ext == ".pdf" {
			return "", fmt.Errorf("%w: PDF extraction is not built in; convert %s to .txt or .md first", domain.ErrUnsupportedType, filepath.Base(path))
		}
		return "", fmt.Errorf("%w: no extractor for %q files", domain.ErrUnsupportedType, ext)
	}
	return e.Extract(ctx, path)
}

// SupportedExtensions returns the registered extensions, for help text.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}
