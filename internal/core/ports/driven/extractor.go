package driven

import "context"

// TextExtractor turns source files into plain text for chunking.
// Selection is by file extension; unsupported formats fail with
// domain.ErrUnsupportedType.
type TextExtractor interface {
	// Supports reports whether the file at path has a registered extractor.
	Supports(path string) bool

	// Extract reads the file and returns its plain text content.
	Extract(ctx context.Context, path string) (string, error)
}
