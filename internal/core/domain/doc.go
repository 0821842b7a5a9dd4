// Package domain defines the core business entities for Oceanus.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested document with derived metadata tags
//   - Chunk: An embedded, searchable segment of a document
//   - Query: A retrieval request with filters and thresholds
//   - RetrievalResult: Ranked chunks with assembled context
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
