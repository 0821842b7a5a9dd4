package driven

import (
	"context"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
)

// VectorStore persists documents and embedded chunks and executes
// metadata-filtered similarity search.
//
// Write-path contract: a document's chunks are replaced atomically with
// respect to readers - no reader observes a mix of old and new chunks for
// a re-ingested document.
//
// Failure modes: connectivity or IO failure surfaces as
// domain.ErrStoreUnavailable; constraint violations (embedding dimension
// mismatch, missing parent document) surface as domain.ErrDataIntegrity.
type VectorStore interface {
	// UpsertDocument stores a document, replacing by filename: if a
	// document with the same filename exists, its identity is kept and its
	// metadata updated. Returns the document ID to write chunks under.
	UpsertDocument(ctx context.Context, doc *domain.Document) (string, error)

	// ReplaceChunks atomically swaps the document's chunk set for the given
	// chunks. Every embedding must match the store's configured
	// dimensionality.
	ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// Search finds the topK chunks nearest to the query vector, restricted
	// to documents matching the filters. Filters are pushed into the query
	// itself, never applied after the top-k cut. Results are ordered by
	// descending similarity, ties broken by ascending chunk position.
	// No score threshold is applied; that is the caller's job.
	Search(ctx context.Context, query []float32, filters domain.Filters, topK int) ([]VectorHit, error)

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves a document's chunks ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns all stored documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and, by cascade, its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}

// VectorHit is a single similarity search result, hydrated with the chunk
// and its parent document.
type VectorHit struct {
	// Chunk is the matched chunk.
	Chunk domain.Chunk

	// Document is the chunk's parent document.
	Document domain.Document

	// Score is the cosine similarity to the query vector (0-1, higher is
	// more similar).
	Score float64
}
