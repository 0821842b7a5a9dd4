package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid caller input.
	// Never retried; surfaced immediately before any external call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidQuery indicates malformed query parameters.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnsupportedType indicates a file format with no registered extractor.
	ErrUnsupportedType = errors.New("unsupported type")

	// Infrastructure Errors.

	// ErrEmbeddingService indicates the embedding service failed after
	// bounded retries. Fatal for the calling operation.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrStoreUnavailable indicates the vector store could not be reached
	// or an operation on it failed. Not retried silently; the caller decides.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrDataIntegrity indicates a schema or invariant violation such as
	// an embedding dimension mismatch or an orphaned chunk. Never retried;
	// it points at a bug or corrupted state.
	ErrDataIntegrity = errors.New("data integrity violation")

	// Configuration Errors.

	// ErrEmbeddingUnavailable indicates no embedding service is configured.
	// Ingestion and retrieval are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates no LLM service is configured.
	// Retrieval still works; answer generation is disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
