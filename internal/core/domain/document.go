package domain

import "time"

// Document represents an ingested source document with derived metadata.
// Documents are keyed by filename: re-ingesting the same filename replaces
// the prior document and its chunk set.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the base name of the source file. Unique per store.
	Filename string

	// Organization is the free-text label supplied at ingest time.
	Organization string

	// DocType is the derived document type tag (see taxonomy.go).
	DocType string

	// GeographicFocus is the derived geography tag (see taxonomy.go).
	GeographicFocus string

	// Topic is the derived topic tag (see taxonomy.go).
	Topic string

	// FileSize is the size of the source file in bytes.
	FileSize int64

	// IngestedAt is when the document was (last) ingested.
	IngestedAt time.Time
}

// Tags holds the metadata derived from a document's filename.
// Fields that could not be derived carry the Unknown sentinel, never "".
type Tags struct {
	DocType         string
	GeographicFocus string
	Topic           string
}

// Chunk represents an embedded, searchable segment of a document.
// Chunks are the atomic unit of retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Position is the zero-based sequence index within the document.
	// Positions are dense: 0, 1, 2, ... with no gaps.
	Position int

	// Content is the text content of this chunk.
	Content string

	// TokenCount is the number of tokens in Content.
	TokenCount int

	// StartToken and EndToken are token offsets into the source text,
	// kept for provenance. EndToken is exclusive.
	StartToken int
	EndToken   int

	// Embedding is the vector representation for similarity search.
	// Its length must equal the embedder's configured dimensionality.
	Embedding []float32
}

// ChunkCandidate is a chunk boundary produced by the chunker, before
// embedding and identity assignment.
type ChunkCandidate struct {
	// Position is the zero-based sequence index within the document.
	Position int

	// Content is the exact byte range of the source text spanning the
	// candidate's tokens.
	Content string

	// TokenCount is the number of tokens in Content.
	TokenCount int

	// StartToken and EndToken are token offsets into the source text.
	// EndToken is exclusive.
	StartToken int
	EndToken   int
}
