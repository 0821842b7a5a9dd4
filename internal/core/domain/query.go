package domain

import "fmt"

// NoContextMarker is returned as the context of an empty RetrievalResult.
// Downstream generation must state the limitation instead of fabricating
// an answer when it sees this marker.
const NoContextMarker = "No relevant context found."

// Filters is a set of equality predicates on document metadata.
// An empty field places no constraint. The Unknown sentinel is a real
// value and may be matched explicitly.
type Filters struct {
	DocType         string
	GeographicFocus string
	Topic           string
}

// IsZero returns true if no filter is set.
func (f Filters) IsZero() bool {
	return f.DocType == "" && f.GeographicFocus == "" && f.Topic == ""
}

// Query is a retrieval request against the document corpus.
type Query struct {
	// Question is the natural-language question text.
	Question string

	// MaxResults is the maximum number of chunks to return. Must be > 0.
	MaxResults int

	// SimilarityThreshold is the minimum cosine similarity a chunk must
	// meet to be included. Must be in [0, 1].
	SimilarityThreshold float64

	// Filters restricts the search to matching documents.
	Filters Filters
}

// Validate checks query parameters, returning ErrInvalidQuery on failure.
func (q Query) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("%w: question is empty", ErrInvalidQuery)
	}
	if q.MaxResults <= 0 {
		return fmt.Errorf("%w: max results must be positive, got %d", ErrInvalidQuery, q.MaxResults)
	}
	if q.SimilarityThreshold < 0 || q.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity threshold must be in [0,1], got %g", ErrInvalidQuery, q.SimilarityThreshold)
	}
	return nil
}

// Match is a single retrieval hit: a chunk, its parent document, and the
// similarity score between the chunk and the query.
type Match struct {
	Chunk    Chunk
	Document Document
	Score    float64
}

// SourceAttribution identifies where a retrieved chunk came from.
type SourceAttribution struct {
	Filename     string
	Organization string
	DocType      string
	Score        float64
}

// RetrievalResult is the outcome of a retrieval: matches sorted by
// descending score (ties broken by ascending chunk position), the
// assembled context block, and parallel source attributions.
type RetrievalResult struct {
	Matches []Match
	Context string
	Sources []SourceAttribution
}

// Empty returns true if retrieval produced no matches.
func (r RetrievalResult) Empty() bool {
	return len(r.Matches) == 0
}

// Answer is the outcome of a grounded question-answering call.
type Answer struct {
	// Text is the generated answer, or the limitation message when no
	// relevant context was found.
	Text string

	// Sources lists the documents that grounded the answer.
	Sources []SourceAttribution

	// Context is the assembled context block the answer was grounded on.
	// Useful for debugging; not shown by default.
	Context string
}
