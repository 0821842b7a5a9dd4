package services

import (
	"unicode"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
)

// DefaultMaxTokens is the default maximum number of tokens per chunk.
const DefaultMaxTokens = 1000

// DefaultOverlapTokens is the default number of tokens shared by
// consecutive chunks.
const DefaultOverlapTokens = 200

// Chunker splits document text into overlapping token-bounded segments.
// Chunking is deterministic: identical text always yields byte-identical
// chunk boundaries, which re-ingestion and the tests rely on.
type Chunker struct {
	maxTokens     int
	overlapTokens int
}

// ChunkerOption configures the chunker.
type ChunkerOption func(*Chunker)

// WithMaxTokens sets the maximum chunk size in tokens.
func WithMaxTokens(n int) ChunkerOption {
	return func(c *Chunker) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithOverlapTokens sets the overlap between consecutive chunks in tokens.
func WithOverlapTokens(n int) ChunkerOption {
	return func(c *Chunker) {
		if n >= 0 {
			c.overlapTokens = n
		}
	}
}

// NewChunker creates a chunker with the given options.
func NewChunker(opts ...ChunkerOption) *Chunker {
	c := &Chunker{
		maxTokens:     DefaultMaxTokens,
		overlapTokens: DefaultOverlapTokens,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap leaves a positive stride
	if c.overlapTokens >= c.maxTokens {
		c.overlapTokens = c.maxTokens / 4
	}

	return c
}

// MaxTokens returns the configured maximum chunk size.
func (c *Chunker) MaxTokens() int {
	return c.maxTokens
}

// OverlapTokens returns the configured overlap.
func (c *Chunker) OverlapTokens() int {
	return c.overlapTokens
}

// tokenSpan is a token's byte range within the source text.
type tokenSpan struct {
	start int
	end   int
}

// tokenize splits text into whitespace-delimited tokens, recording byte
// offsets so chunk content can be cut from the original text verbatim.
func tokenize(text string) []tokenSpan {
	var spans []tokenSpan
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, tokenSpan{start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, tokenSpan{start: start, end: len(text)})
	}
	return spans
}

// CountTokens returns the number of tokens in text under the chunker's
// token approximation.
func CountTokens(text string) int {
	return len(tokenize(text))
}

// Chunk splits text into candidates of at most maxTokens tokens where
// consecutive candidates share exactly overlapTokens tokens. The final
// candidate may be shorter and has no trailing overlap. Empty text yields
// no candidates.
func (c *Chunker) Chunk(text string) []domain.ChunkCandidate {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	stride := c.maxTokens - c.overlapTokens

	estimated := len(tokens)/stride + 1
	candidates := make([]domain.ChunkCandidate, 0, estimated)

	position := 0
	for start := 0; start < len(tokens); start += stride {
		end := start + c.maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}

		candidates = append(candidates, domain.ChunkCandidate{
			Position:   position,
			Content:    text[tokens[start].start:tokens[end-1].end],
			TokenCount: end - start,
			StartToken: start,
			EndToken:   end,
		})
		position++

		// A chunk reaching the last token ends the sequence; anything
		// after it would be wholly contained in this chunk.
		if end == len(tokens) {
			break
		}
	}

	return candidates
}
