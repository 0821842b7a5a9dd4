package driving

import (
	"context"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
)

// AskService answers natural-language questions over the document corpus.
type AskService interface {
	// Retrieve runs the retrieval pipeline only: embed the question, search
	// with filters, threshold, rank, and assemble context. Never errors on
	// an empty result set; the result carries the no-context marker instead.
	Retrieve(ctx context.Context, query domain.Query) (*domain.RetrievalResult, error)

	// Ask runs retrieval and grounds an LLM answer on the result. When
	// retrieval finds nothing, the answer states the limitation without
	// calling the LLM.
	Ask(ctx context.Context, query domain.Query) (*domain.Answer, error)
}
