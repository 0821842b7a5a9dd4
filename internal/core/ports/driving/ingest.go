package driving

import "context"

// IngestService ingests documents into the knowledge base.
type IngestService interface {
	// IngestFile ingests a single file under the given organization label.
	IngestFile(ctx context.Context, path, organization string) (*DocumentReport, error)

	// IngestPath ingests a file or every supported file in a directory.
	// Individual document failures are recorded in the report; they do not
	// abort the batch.
	IngestPath(ctx context.Context, path, organization string) (*IngestReport, error)

	// Watch ingests supported files in dir as they are created or modified,
	// until ctx is cancelled.
	Watch(ctx context.Context, dir, organization string) error
}

// DocumentReport describes the outcome of ingesting one document.
type DocumentReport struct {
	// Filename is the base name of the ingested file.
	Filename string

	// DocumentID is the stored document's ID. Empty on failure.
	DocumentID string

	// ChunkCount is the number of chunks written.
	ChunkCount int

	// Replaced is true if a prior document with the same filename was
	// replaced.
	Replaced bool

	// Error is the failure reason, empty on success.
	Error string
}

// Ok returns true if the document was ingested successfully.
func (r DocumentReport) Ok() bool {
	return r.Error == ""
}

// IngestReport aggregates per-document outcomes for a batch.
type IngestReport struct {
	Documents []DocumentReport
	Succeeded int
	Failed    int
}
