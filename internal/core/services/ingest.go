package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/oceanus-cli/internal/logger"
)

// watchDebounce coalesces bursts of filesystem events for the same file
// into a single re-ingest.
const watchDebounce = 500 * time.Millisecond

// Ingester runs the ingestion pipeline: extract text, tag metadata from the
// filename, chunk, embed, and persist document and chunks.
type Ingester struct {
	extractor driven.TextExtractor
	chunker   *Chunker
	embedder  driven.EmbeddingService
	store     driven.VectorStore
}

// NewIngester creates the ingestion service.
func NewIngester(
	extractor driven.TextExtractor,
	chunker *Chunker,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
) *Ingester {
	return &Ingester{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
	}
}

// IngestFile ingests a single file under the given organization label.
func (s *Ingester) IngestFile(ctx context.Context, path, organization string) (*driving.DocumentReport, error) {
	filename := filepath.Base(path)
	report := &driving.DocumentReport{Filename: filename}

	logger.Section("Ingest: " + filename)

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, not a file", domain.ErrInvalidInput, path)
	}

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	candidates := s.chunker.Chunk(text)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s contains no text", domain.ErrInvalidInput, filename)
	}
	logger.Debug("Chunked into %d chunks", len(candidates))

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %s: %w", filename, err)
	}
	if len(vectors) != len(candidates) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d chunks", domain.ErrEmbeddingService, len(vectors), len(candidates))
	}

	tags := ExtractTags(filename)
	doc := &domain.Document{
		ID:              uuid.New().String(),
		Filename:        filename,
		Organization:    organization,
		DocType:         tags.DocType,
		GeographicFocus: tags.GeographicFocus,
		Topic:           tags.Topic,
		FileSize:        info.Size(),
		IngestedAt:      time.Now().UTC(),
	}

	// The store keeps the existing ID when the filename is already known,
	// so the returned ID is authoritative.
	docID, err := s.store.UpsertDocument(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("store document %s: %w", filename, err)
	}
	report.Replaced = docID != doc.ID
	report.DocumentID = docID

	chunks := make([]domain.Chunk, len(candidates))
	for i, c := range candidates {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: docID,
			Position:   c.Position,
			Content:    c.Content,
			TokenCount: c.TokenCount,
			StartToken: c.StartToken,
			EndToken:   c.EndToken,
			Embedding:  vectors[i],
		}
	}
	if err := s.store.ReplaceChunks(ctx, docID, chunks); err != nil {
		return nil, fmt.Errorf("store chunks for %s: %w", filename, err)
	}

	report.ChunkCount = len(chunks)
	logger.Info("Ingested %s: %d chunks (doc_type=%s, region=%s, topic=%s)",
		filename, len(chunks), tags.DocType, tags.GeographicFocus, tags.Topic)
	return report, nil
}

// IngestPath ingests a file, or every supported file in a directory.
// Per-document failures are recorded and the batch continues.
func (s *Ingester) IngestPath(ctx context.Context, path, organization string) (*driving.IngestReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			full := filepath.Join(path, entry.Name())
			if s.extractor.Supports(full) {
				files = append(files, full)
			}
		}
		sort.Strings(files)
		if len(files) == 0 {
			return nil, fmt.Errorf("%w: no supported files in %s", domain.ErrInvalidInput, path)
		}
	} else {
		files = []string{path}
	}

	report := &driving.IngestReport{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		doc, err := s.IngestFile(ctx, file, organization)
		if err != nil {
			logger.Warn("Failed to ingest %s: %v", filepath.Base(file), err)
			report.Documents = append(report.Documents, driving.DocumentReport{
				Filename: filepath.Base(file),
				Error:    err.Error(),
			})
			report.Failed++
			continue
		}
		report.Documents = append(report.Documents, *doc)
		report.Succeeded++
	}
	return report, nil
}

// Watch ingests supported files in dir as they are created or modified,
// until ctx is cancelled. Events for the same file inside the debounce
// window collapse into one ingest.
func (s *Ingester) Watch(ctx context.Context, dir, organization string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("Watching %s for changes", dir)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !s.extractor.Supports(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-ticker.C:
			now := time.Now()
			for path, seen := range pending {
				if now.Sub(seen) < watchDebounce {
					continue
				}
				delete(pending, path)
				if _, err := s.IngestFile(ctx, path, organization); err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					logger.Warn("Failed to ingest %s: %v", filepath.Base(path), err)
				}
			}
		}
	}
}
