package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/oceanus-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
	"github.com/custodia-labs/oceanus-cli/internal/core/ports/driven"
)

var _ driven.VectorStore = (*Store)(nil)

// Store is a SQLite-backed vector store for documents and embedded chunks.
type Store struct {
	db         *sql.DB
	path       string
	dimensions int
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.oceanus/data/oceanus.db.
// dimensions is the embedding size every written vector must match.
func NewStore(dataDir string, dimensions int) (*Store, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: embedding dimensions must be positive, got %d", domain.ErrInvalidInput, dimensions)
	}

	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".oceanus", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "oceanus.db")

	// Open database with WAL mode for better concurrency. The pragmas go
	// in the DSN so every pooled connection applies them; foreign keys in
	// particular must hold on whichever connection runs a delete.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", domain.ErrStoreUnavailable, err)
	}

	s := &Store{
		db:         db,
		path:       dbPath,
		dimensions: dimensions,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Dimensions returns the embedding size the store validates against.
func (s *Store) Dimensions() int {
	return s.dimensions
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// UpsertDocument stores a document, replacing by filename. If a document
// with the same filename exists its ID is kept, so the caller's chunk
// replacement targets the same document identity.
func (s *Store) UpsertDocument(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil || doc.Filename == "" {
		return "", fmt.Errorf("%w: document filename is required", domain.ErrInvalidInput)
	}

	var existingID string
	row := s.db.QueryRowContext(ctx, "SELECT id FROM documents WHERE filename = ?", doc.Filename)
	switch err := row.Scan(&existingID); {
	case err == nil:
		// Keep the existing identity
	case errors.Is(err, sql.ErrNoRows):
		existingID = doc.ID
	default:
		return "", fmt.Errorf("%w: looking up document: %v", domain.ErrStoreUnavailable, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, organization, doc_type, geographic_focus, topic, file_size, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			organization = excluded.organization,
			doc_type = excluded.doc_type,
			geographic_focus = excluded.geographic_focus,
			topic = excluded.topic,
			file_size = excluded.file_size,
			ingested_at = excluded.ingested_at
	`, existingID, doc.Filename, doc.Organization, doc.DocType,
		doc.GeographicFocus, doc.Topic, doc.FileSize, doc.IngestedAt)
	if err != nil {
		return "", fmt.Errorf("%w: saving document: %v", domain.ErrStoreUnavailable, err)
	}

	return existingID, nil
}

// ReplaceChunks atomically swaps the document's chunk set. Readers never
// observe a mix of old and new chunks; the delete and inserts commit as one
// transaction.
func (s *Store) ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error {
	for _, chunk := range chunks {
		if len(chunk.Embedding) != s.dimensions {
			return fmt.Errorf("%w: chunk %d has %d-dimensional embedding, store expects %d",
				domain.ErrDataIntegrity, chunk.Position, len(chunk.Embedding), s.dimensions)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM documents WHERE id = ?", documentID)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("%w: checking document: %v", domain.ErrStoreUnavailable, err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: document %s has no stored record", domain.ErrDataIntegrity, documentID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("%w: clearing chunks: %v", domain.ErrStoreUnavailable, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, position, content, token_count, start_token, end_token, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %v", domain.ErrStoreUnavailable, err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)
		if _, err := stmt.ExecContext(ctx, chunk.ID, documentID, chunk.Position,
			chunk.Content, chunk.TokenCount, chunk.StartToken, chunk.EndToken, embeddingBlob); err != nil {
			return fmt.Errorf("%w: saving chunk %d: %v", domain.ErrStoreUnavailable, chunk.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Search finds the topK chunks nearest to the query vector by cosine
// similarity, restricted to documents matching the filters. The filters
// narrow the candidate set in SQL before any similarity is computed.
func (s *Store) Search(ctx context.Context, query []float32, filters domain.Filters, topK int) ([]driven.VectorHit, error) {
	if len(query) != s.dimensions {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, store expects %d",
			domain.ErrDataIntegrity, len(query), s.dimensions)
	}
	if topK <= 0 {
		return nil, nil
	}

	sqlQuery := `
		SELECT c.id, c.document_id, c.position, c.content, c.token_count, c.start_token, c.end_token, c.embedding,
		       d.id, d.filename, d.organization, d.doc_type, d.geographic_focus, d.topic, d.file_size, d.ingested_at
		FROM chunks c
		JOIN documents d ON d.id = c.document_id
	`
	where, args := filterClause(filters)
	sqlQuery += where

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	queryNorm := vectorNorm(query)

	var hits []driven.VectorHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var doc domain.Document
		var blob []byte
		if err := rows.Scan(
			&chunk.ID, &chunk.DocumentID, &chunk.Position, &chunk.Content,
			&chunk.TokenCount, &chunk.StartToken, &chunk.EndToken, &blob,
			&doc.ID, &doc.Filename, &doc.Organization, &doc.DocType,
			&doc.GeographicFocus, &doc.Topic, &doc.FileSize, &doc.IngestedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %v", domain.ErrStoreUnavailable, err)
		}

		chunk.Embedding = bytesToFloat32Slice(blob)
		if len(chunk.Embedding) != s.dimensions {
			return nil, fmt.Errorf("%w: stored chunk %s has %d-dimensional embedding, store expects %d",
				domain.ErrDataIntegrity, chunk.ID, len(chunk.Embedding), s.dimensions)
		}

		hits = append(hits, driven.VectorHit{
			Chunk:    chunk,
			Document: doc,
			Score:    cosineSimilarity(query, queryNorm, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %v", domain.ErrStoreUnavailable, err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Chunk.Position < hits[j].Chunk.Position
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, organization, doc_type, geographic_focus, topic, file_size, ingested_at
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	if err := row.Scan(&doc.ID, &doc.Filename, &doc.Organization, &doc.DocType,
		&doc.GeographicFocus, &doc.Topic, &doc.FileSize, &doc.IngestedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning document: %v", domain.ErrStoreUnavailable, err)
	}
	return &doc, nil
}

// GetChunks retrieves all chunks for a document, ordered by position.
func (s *Store) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, position, content, token_count, start_token, end_token, embedding
		FROM chunks WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Position, &chunk.Content,
			&chunk.TokenCount, &chunk.StartToken, &chunk.EndToken, &blob); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %v", domain.ErrStoreUnavailable, err)
		}
		chunk.Embedding = bytesToFloat32Slice(blob)
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %v", domain.ErrStoreUnavailable, err)
	}
	return chunks, nil
}

// ListDocuments returns all stored documents, ordered by filename.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, organization, doc_type, geographic_focus, topic, file_size, ingested_at
		FROM documents ORDER BY filename
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying documents: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Organization, &doc.DocType,
			&doc.GeographicFocus, &doc.Topic, &doc.FileSize, &doc.IngestedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning document: %v", domain.ErrStoreUnavailable, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating documents: %v", domain.ErrStoreUnavailable, err)
	}
	return docs, nil
}

// DeleteDocument removes a document; its chunks go with it by cascade.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting document: %v", domain.ErrStoreUnavailable, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking delete result: %v", domain.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// filterClause builds the WHERE clause for metadata filters. Filters with
// empty values are omitted.
func filterClause(filters domain.Filters) (string, []any) {
	var conds []string
	var args []any
	if filters.DocType != "" {
		conds = append(conds, "d.doc_type = ?")
		args = append(args, filters.DocType)
	}
	if filters.GeographicFocus != "" {
		conds = append(conds, "d.geographic_focus = ?")
		args = append(args, filters.GeographicFocus)
	}
	if filters.Topic != "" {
		conds = append(conds, "d.topic = ?")
		args = append(args, filters.Topic)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// cosineSimilarity computes the cosine similarity between the query and a
// candidate vector, mapped to [0, 1]. queryNorm is precomputed once per
// search.
func cosineSimilarity(query []float32, queryNorm float64, candidate []float32) float64 {
	var dot, candNorm float64
	for i, q := range query {
		c := float64(candidate[i])
		dot += float64(q) * c
		candNorm += c * c
	}
	denom := queryNorm * math.Sqrt(candNorm)
	if denom == 0 {
		return 0
	}
	// Cosine is in [-1, 1]; shift to [0, 1] so thresholds compose with
	// scores the same way regardless of sign.
	return (dot/denom + 1) / 2
}

// vectorNorm computes the Euclidean norm of a vector.
func vectorNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
