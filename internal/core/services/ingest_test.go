package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/oceanus-cli/internal/core/domain"
)

// fileExtractor reads files verbatim; .txt only.
type fileExtractor struct{}

func (fileExtractor) Supports(path string) bool {
	return filepath.Ext(path) == ".txt"
}

func (fileExtractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newIngesterForTest(store *mockStore) *Ingester {
	chunker := NewChunker(WithMaxTokens(3), WithOverlapTokens(1))
	return NewIngester(fileExtractor{}, chunker, newMockEmbedder(4), store)
}

func TestIngester_IngestFile(t *testing.T) {
	t.Run("stores document with filename tags and chunks", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "baltic_seagrass_sustainability_report.txt", "A B C D E F G H")
		store := newMockStore()
		ingester := newIngesterForTest(store)

		report, err := ingester.IngestFile(context.Background(), path, "Ocean Org")

		require.NoError(t, err)
		assert.True(t, report.Ok())
		assert.Equal(t, "baltic_seagrass_sustainability_report.txt", report.Filename)
		assert.Equal(t, 4, report.ChunkCount)
		assert.False(t, report.Replaced)

		doc, err := store.GetDocument(context.Background(), report.DocumentID)
		require.NoError(t, err)
		assert.Equal(t, domain.DocTypeSustainabilityReport, doc.DocType)
		assert.Equal(t, domain.RegionBalticSea, doc.GeographicFocus)
		assert.Equal(t, domain.TopicSeagrassRestoration, doc.Topic)
		assert.Equal(t, "Ocean Org", doc.Organization)

		chunks := store.chunksFor[report.DocumentID]
		require.Len(t, chunks, 4)
		assert.Equal(t, "A B C", chunks[0].Content)
		assert.Equal(t, report.DocumentID, chunks[0].DocumentID)
		assert.Len(t, chunks[0].Embedding, 4)
	})

	t.Run("re-ingesting the same filename keeps the document identity", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "report.txt", "first version text")
		store := newMockStore()
		ingester := newIngesterForTest(store)

		first, err := ingester.IngestFile(context.Background(), path, "Org")
		require.NoError(t, err)

		writeFile(t, dir, "report.txt", "second version with more words in it")
		second, err := ingester.IngestFile(context.Background(), path, "Org")
		require.NoError(t, err)

		assert.Equal(t, first.DocumentID, second.DocumentID)
		assert.True(t, second.Replaced)
	})

	t.Run("rejects empty files", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "empty.txt", "   \n  ")
		ingester := newIngesterForTest(newMockStore())

		_, err := ingester.IngestFile(context.Background(), path, "Org")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("fails on missing files", func(t *testing.T) {
		ingester := newIngesterForTest(newMockStore())

		_, err := ingester.IngestFile(context.Background(), "/does/not/exist.txt", "Org")

		assert.Error(t, err)
	})
}

func TestIngester_IngestPath(t *testing.T) {
	t.Run("ingests every supported file in a directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "one.txt", "alpha beta gamma")
		writeFile(t, dir, "two.txt", "delta epsilon zeta")
		writeFile(t, dir, "skipped.bin", "not supported")
		store := newMockStore()
		ingester := newIngesterForTest(store)

		report, err := ingester.IngestPath(context.Background(), dir, "Org")

		require.NoError(t, err)
		assert.Equal(t, 2, report.Succeeded)
		assert.Zero(t, report.Failed)
		assert.Len(t, store.docs, 2)
	})

	t.Run("continues after a per-document failure", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "bad.txt", "")
		writeFile(t, dir, "good.txt", "usable content here")
		ingester := newIngesterForTest(newMockStore())

		report, err := ingester.IngestPath(context.Background(), dir, "Org")

		require.NoError(t, err)
		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, 1, report.Failed)

		require.Len(t, report.Documents, 2)
		assert.False(t, report.Documents[0].Ok())
		assert.NotEmpty(t, report.Documents[0].Error)
		assert.True(t, report.Documents[1].Ok())
	})

	t.Run("fails when a directory has no supported files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "image.png", "binary")
		ingester := newIngesterForTest(newMockStore())

		_, err := ingester.IngestPath(context.Background(), dir, "Org")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("ingests a single file path", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "solo.txt", "some text content")
		ingester := newIngesterForTest(newMockStore())

		report, err := ingester.IngestPath(context.Background(), path, "Org")

		require.NoError(t, err)
		assert.Equal(t, 1, report.Succeeded)
	})
}
