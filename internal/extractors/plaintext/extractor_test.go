package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestExtensions(t *testing.T) {
	extractor := New()
	exts := extractor.Extensions()

	require.NotEmpty(t, exts)
	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".text")
	assert.Contains(t, exts, ".csv")
	assert.Contains(t, exts, ".log")
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two"), 0600))

	extractor := New()
	content, err := extractor.Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", content)
}

func TestExtract_NormalisesLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "windows.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\r\nline two\r\n"), 0600))

	extractor := New()
	content, err := extractor.Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", content)
}

func TestExtract_MissingFile(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract(context.Background(), "/does/not/exist.txt")

	assert.Error(t, err)
}
