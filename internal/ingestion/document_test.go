package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatHTML, DetectFormat("job.HTML"))
	assert.Equal(t, FormatHTML, DetectFormat("/tmp/job.htm"))
	assert.Equal(t, FormatMarkdown, DetectFormat("resume.md"))
	assert.Equal(t, FormatText, DetectFormat("resume.txt"))
	assert.Equal(t, FormatText, DetectFormat("resume"))
	assert.Equal(t, FormatText, DetectFormat("resume.pdf"))
}

func TestLoadDocument_Text(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Python   developer\r\n\r\n\r\n\r\nGo"), 0644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)

	assert.Equal(t, "resume.txt", doc.Name)
	assert.Equal(t, FormatText, doc.Format)
	assert.Equal(t, "Python developer\n\nGo", doc.Text)
	assert.Len(t, doc.Hash, 64)
}

func TestLoadDocument_HTML(t *testing.T) {
	doc, err := LoadDocument(filepath.Join("testdata", "posting.html"))
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, doc.Format)
	assert.Contains(t, doc.Text, "PostgreSQL")
	assert.NotContains(t, doc.Text, "<p>")
}

func TestLoadDocument_FileNotFound(t *testing.T) {
	doc, err := LoadDocument("/nonexistent/file.txt")

	assert.Nil(t, doc)
	var ingErr *Error
	require.ErrorAs(t, err, &ingErr)
	assert.Contains(t, err.Error(), "file not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewDocument_HashStable(t *testing.T) {
	a, err := NewDocument("a", FormatText, "Content 1")
	require.NoError(t, err)
	b, err := NewDocument("b", FormatText, "Content 1")
	require.NoError(t, err)
	c, err := NewDocument("c", FormatText, "Content 2")
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}
