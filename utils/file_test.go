package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	dir := t.TempDir()

	pdf := filepath.Join(dir, "notes.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0600))
	assert.NoError(t, ValidateUpload(pdf))

	upper := filepath.Join(dir, "NOTES.PDF")
	require.NoError(t, os.WriteFile(upper, []byte("%PDF-1.4"), 0600))
	assert.NoError(t, ValidateUpload(upper))

	assert.Error(t, ValidateUpload(""))
	assert.Error(t, ValidateUpload(filepath.Join(dir, "missing.pdf")))
	assert.Error(t, ValidateUpload(dir))

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0600))
	assert.Error(t, ValidateUpload(txt))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "notes.pdf", SanitizeFilename("notes.pdf"))
	assert.Equal(t, "my_notes_v2.pdf", SanitizeFilename("my notes/v2.pdf"))
	assert.Equal(t, "exam_prep_.pdf", SanitizeFilename("exam prep!.pdf"))
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", HumanSize(512))
	assert.Equal(t, "1.0 KB", HumanSize(1024))
	assert.Equal(t, "1.5 KB", HumanSize(1536))
	assert.Equal(t, "2.0 MB", HumanSize(2*1024*1024))
	assert.Equal(t, "3.0 GB", HumanSize(3*1024*1024*1024))
}
