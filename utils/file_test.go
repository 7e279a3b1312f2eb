package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFileWithTimestamp(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "uploads")

	src := filepath.Join(srcDir, "proposal.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4 test"), 0644))

	destPath, err := CopyFileWithTimestamp(src, destDir)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`proposal_\d+\.pdf$`), destPath)
	content, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(content))
}

func TestCopyFileWithTimestampMissingSource(t *testing.T) {
	_, err := CopyFileWithTimestamp(filepath.Join(t.TempDir(), "missing.pdf"), t.TempDir())

	assert.ErrorContains(t, err, "failed to open source file")
}
