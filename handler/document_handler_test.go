package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFileWithTimestamp(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"proposal_1724600000.pdf",
		"notes.txt",
		"other_doc.pdf",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	h := NewDocumentHandler(dir)

	name, err := h.findFileWithTimestamp("proposal.pdf")
	require.NoError(t, err)
	assert.Equal(t, "proposal_1724600000.pdf", name)

	_, err = h.findFileWithTimestamp("missing.pdf")
	assert.Error(t, err)

	// A non-timestamp suffix must not match.
	_, err = h.findFileWithTimestamp("other.pdf")
	assert.Error(t, err)
}

func TestServeDocumentValidation(t *testing.T) {
	h := NewDocumentHandler(t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pdf", nil)
	rec := httptest.NewRecorder()
	h.ServeDocument().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/pdf?file=notes.txt", nil)
	rec = httptest.NewRecorder()
	h.ServeDocument().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/pdf?file=missing.pdf", nil)
	rec = httptest.NewRecorder()
	h.ServeDocument().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
