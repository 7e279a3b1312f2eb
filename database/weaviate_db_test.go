package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRetrievedChunk(t *testing.T) {
	chunk, err := parseRetrievedChunk(map[string]interface{}{
		"content":          "Scope is clear. Budget is undefined.",
		"page":             float64(3),
		"paragraphPreview": "Scope is clear...",
		"tokenCount":       float64(12),
		"_additional": map[string]interface{}{
			"distance": 0.42,
			"id":       "abc",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Scope is clear. Budget is undefined.", chunk.Text)
	assert.Equal(t, 3, chunk.Page)
	assert.Equal(t, "Scope is clear...", chunk.ParagraphPreview)
	assert.Equal(t, 12, chunk.TokenCount)
	assert.InDelta(t, 0.42, float64(chunk.Distance), 1e-6)
}

func TestParseRetrievedChunkMissingProvenance(t *testing.T) {
	// Objects stored before metadata tagging only carry content.
	chunk, err := parseRetrievedChunk(map[string]interface{}{
		"content": "legacy chunk",
	})

	require.NoError(t, err)
	assert.Equal(t, "legacy chunk", chunk.Text)
	assert.Zero(t, chunk.Page)
	assert.Empty(t, chunk.ParagraphPreview)
}

func TestParseRetrievedChunkRejectsMissingContent(t *testing.T) {
	_, err := parseRetrievedChunk(map[string]interface{}{"page": float64(1)})
	assert.Error(t, err)

	_, err = parseRetrievedChunk(map[string]interface{}{"content": ""})
	assert.Error(t, err)
}
