package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nekesuresh/RFP/config"
	"github.com/nekesuresh/RFP/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlePing(t *testing.T) {
	h := NewHealthHandler(&config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	h.HandlePing().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pong"`)
}

func TestHandleConfigHidesSecrets(t *testing.T) {
	h := NewHealthHandler(&config.Config{
		Model:        "mistral",
		AIBackend:    "ollama",
		OpenAIAPIKey: "very-secret",
		TopKResults:  3,
		Chunking: config.ChunkingConfig{
			MaxTokens:     500,
			OverlapTokens: 50,
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	rec := httptest.NewRecorder()
	h.HandleConfig().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.ConfigResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "mistral", resp.Model)
	assert.Equal(t, 500, resp.MaxTokens)
	assert.Equal(t, 50, resp.OverlapTokens)
	assert.NotContains(t, rec.Body.String(), "very-secret")
}
