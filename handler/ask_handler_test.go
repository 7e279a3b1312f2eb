package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nekesuresh/RFP/database"
	"github.com/nekesuresh/RFP/service"
	"github.com/nekesuresh/RFP/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVectorStore struct {
	results []types.RetrievedChunk
}

var _ database.VectorStore = (*stubVectorStore)(nil)

func (s *stubVectorStore) Store(ctx context.Context, texts []string, ids []string, metadatas []types.ChunkMetadata) error {
	return nil
}

func (s *stubVectorStore) Query(ctx context.Context, text string, k int) ([]types.RetrievedChunk, error) {
	return s.results, nil
}

func (s *stubVectorStore) ReInit() error                                        { return nil }
func (s *stubVectorStore) CreateCollection(ctx context.Context, n string) error { return nil }
func (s *stubVectorStore) DeleteCollection(ctx context.Context, n string) error { return nil }

type stubAI struct {
	reply string
}

var _ service.AIService = (*stubAI)(nil)

func (s *stubAI) Chat(ctx context.Context, messages []types.Message) (*types.Message, error) {
	return &types.Message{Role: "assistant", Content: s.reply}, nil
}

func (s *stubAI) ChatStream(ctx context.Context, messages []types.Message, handler types.StreamHandler) error {
	handler(s.reply)
	return nil
}

func newTestAskHandler(reply string, results []types.RetrievedChunk) *AskHandler {
	ai := &stubAI{reply: reply}
	retriever := service.NewRetrieverAgent(&stubVectorStore{results: results}, 3)
	assistant := service.NewAssistant(retriever, service.NewEditorAgent(ai))
	return NewAskHandler(assistant, retriever, ai)
}

func TestHandleAsk(t *testing.T) {
	h := newTestAskHandler("Improved scope section.", []types.RetrievedChunk{
		{Text: "Scope is clear.", Page: 1},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"query":"improve the scope"}`))
	rec := httptest.NewRecorder()
	h.HandleAsk().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"status":"success"`)
	assert.Contains(t, body, "Improved scope section.")
	assert.Contains(t, body, `"agent_log"`)
}

func TestHandleAskRejectsEmptyQuery(t *testing.T) {
	h := newTestAskHandler("unused", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"query":""}`))
	rec := httptest.NewRecorder()
	h.HandleAsk().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAskRejectsWrongMethod(t *testing.T) {
	h := newTestAskHandler("unused", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ask", nil)
	rec := httptest.NewRecorder()
	h.HandleAsk().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleFeedback(t *testing.T) {
	h := newTestAskHandler("Revised suggestion.", []types.RetrievedChunk{
		{Text: "Scope is clear.", Page: 1},
	})

	body := `{"query":"improve the scope","feedback":"too vague","original_suggestion":"Old one."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleFeedback().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Revised suggestion.")
	assert.Contains(t, rec.Body.String(), `"feedback_addressed":"too vague"`)
}

func TestHandleFeedbackRequiresFields(t *testing.T) {
	h := newTestAskHandler("unused", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(`{"query":"q"}`))
	rec := httptest.NewRecorder()
	h.HandleFeedback().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLegacyAsk(t *testing.T) {
	h := newTestAskHandler("The scope is defined on page one.", []types.RetrievedChunk{
		{Text: "Scope is clear.", Page: 1},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ask?q=what+is+the+scope", nil)
	rec := httptest.NewRecorder()
	h.HandleLegacyAsk().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"response":"The scope is defined on page one."`)
}

func TestHandleLegacyAskRequiresQuery(t *testing.T) {
	h := newTestAskHandler("unused", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ask", nil)
	rec := httptest.NewRecorder()
	h.HandleLegacyAsk().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
