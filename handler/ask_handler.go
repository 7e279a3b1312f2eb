package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nekesuresh/RFP/service"
	"github.com/nekesuresh/RFP/types"
	log "github.com/sirupsen/logrus"
)

type AskHandler struct {
	assistant *service.Assistant
	retriever *service.RetrieverAgent
	ai        service.AIService
}

func NewAskHandler(assistant *service.Assistant, retriever *service.RetrieverAgent, ai service.AIService) *AskHandler {
	return &AskHandler{
		assistant: assistant,
		retriever: retriever,
		ai:        ai,
	}
}

// HandleAsk runs the full retriever-editor pipeline and returns both agent
// results plus the agent log.
func (h *AskHandler) HandleAsk() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Query == "" {
			writeError(w, "Query is required", http.StatusBadRequest)
			return
		}

		resp, err := h.assistant.ProcessQuery(r.Context(), req.Query)
		if err != nil {
			log.Errorln("query processing failed:", err)
			writeError(w, "Error processing query: "+err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

// HandleFeedback revises a rejected suggestion using the user's feedback.
func (h *AskHandler) HandleFeedback() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.FeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Query == "" || req.Feedback == "" {
			writeError(w, "Query and feedback are required", http.StatusBadRequest)
			return
		}

		resp, err := h.assistant.HandleFeedback(r.Context(), req.Query, req.Feedback, req.OriginalSuggestion)
		if err != nil {
			log.Errorln("feedback handling failed:", err)
			writeError(w, "Error handling feedback: "+err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

// HandleLegacyAsk keeps the original single-model RAG flow for clients
// that predate the agent pipeline. The query comes from the q parameter.
func (h *AskHandler) HandleLegacyAsk() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		query := r.URL.Query().Get("q")
		if query == "" {
			writeError(w, "Query parameter q is required", http.StatusBadRequest)
			return
		}

		retrieval, err := h.retriever.Retrieve(r.Context(), query)
		if err != nil {
			log.Errorln("retrieval failed:", err)
			writeError(w, "Error processing query: "+err.Error(), http.StatusInternalServerError)
			return
		}

		prompt := fmt.Sprintf("Answer the question using the context below.\n\nContext:\n%s\n\nQuestion: %s",
			retrieval.Context, query)
		resp, err := h.ai.Chat(r.Context(), []types.Message{{Role: "user", Content: prompt}})
		if err != nil {
			log.Errorln("chat failed:", err)
			writeError(w, "Error processing query: "+err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, types.AskResponse{Response: resp.Content})
	})
}
