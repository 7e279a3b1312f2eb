package handler

import (
	"net/http"

	"github.com/nekesuresh/RFP/config"
	"github.com/nekesuresh/RFP/types"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		cfg: cfg,
	}
}

func (h *HealthHandler) HandlePing() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "pong",
			"service": "Multi-Agent RFP Assistant",
		})
	})
}

// HandleConfig exposes the non-secret runtime settings.
func (h *HealthHandler) HandleConfig() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ConfigResponse{
			Model:         h.cfg.Model,
			AIBackend:     h.cfg.AIBackend,
			MaxTokens:     h.cfg.Chunking.MaxTokens,
			OverlapTokens: h.cfg.Chunking.OverlapTokens,
			TopKResults:   h.cfg.TopKResults,
			Temperature:   h.cfg.Temperature,
		})
	})
}
