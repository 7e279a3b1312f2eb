package service

import (
	"context"

	"github.com/nekesuresh/RFP/types"
)

// AIService is the language-model backend used by the agent pipeline.
// Implementations target OpenAI-compatible servers (including a local
// Ollama endpoint) or Gemini.
type AIService interface {
	Chat(ctx context.Context, messages []types.Message) (*types.Message, error)
	ChatStream(ctx context.Context, messages []types.Message, handler types.StreamHandler) error
}
