package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/nekesuresh/RFP/types"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiService serves chat through the Gemini API. Multiple API keys can
// be supplied; on a request failure the service rotates to the next key and
// retries once.
type GeminiService struct {
	apiKeys     []string
	currentKey  int
	client      *genai.Client
	model       *genai.GenerativeModel
	modelName   string
	temperature float32
	mu          sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string, temperature float32) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{
		apiKeys:     apiKeys,
		modelName:   modelName,
		temperature: temperature,
	}
	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	s.model.SetTemperature(s.temperature)
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient()
}

func (s *GeminiService) Chat(ctx context.Context, messages []types.Message) (*types.Message, error) {
	history, prompt := s.buildHistory(messages)
	chat := s.model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		if err := s.rotateAPIKey(); err != nil {
			return nil, err
		}
		chat = s.model.StartChat()
		chat.History = history
		resp, err = chat.SendMessage(ctx, genai.Text(prompt))
		if err != nil {
			return nil, err
		}
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("no response generated")
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}

	return &types.Message{
		Role:    "assistant",
		Content: content,
	}, nil
}

func (s *GeminiService) ChatStream(ctx context.Context, messages []types.Message, handler types.StreamHandler) error {
	_, prompt := s.buildHistory(messages)
	iter := s.model.GenerateContentStream(ctx, genai.Text(prompt))

	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			if err := s.rotateAPIKey(); err != nil {
				return err
			}
			iter = s.model.GenerateContentStream(ctx, genai.Text(prompt))
			resp, err = iter.Next()
			if err != nil {
				return err
			}
		}

		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					handler(string(text))
				}
			}
		}
	}
	return nil
}

// buildHistory splits the conversation into prior turns and the final
// user prompt, the shape the genai chat session expects.
func (s *GeminiService) buildHistory(messages []types.Message) ([]*genai.Content, string) {
	if len(messages) == 0 {
		return nil, ""
	}
	prior := messages[:len(messages)-1]
	history := make([]*genai.Content, 0, len(prior))
	for _, msg := range prior {
		role := msg.Role
		if role != "model" {
			role = "user"
		}
		history = append(history, &genai.Content{
			Parts: []genai.Part{genai.Text(msg.Content)},
			Role:  role,
		})
	}
	return history, messages[len(messages)-1].Content
}
