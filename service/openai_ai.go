package service

import (
	"context"
	"errors"
	"io"

	"github.com/nekesuresh/RFP/types"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

var systemMessageRFPAssistant = openai.ChatCompletionMessage{
	Role:    openai.ChatMessageRoleSystem,
	Content: "You are an assistant that helps write and improve RFP (Request for Proposal) sections. Ground every suggestion in the provided document context and follow RFP best practices.",
}

// OpenAIService talks to any OpenAI-compatible chat completion server.
// Pointing baseURL at an Ollama instance serves local models through the
// same client.
type OpenAIService struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAIService(baseURL, apiKey, model string, temperature float32) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client:      client,
		model:       model,
		temperature: temperature,
	}
}

func (s *OpenAIService) Chat(ctx context.Context, messages []types.Message) (*types.Message, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Messages:    s.buildMessages(messages),
			Model:       s.model,
			Temperature: s.temperature,
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no response generated")
	}

	return &types.Message{
		Role:    "assistant",
		Content: resp.Choices[0].Message.Content,
	}, nil
}

func (s *OpenAIService) ChatStream(ctx context.Context, messages []types.Message, handler types.StreamHandler) error {
	stream, err := s.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{
			Messages:    s.buildMessages(messages),
			Model:       s.model,
			Temperature: s.temperature,
		},
	)
	if err != nil {
		return err
	}
	defer stream.Close()
	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorln("error receiving response from stream:", err)
			return err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		handler(resp.Choices[0].Delta.Content)
	}
}

func (s *OpenAIService) buildMessages(messages []types.Message) []openai.ChatCompletionMessage {
	openaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	openaiMessages = append(openaiMessages, systemMessageRFPAssistant)
	for _, msg := range messages {
		role := msg.Role
		if role == "" {
			role = openai.ChatMessageRoleUser
		}
		openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	return openaiMessages
}
