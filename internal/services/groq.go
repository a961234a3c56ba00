package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// GroqService talks to Groq through its OpenAI-compatible API.
type GroqService struct {
	client *openai.Client
	model  string
}

func NewGroqService(apiKey, baseURL, model string, httpClient *http.Client) *GroqService {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	if httpClient != nil {
		config.HTTPClient = httpClient
	}
	return &GroqService{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (s *GroqService) Name() string  { return "Groq AI" }
func (s *GroqService) Model() string { return s.model }

func (s *GroqService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        1,
	})
	if err != nil {
		return "", fmt.Errorf("groq chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
