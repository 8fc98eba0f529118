package ai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

const (
	openAIMaxTokens   = 150
	openAITemperature = 0.2
)

type openAIProvider struct {
	client  *openai.Client
	modelID string
}

// newOpenAIProvider builds the chat-completions backend. baseURL is empty for
// the public API.
func newOpenAIProvider(apiKey, baseURL, modelID string, httpClient *http.Client) *openAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &openAIProvider{
		client:  openai.NewClientWithConfig(cfg),
		modelID: valueOrDefault(modelID, domain.DefaultOpenAIModelID),
	}
}

func (p *openAIProvider) Name() string {
	return "openai"
}

func (p *openAIProvider) Suggest(ctx context.Context, req domain.SuggestionRequest) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, domain.ProviderTimeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.modelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage(req.Context)},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   openAIMaxTokens,
		Temperature: openAITemperature,
	})
	if err != nil {
		return nil, domain.NewProviderError(p.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewProviderError(p.Name(), errors.New("response contained no choices"))
	}
	return splitSuggestions(resp.Choices[0].Message.Content, req.MaxSuggestions), nil
}

var _ ports.SuggestionProvider = (*openAIProvider)(nil)
