package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

type ollamaProvider struct {
	endpoint   string
	modelID    string
	httpClient *http.Client
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p"`
	Stop        []string `json:"stop"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Error   string        `json:"error,omitempty"`
}

func newOllamaProvider(endpoint, modelID string, client *http.Client) *ollamaProvider {
	return &ollamaProvider{
		endpoint:   valueOrDefault(endpoint, domain.DefaultOllamaAPIURL),
		modelID:    modelID,
		httpClient: client,
	}
}

func (o *ollamaProvider) Name() string {
	return "ollama"
}

// Suggest calls the native /api/chat endpoint. The newline stop sequence keeps
// local models to a single line.
func (o *ollamaProvider) Suggest(ctx context.Context, req domain.SuggestionRequest) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, domain.ProviderTimeout)
	defer cancel()

	payload := ollamaChatRequest{
		Model: o.modelID,
		Messages: []ollamaMessage{
			{Role: "system", Content: systemMessage(req.Context)},
			{Role: "user", Content: req.Prompt},
		},
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.15,
			TopP:        0.9,
			Stop:        []string{"\n"},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.NewProviderError(o.Name(), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewProviderError(o.Name(), err)
	}
	httpReq.Header.Set("content-type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewProviderError(o.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, domain.NewProviderError(o.Name(), err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewProviderError(o.Name(), fmt.Errorf("request failed: %s %s", resp.Status, strings.TrimSpace(string(raw))))
	}

	var decoded ollamaChatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, domain.NewProviderError(o.Name(), fmt.Errorf("decode response: %w", err))
	}
	if decoded.Error != "" {
		return nil, domain.NewProviderError(o.Name(), fmt.Errorf("%s", decoded.Error))
	}
	return splitSuggestions(decoded.Message.Content, req.MaxSuggestions), nil
}

var _ ports.SuggestionProvider = (*ollamaProvider)(nil)
