package ai

import (
	"context"
	"net/http"

	"google.golang.org/genai"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

const defaultGeminiModelID = "gemini-2.0-flash"

type geminiProvider struct {
	config  genai.ClientConfig
	modelID string
}

func newGeminiProvider(apiKey, baseURL, modelID string, httpClient *http.Client) *geminiProvider {
	return &geminiProvider{
		config: genai.ClientConfig{
			APIKey:      apiKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPClient:  httpClient,
			HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
		},
		modelID: valueOrDefault(modelID, defaultGeminiModelID),
	}
}

func (g *geminiProvider) Name() string {
	return "gemini"
}

func (g *geminiProvider) Suggest(ctx context.Context, req domain.SuggestionRequest) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, domain.ProviderTimeout)
	defer cancel()

	cfg := g.config
	client, err := genai.NewClient(ctx, &cfg)
	if err != nil {
		return nil, domain.NewProviderError(g.Name(), err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.modelID, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemMessage(req.Context)}}},
		Temperature:       genai.Ptr[float32](0.2),
		TopP:              genai.Ptr[float32](0.95),
		TopK:              genai.Ptr[float32](40),
		MaxOutputTokens:   300,
	})
	if err != nil {
		return nil, domain.NewProviderError(g.Name(), err)
	}
	return splitSuggestions(resp.Text(), req.MaxSuggestions), nil
}

var _ ports.SuggestionProvider = (*geminiProvider)(nil)
