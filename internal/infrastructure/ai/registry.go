package ai

import (
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// Registry resolves a model identifier ("openai/gpt-4o-mini",
// "ollama/llama3", "gemini/gemini-2.0-flash") to its backend.
type Registry struct {
	credentials domain.Credentials
	httpClient  *http.Client
	logger      ports.Logger

	// Base URLs for the hosted APIs; empty means the public endpoint.
	OpenAIBaseURL string
	GeminiBaseURL string
}

// NewRegistry builds a registry over the configured credentials.
func NewRegistry(credentials domain.Credentials, logger ports.Logger) *Registry {
	return &Registry{
		credentials: credentials,
		httpClient:  &http.Client{Timeout: domain.ProviderTimeout + 5*time.Second},
		logger:      logger,
	}
}

// Resolve implements ports.ProviderRegistry. A missing API key for the
// selected hosted backend is a *domain.ConfigError.
func (r *Registry) Resolve(model string) (ports.SuggestionProvider, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		model = domain.DefaultModel
	}
	prefix := domain.ModelPrefix(model)

	var provider ports.SuggestionProvider
	switch prefix {
	case "openai":
		if r.credentials.OpenAIAPIKey == "" {
			return nil, &domain.ConfigError{Key: "OPENAI_API_KEY", Reason: "not set; required for " + model}
		}
		provider = newOpenAIProvider(r.credentials.OpenAIAPIKey, r.OpenAIBaseURL, idAfterPrefix(model), r.httpClient)
	case "gemini":
		if r.credentials.GoogleAPIKey == "" {
			return nil, &domain.ConfigError{Key: "GOOGLE_API_KEY", Reason: "not set; required for " + model}
		}
		provider = newGeminiProvider(r.credentials.GoogleAPIKey, r.GeminiBaseURL, idAfterPrefix(model), r.httpClient)
	case "ollama":
		provider = newOllamaProvider(r.credentials.OllamaAPIURL, domain.ModelName(model), r.httpClient)
	default:
		provider = echoProvider{}
	}

	if r.logger != nil {
		r.logger.Debug("provider resolved", map[string]interface{}{
			"model":    model,
			"provider": provider.Name(),
		})
	}
	return provider, nil
}

// idAfterPrefix returns the id after "<prefix>/"; a bare prefix yields "" so
// the backend's default model applies.
func idAfterPrefix(model string) string {
	if _, id, found := strings.Cut(model, "/"); found {
		return id
	}
	return ""
}

var _ ports.ProviderRegistry = (*Registry)(nil)
