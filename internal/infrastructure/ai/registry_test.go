package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aih-go/internal/domain"
)

func TestRegistryResolve(t *testing.T) {
	creds := domain.Credentials{OpenAIAPIKey: "sk-test", GoogleAPIKey: "g-test"}
	registry := NewRegistry(creds, nil)

	tests := []struct {
		model    string
		provider string
	}{
		{"openai/gpt-4o-mini", "openai"},
		{"OpenAI/gpt-4o", "openai"},
		{"", "openai"},
		{"gemini/gemini-2.0-flash", "gemini"},
		{"ollama/llama3", "ollama"},
		{"local/anything", "echo"},
		{"mystery", "echo"},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			provider, err := registry.Resolve(tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.provider, provider.Name())
		})
	}
}

func TestRegistryMissingCredentialIsConfigError(t *testing.T) {
	registry := NewRegistry(domain.Credentials{}, nil)

	tests := []struct {
		model string
		key   string
	}{
		{"openai/gpt-4o-mini", "OPENAI_API_KEY"},
		{"gemini/gemini-2.0-flash", "GOOGLE_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			_, err := registry.Resolve(tt.model)
			var cfgErr *domain.ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}

	provider, err := registry.Resolve("ollama/llama3")
	require.NoError(t, err, "ollama needs no key")
	assert.Equal(t, "ollama", provider.Name())
}

func TestRegistryModelIDs(t *testing.T) {
	registry := NewRegistry(domain.Credentials{OpenAIAPIKey: "k", GoogleAPIKey: "k"}, nil)

	p, _ := registry.Resolve("openai/")
	assert.Equal(t, domain.DefaultOpenAIModelID, p.(*openAIProvider).modelID)

	p, _ = registry.Resolve("openai/gpt-4o")
	assert.Equal(t, "gpt-4o", p.(*openAIProvider).modelID)

	p, _ = registry.Resolve("gemini")
	assert.Equal(t, defaultGeminiModelID, p.(*geminiProvider).modelID)

	p, _ = registry.Resolve("ollama/codellama:7b")
	assert.Equal(t, "codellama:7b", p.(*ollamaProvider).modelID)
	assert.Equal(t, domain.DefaultOllamaAPIURL, p.(*ollamaProvider).endpoint)
}

func TestEchoProvider(t *testing.T) {
	got, err := echoProvider{}.Suggest(context.Background(), domain.SuggestionRequest{Prompt: "list files", MaxSuggestions: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"echo 'list files'"}, got)

	got, err = echoProvider{}.Suggest(context.Background(), domain.SuggestionRequest{Prompt: "it's fine", MaxSuggestions: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEqual(t, "echo 'it's fine'", got[0], "quotes in the prompt must be escaped")
}
