package ai

import (
	"context"

	"mvdan.cc/sh/v3/syntax"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// echoProvider is the offline fallback for unknown model prefixes: it echoes
// the prompt back as a single suggestion.
type echoProvider struct{}

func (echoProvider) Name() string {
	return "echo"
}

func (echoProvider) Suggest(_ context.Context, req domain.SuggestionRequest) ([]string, error) {
	quoted, err := syntax.Quote(req.Prompt, syntax.LangBash)
	if err != nil {
		quoted = "'" + req.Prompt + "'"
	}
	if req.MaxSuggestions == 0 {
		return nil, nil
	}
	return []string{"echo " + quoted}, nil
}

var _ ports.SuggestionProvider = echoProvider{}
