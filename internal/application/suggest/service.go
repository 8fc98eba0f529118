// Package suggest implements the suggestion-refinement interaction loop.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// Options carries the per-invocation settings resolved from flags and config.
type Options struct {
	IncludeContext   bool
	Model            string
	MaxSuggestions   int
	SkipConfirmation bool
}

// Service orchestrates the query, present, refine and execute cycle.
type Service struct {
	Registry    ports.ProviderRegistry
	Environment ports.EnvironmentCollector
	Preferences ports.PreferenceSource
	Chooser     ports.Chooser
	Executor    ports.Executor
	Indicator   ports.Indicator
	Notifier    ports.Notifier
	Logger      ports.Logger
}

// Run drives one session for prompt until the user quits, a round returns
// no suggestions, or a command is handed to the executor. Provider and
// configuration errors are returned unchanged; the loop never retries them.
func (s *Service) Run(ctx context.Context, prompt string, opts Options) (domain.LoopResult, error) {
	if s.Registry == nil || s.Chooser == nil || s.Executor == nil || s.Notifier == nil || s.Logger == nil {
		return domain.LoopResult{}, errors.New("suggest.Service dependencies not satisfied")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return domain.LoopResult{}, errors.New("prompt must not be empty")
	}

	provider, err := s.Registry.Resolve(opts.Model)
	if err != nil {
		return domain.LoopResult{}, err
	}

	state := domain.NewInteractionState(prompt)
	result := domain.LoopResult{}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Rounds++
		req := domain.SuggestionRequest{
			Prompt:         state.OriginalPrompt,
			Context:        s.buildContext(ctx, opts, state),
			Model:          opts.Model,
			MaxSuggestions: opts.MaxSuggestions,
		}

		suggestions, err := s.query(ctx, provider, req)
		if err != nil {
			return result, err
		}
		if len(suggestions) == 0 {
			s.Notifier.Notice("No suggestions.")
			result.Outcome = domain.OutcomeNoSuggestions
			return result, nil
		}

		state.Present(suggestions)

		outcome, err := s.Chooser.Choose(ctx, state.PreviousSuggestions)
		if err != nil {
			return result, err
		}

		switch choice := outcome.(type) {
		case domain.Quit:
			s.Notifier.Notice("Aborted.")
			result.Outcome = domain.OutcomeAborted
			return result, nil
		case domain.Regenerate:
			s.Notifier.Notice("Regenerating suggestions...")
		case domain.Comment:
			state.SetComment(choice.Text)
			s.Notifier.Notice("Adding your comment and regenerating...")
		case domain.Execute:
			s.Logger.Info("command selected", map[string]interface{}{
				"round":   result.Rounds,
				"command": choice.Command,
			})
			result.Command = choice.Command
			ran, err := s.Executor.Execute(ctx, choice.Command, opts.SkipConfirmation)
			result.Outcome = domain.OutcomeDeclined
			if ran {
				result.Outcome = domain.OutcomeExecuted
			}
			return result, err
		default:
			return result, fmt.Errorf("unexpected choice outcome %T", outcome)
		}
	}
}

func (s *Service) buildContext(ctx context.Context, opts Options, state *domain.InteractionState) string {
	var preferences string
	if s.Preferences != nil {
		content, err := s.Preferences.Load()
		if err != nil {
			s.Logger.Warn("preference document unreadable", map[string]interface{}{"error": err.Error()})
		}
		preferences = content
	}

	var environment string
	if opts.IncludeContext && s.Environment != nil {
		collected, err := s.Environment.Collect(ctx)
		if err != nil {
			s.Logger.Warn("environment context unavailable", map[string]interface{}{"error": err.Error()})
		}
		environment = collected
	}

	return assembleContext(preferences, environment, state)
}

// query performs one provider round trip with the progress indicator shown
// for exactly its duration.
func (s *Service) query(ctx context.Context, provider ports.SuggestionProvider, req domain.SuggestionRequest) ([]string, error) {
	s.Logger.Debug("requesting suggestions", map[string]interface{}{
		"provider":    provider.Name(),
		"model":       req.Model,
		"max":         req.MaxSuggestions,
		"has_context": req.HasContext(),
	})

	suggestions, err := func() ([]string, error) {
		if s.Indicator != nil {
			stop := s.Indicator.Start("Thinking...")
			defer stop()
		}
		return provider.Suggest(ctx, req)
	}()

	if err != nil {
		s.Logger.Error("suggestion request failed", err, map[string]interface{}{"provider": provider.Name()})
		return nil, err
	}
	if req.MaxSuggestions > 0 && len(suggestions) > req.MaxSuggestions {
		suggestions = suggestions[:req.MaxSuggestions]
	}
	return suggestions, nil
}
