package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/pkg/logger"
	"github.com/doeshing/aih-go/internal/ports"
)

func TestRunExecutesSelectedCommand(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"du -ah . | sort -rh | head -n 10"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Execute{Command: "du -ah . | sort -rh | head -n 10"}}}
	executor := &stubExecutor{}
	svc, notifier := newTestService(provider, chooser, executor)

	result, err := svc.Run(context.Background(), "list files by size", Options{Model: "openai/gpt-4o-mini", MaxSuggestions: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeExecuted, result.Outcome)
	assert.Equal(t, 1, result.Rounds)
	require.Len(t, executor.commands, 1)
	assert.Equal(t, "du -ah . | sort -rh | head -n 10", executor.commands[0])
	assert.False(t, executor.skipConfirmation[0])
	assert.Empty(t, notifier.notices)
	assert.Equal(t, "list files by size", provider.requests[0].Prompt)
	assert.Equal(t, 3, provider.requests[0].MaxSuggestions)
}

func TestRunPassesSkipConfirmation(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"ls"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Execute{Command: "ls"}}}
	executor := &stubExecutor{}
	svc, _ := newTestService(provider, chooser, executor)

	_, err := svc.Run(context.Background(), "list", Options{MaxSuggestions: 3, SkipConfirmation: true})

	require.NoError(t, err)
	require.Len(t, executor.skipConfirmation, 1)
	assert.True(t, executor.skipConfirmation[0])
}

func TestRunDeclinedExecutionIsNotExecuted(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"rm -rf build"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Execute{Command: "rm -rf build"}}}
	executor := &stubExecutor{declined: true}
	svc, _ := newTestService(provider, chooser, executor)

	result, err := svc.Run(context.Background(), "clean up", Options{MaxSuggestions: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDeclined, result.Outcome)
	assert.Equal(t, "rm -rf build", result.Command)
}

func TestRunQuitAborts(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"ls"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Quit{}}}
	executor := &stubExecutor{}
	svc, notifier := newTestService(provider, chooser, executor)

	result, err := svc.Run(context.Background(), "list", Options{MaxSuggestions: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAborted, result.Outcome)
	assert.Empty(t, executor.commands)
	assert.Equal(t, []string{"Aborted."}, notifier.notices)
}

func TestRunEmptySuggestionsEndsCleanly(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{}}}
	chooser := &stubChooser{}
	executor := &stubExecutor{}
	svc, notifier := newTestService(provider, chooser, executor)

	result, err := svc.Run(context.Background(), "do the impossible", Options{MaxSuggestions: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNoSuggestions, result.Outcome)
	assert.Empty(t, executor.commands, "no command may be executed")
	assert.Zero(t, chooser.calls, "nothing to present")
	assert.Equal(t, []string{"No suggestions."}, notifier.notices)
}

func TestRunRegenerateWithEmptyResultsEnds(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"ls"}, {}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Regenerate{}}}
	executor := &stubExecutor{}
	svc, notifier := newTestService(provider, chooser, executor)

	result, err := svc.Run(context.Background(), "list", Options{MaxSuggestions: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNoSuggestions, result.Outcome)
	assert.Equal(t, 2, result.Rounds)
	assert.Equal(t, []string{"Regenerating suggestions...", "No suggestions."}, notifier.notices)
}

func TestRunRegenerateReplacesPreviousSuggestions(t *testing.T) {
	provider := &stubProvider{batches: [][]string{
		{"round0-a", "round0-b"},
		{"round1-a"},
		{"round2-a"},
	}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{
		domain.Comment{Text: "prefer find"},
		domain.Regenerate{},
		domain.Quit{},
	}}
	svc, _ := newTestService(provider, chooser, &stubExecutor{})

	_, err := svc.Run(context.Background(), "list", Options{MaxSuggestions: 3})
	require.NoError(t, err)
	require.Len(t, provider.requests, 3)

	assert.Empty(t, provider.requests[0].Context)

	round1 := provider.requests[1].Context
	assert.Contains(t, round1, "1. round0-a")
	assert.Contains(t, round1, "2. round0-b")

	round2 := provider.requests[2].Context
	assert.Contains(t, round2, "1. round1-a")
	assert.NotContains(t, round2, "round0", "regenerate must replace, never merge")

	assert.Equal(t, [][]string{{"round0-a", "round0-b"}, {"round1-a"}, {"round2-a"}}, chooser.shown)
}

func TestRunCommentSurvivesRegenerate(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"ls"}, {"ls -a"}, {"ls -la"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{
		domain.Comment{Text: "include hidden files"},
		domain.Regenerate{},
		domain.Quit{},
	}}
	svc, notifier := newTestService(provider, chooser, &stubExecutor{})

	_, err := svc.Run(context.Background(), "list", Options{MaxSuggestions: 3})
	require.NoError(t, err)

	assert.Contains(t, provider.requests[1].Context, "User comment: include hidden files")
	assert.Contains(t, provider.requests[2].Context, "User comment: include hidden files")
	assert.Equal(t, []string{
		"Adding your comment and regenerating...",
		"Regenerating suggestions...",
		"Aborted.",
	}, notifier.notices)
}

func TestRunCommentIsOverwritten(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"a"}, {"b"}, {"c"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{
		domain.Comment{Text: "first"},
		domain.Comment{Text: "second"},
		domain.Quit{},
	}}
	svc, _ := newTestService(provider, chooser, &stubExecutor{})

	_, err := svc.Run(context.Background(), "p", Options{MaxSuggestions: 3})
	require.NoError(t, err)

	assert.Contains(t, provider.requests[2].Context, "User comment: second")
	assert.NotContains(t, provider.requests[2].Context, "first")
}

func TestRunFeedbackBlockFormat(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"ls", "ls -l"}, {"ls -a"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Comment{Text: "hidden too"}, domain.Quit{}}}
	svc, _ := newTestService(provider, chooser, &stubExecutor{})

	_, err := svc.Run(context.Background(), "p", Options{MaxSuggestions: 3})
	require.NoError(t, err)

	assert.Equal(t, "Previous suggestions:\n1. ls\n2. ls -l\n\nUser comment: hidden too", provider.requests[1].Context)
}

func TestRunContextIncludesPreferencesRegardlessOfFlag(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"ls"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Quit{}}}
	svc, _ := newTestService(provider, chooser, &stubExecutor{})
	env := &stubEnvironment{content: "Current directory: /tmp"}
	svc.Environment = env
	svc.Preferences = stubPreferences{content: "Use eza instead of ls.\n"}

	_, err := svc.Run(context.Background(), "list", Options{MaxSuggestions: 3, IncludeContext: false})
	require.NoError(t, err)

	got := provider.requests[0].Context
	assert.True(t, strings.HasPrefix(got, preferencesHeader+"\n\nUse eza instead of ls."), got)
	assert.NotContains(t, got, "Current directory")
	assert.Zero(t, env.calls, "environment is only collected with the context flag")
}

func TestRunContextOrderWithAllParts(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"ls"}, {"ls -a"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Comment{Text: "hidden"}, domain.Quit{}}}
	svc, _ := newTestService(provider, chooser, &stubExecutor{})
	svc.Environment = &stubEnvironment{content: "Current directory: /tmp"}
	svc.Preferences = stubPreferences{content: "prefs"}

	_, err := svc.Run(context.Background(), "list", Options{MaxSuggestions: 3, IncludeContext: true})
	require.NoError(t, err)

	assert.Equal(t, preferencesHeader+"\n\nprefs\n\nCurrent directory: /tmp", provider.requests[0].Context)
	assert.Equal(t,
		preferencesHeader+"\n\nprefs\n\nCurrent directory: /tmp\n\nPrevious suggestions:\n1. ls\n\nUser comment: hidden",
		provider.requests[1].Context)
}

func TestRunEnvironmentFailureIsNotFatal(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"ls"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Quit{}}}
	svc, _ := newTestService(provider, chooser, &stubExecutor{})
	svc.Environment = &stubEnvironment{err: errors.New("git exploded")}

	_, err := svc.Run(context.Background(), "list", Options{MaxSuggestions: 3, IncludeContext: true})

	require.NoError(t, err)
	assert.False(t, provider.requests[0].HasContext())
}

func TestRunProviderErrorPropagates(t *testing.T) {
	providerErr := domain.NewProviderError("openai", errors.New("HTTP 500"))
	provider := &stubProvider{err: providerErr}
	chooser := &stubChooser{}
	executor := &stubExecutor{}
	indicator := &stubIndicator{}
	svc, _ := newTestService(provider, chooser, executor)
	svc.Indicator = indicator

	_, err := svc.Run(context.Background(), "list", Options{MaxSuggestions: 3})

	var target *domain.ProviderError
	require.ErrorAs(t, err, &target)
	assert.Zero(t, chooser.calls)
	assert.Empty(t, executor.commands)
	assert.Equal(t, 1, indicator.started)
	assert.Equal(t, 1, indicator.stopped, "indicator must be stopped even when the call fails")
}

func TestRunConfigErrorBeforeAnyRound(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"ls"}}}
	chooser := &stubChooser{}
	svc, _ := newTestService(provider, chooser, &stubExecutor{})
	svc.Registry = stubRegistry{err: &domain.ConfigError{Key: "OPENAI_API_KEY", Reason: "not set"}}

	_, err := svc.Run(context.Background(), "list", Options{Model: "openai/gpt-4o-mini", MaxSuggestions: 3})

	var target *domain.ConfigError
	require.ErrorAs(t, err, &target)
	assert.Empty(t, provider.requests)
	assert.Zero(t, chooser.calls)
}

func TestRunTruncatesToMaxSuggestions(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"a", "b", "c", "d"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Quit{}}}
	svc, _ := newTestService(provider, chooser, &stubExecutor{})

	_, err := svc.Run(context.Background(), "p", Options{MaxSuggestions: 2})

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, chooser.shown)
}

func TestRunIndicatorWrapsEveryRound(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"a"}, {"b"}}}
	chooser := &stubChooser{outcomes: []domain.ChoiceOutcome{domain.Regenerate{}, domain.Quit{}}}
	indicator := &stubIndicator{}
	svc, _ := newTestService(provider, chooser, &stubExecutor{})
	svc.Indicator = indicator

	_, err := svc.Run(context.Background(), "p", Options{MaxSuggestions: 3})

	require.NoError(t, err)
	assert.Equal(t, 2, indicator.started)
	assert.Equal(t, 2, indicator.stopped)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"a"}}}
	chooser := &stubChooser{}
	svc, _ := newTestService(provider, chooser, &stubExecutor{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx, "p", Options{MaxSuggestions: 3})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, provider.requests)
}

func TestRunChooserInterruptPropagates(t *testing.T) {
	provider := &stubProvider{batches: [][]string{{"a"}}}
	chooser := &stubChooser{err: context.Canceled}
	executor := &stubExecutor{}
	svc, _ := newTestService(provider, chooser, executor)

	_, err := svc.Run(context.Background(), "p", Options{MaxSuggestions: 3})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, executor.commands)
}

func TestRunRejectsEmptyPrompt(t *testing.T) {
	svc, _ := newTestService(&stubProvider{}, &stubChooser{}, &stubExecutor{})
	_, err := svc.Run(context.Background(), "   ", Options{MaxSuggestions: 3})
	assert.Error(t, err)
}

func newTestService(provider *stubProvider, chooser *stubChooser, executor *stubExecutor) (*Service, *stubNotifier) {
	notifier := &stubNotifier{}
	return &Service{
		Registry: stubRegistry{provider: provider},
		Chooser:  chooser,
		Executor: executor,
		Notifier: notifier,
		Logger:   logger.NewNop(),
	}, notifier
}

type stubRegistry struct {
	provider ports.SuggestionProvider
	err      error
}

func (s stubRegistry) Resolve(string) (ports.SuggestionProvider, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.provider, nil
}

type stubProvider struct {
	batches  [][]string
	err      error
	requests []domain.SuggestionRequest
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Suggest(_ context.Context, req domain.SuggestionRequest) ([]string, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	idx := len(p.requests) - 1
	if idx >= len(p.batches) {
		return nil, nil
	}
	return p.batches[idx], nil
}

type stubChooser struct {
	outcomes []domain.ChoiceOutcome
	err      error
	calls    int
	shown    [][]string
}

func (c *stubChooser) Choose(_ context.Context, suggestions []string) (domain.ChoiceOutcome, error) {
	c.calls++
	c.shown = append(c.shown, append([]string(nil), suggestions...))
	if c.err != nil {
		return nil, c.err
	}
	if len(c.outcomes) == 0 {
		return domain.Quit{}, nil
	}
	next := c.outcomes[0]
	c.outcomes = c.outcomes[1:]
	return next, nil
}

type stubExecutor struct {
	commands         []string
	skipConfirmation []bool
	declined         bool
}

func (e *stubExecutor) Execute(_ context.Context, command string, skip bool) (bool, error) {
	e.commands = append(e.commands, command)
	e.skipConfirmation = append(e.skipConfirmation, skip)
	return !e.declined, nil
}

type stubEnvironment struct {
	content string
	err     error
	calls   int
}

func (e *stubEnvironment) Collect(context.Context) (string, error) {
	e.calls++
	return e.content, e.err
}

type stubPreferences struct {
	content string
}

func (p stubPreferences) Load() (string, error) { return p.content, nil }

type stubIndicator struct {
	started int
	stopped int
}

func (i *stubIndicator) Start(string) func() {
	i.started++
	return func() { i.stopped++ }
}

type stubNotifier struct {
	notices  []string
	warnings []string
}

func (n *stubNotifier) Notice(message string) { n.notices = append(n.notices, message) }
func (n *stubNotifier) Warn(message string)   { n.warnings = append(n.warnings, message) }
