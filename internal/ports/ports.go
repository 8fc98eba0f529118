// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The interaction loop and the command executor in the application layer only
// see these interfaces. Provider backends, stores, the terminal and the shell
// are adapters in the infrastructure layer.
package ports

import (
	"context"

	"github.com/doeshing/aih-go/internal/domain"
)

// ConfigProvider loads the effective configuration.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SuggestionProvider turns a prompt plus optional context into ranked shell
// command suggestions. Implementations return at most req.MaxSuggestions
// items and wrap every failure in *domain.ProviderError.
type SuggestionProvider interface {
	Name() string
	Suggest(ctx context.Context, req domain.SuggestionRequest) ([]string, error)
}

// ProviderRegistry selects a SuggestionProvider by model identifier prefix.
// Resolve returns *domain.ConfigError when the backend lacks a credential.
type ProviderRegistry interface {
	Resolve(model string) (SuggestionProvider, error)
}

// EnvironmentCollector gathers directory, git and shell-history facts.
type EnvironmentCollector interface {
	Collect(context.Context) (string, error)
}

// PreferenceSource reads the optional user preference document. A missing
// document yields an empty string and no error.
type PreferenceSource interface {
	Load() (string, error)
}

// Chooser presents suggestions and parses the user's choice. It never fails
// on malformed input; errors only come from a cancelled context.
type Chooser interface {
	Choose(ctx context.Context, suggestions []string) (domain.ChoiceOutcome, error)
}

// Confirmer asks the user whether to run a command.
type Confirmer interface {
	Confirm(ctx context.Context, command string, risk domain.RiskAssessment) (bool, error)
}

// Executor hands a chosen command to the user's shell. It reports false
// when the user declined and nothing ran.
type Executor interface {
	Execute(ctx context.Context, command string, skipConfirmation bool) (bool, error)
}

// CommandRunner performs the execution side effect (run or hand off).
type CommandRunner interface {
	Mode() domain.ExecutionMode
	Run(ctx context.Context, command string) error
}

// HistoryRepository stores executed commands, bounded to a maximum count.
type HistoryRepository interface {
	Append(domain.HistoryEntry) error
	Entries(limit int) ([]domain.HistoryEntry, error)
	Path() string
}

// SecurityService evaluates commands against guardrail rules.
type SecurityService interface {
	Evaluate(command string) (domain.RiskAssessment, error)
}

// Indicator shows a progress animation around one blocking call. The
// returned stop function blocks until the animation has fully stopped.
type Indicator interface {
	Start(message string) (stop func())
}

// Notifier prints short user-facing notices ("Aborted.", "No suggestions.").
type Notifier interface {
	Notice(message string)
	Warn(message string)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
