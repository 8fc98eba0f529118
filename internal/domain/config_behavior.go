package domain

import (
	"fmt"
	"strings"
)

// ProviderPrefix returns the backend prefix of the configured model
// ("openai/gpt-4o-mini" -> "openai").
func (c *Config) ProviderPrefix() string {
	return ModelPrefix(c.Model)
}

// ModelPrefix returns the part of a model identifier before the first slash.
func ModelPrefix(model string) string {
	prefix, _, _ := strings.Cut(strings.TrimSpace(model), "/")
	return strings.ToLower(prefix)
}

// ModelName returns the part of a model identifier after the first slash, or
// the whole identifier when it carries no prefix.
func ModelName(model string) string {
	_, name, found := strings.Cut(strings.TrimSpace(model), "/")
	if !found {
		return strings.TrimSpace(model)
	}
	return name
}

// GetModel returns the configured model or the default one.
func (c *Config) GetModel() string {
	if strings.TrimSpace(c.Model) == "" {
		return DefaultModel
	}
	return c.Model
}

// GetMaxSuggestions returns the suggestion cap with default fallback.
func (c *Config) GetMaxSuggestions() int {
	if c.MaxSuggestions <= 0 {
		return DefaultMaxSuggestions
	}
	return c.MaxSuggestions
}

// GetMaxCommandHistory returns the history capacity with default fallback.
func (c *Config) GetMaxCommandHistory() int {
	if c.MaxCommandHistory <= 0 {
		return DefaultMaxCommandHistory
	}
	return c.MaxCommandHistory
}

// GetExecutionMode returns the execution policy, defaulting to run.
func (c *Config) GetExecutionMode() ExecutionMode {
	switch c.Execution {
	case ExecutionHandoff:
		return ExecutionHandoff
	default:
		return ExecutionRun
	}
}

// GetHistoryBackend returns the history backend, defaulting to the text file.
func (c *Config) GetHistoryBackend() HistoryBackend {
	if c.History == HistoryBackendSQLite {
		return HistoryBackendSQLite
	}
	return HistoryBackendFile
}

// Validate checks values that cannot be defaulted silently.
func (c *Config) Validate() error {
	if c.MaxSuggestions < 0 {
		return &ConfigError{Key: "MAX_SUGGESTIONS", Reason: fmt.Sprintf("must be a positive integer, got %d", c.MaxSuggestions)}
	}
	if c.MaxCommandHistory < 0 {
		return &ConfigError{Key: "MAX_COMMAND_HISTORY", Reason: fmt.Sprintf("must be a positive integer, got %d", c.MaxCommandHistory)}
	}
	switch c.Execution {
	case "", ExecutionRun, ExecutionHandoff:
	default:
		return &ConfigError{Key: "EXECUTION_MODE", Reason: fmt.Sprintf("unknown mode %q (want run or handoff)", c.Execution)}
	}
	switch c.History {
	case "", HistoryBackendFile, HistoryBackendSQLite:
	default:
		return &ConfigError{Key: "HISTORY_BACKEND", Reason: fmt.Sprintf("unknown backend %q (want file or sqlite)", c.History)}
	}
	return nil
}

// Masked returns a copy safe to print: secrets are reduced to a short hint.
func (c Config) Masked() Config {
	c.Credentials.OpenAIAPIKey = maskSecret(c.Credentials.OpenAIAPIKey)
	c.Credentials.GoogleAPIKey = maskSecret(c.Credentials.GoogleAPIKey)
	return c
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "****" + value[len(value)-4:]
}

// IsTruthy reports whether a configuration string means "on".
func IsTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}
