package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is used for history and handoff files (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Configuration defaults
const (
	DefaultModel             = "openai/gpt-4o-mini"
	DefaultOpenAIModelID     = "gpt-4o-mini"
	DefaultOllamaAPIURL      = "http://localhost:11434/api/chat"
	DefaultMaxSuggestions    = 3
	DefaultMaxCommandHistory = 100
)

// Timeout and duration constants
const (
	// ProviderTimeout bounds one suggestion round trip.
	ProviderTimeout = 30 * time.Second
	// DefaultCommandTimeout is the timeout for helper commands such as git status
	DefaultCommandTimeout = 2 * time.Second
	// EnvironmentCacheTTL is how long collected environment context is reused
	// between rounds of the same session.
	EnvironmentCacheTTL = 30 * time.Second
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// RecentShellHistoryLines is how many shell history lines go into context
	RecentShellHistoryLines = 10
)

// Time formats
const (
	// HistoryTimestampFormat is the timestamp written in front of each history line
	HistoryTimestampFormat = "2006-01-02T15:04:05"
)
