package domain

// Config is the effective key/value configuration after defaults, the dotenv
// file and the process environment have been merged.
type Config struct {
	IncludeContext      bool           `yaml:"include_context"`
	Model               string         `yaml:"model"`
	MaxSuggestions      int            `yaml:"max_suggestions"`
	RequireConfirmation bool           `yaml:"require_confirmation"`
	MaxCommandHistory   int            `yaml:"max_command_history"`
	Execution           ExecutionMode  `yaml:"execution_mode"`
	History             HistoryBackend `yaml:"history_backend"`
	Paths               PathSettings   `yaml:"paths"`
	Credentials         Credentials    `yaml:"credentials"`
}

// PathSettings locates the files aih reads and writes.
type PathSettings struct {
	EnvFile         string `yaml:"env_file"`
	HistoryFile     string `yaml:"history_file"`
	PreferencesFile string `yaml:"preferences_file"`
	HandoffFile     string `yaml:"handoff_file"`
	GuardrailFile   string `yaml:"guardrail_file"`
}

// Credentials holds provider secrets and endpoints.
type Credentials struct {
	OpenAIAPIKey string `yaml:"openai_api_key"`
	GoogleAPIKey string `yaml:"google_api_key"`
	OllamaAPIURL string `yaml:"ollama_api_url"`
}

// ExecutionMode selects how a chosen command reaches the user's shell.
type ExecutionMode string

const (
	// ExecutionRun runs the command through $SHELL -c.
	ExecutionRun ExecutionMode = "run"
	// ExecutionHandoff stages the command in a file for the shell function to eval.
	ExecutionHandoff ExecutionMode = "handoff"
)

// HistoryBackend selects the history store implementation.
type HistoryBackend string

const (
	HistoryBackendFile   HistoryBackend = "file"
	HistoryBackendSQLite HistoryBackend = "sqlite"
)
