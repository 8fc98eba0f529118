package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/pkg/filesystem"
	"github.com/doeshing/aih-go/internal/ports"
)

// Keys read from the dotenv file and the process environment.
const (
	KeyIncludeContext      = "INCLUDE_CONTEXT"
	KeyModel               = "MODEL"
	KeyModelAlias          = "OPENAI_MODEL"
	KeyMaxSuggestions      = "MAX_SUGGESTIONS"
	KeyRequireConfirmation = "REQUIRE_CONFIRMATION"
	KeyMaxCommandHistory   = "MAX_COMMAND_HISTORY"
	KeyOpenAIAPIKey        = "OPENAI_API_KEY"
	KeyGoogleAPIKey        = "GOOGLE_API_KEY"
	KeyOllamaAPIURL        = "OLLAMA_API_URL"
	KeyExecutionMode       = "EXECUTION_MODE"
	KeyHistoryBackend      = "HISTORY_BACKEND"
	KeyHistoryFile         = "HISTORY_FILE"
	KeyPreferencesFile     = "PREFERENCES_FILE"
	KeyHandoffFile         = "HANDOFF_FILE"
	KeyGuardrailFile       = "GUARDRAIL_FILE"

	// EnvFileVariable overrides the dotenv location.
	EnvFileVariable = "AIH_ENV_FILE"
)

// Loader merges defaults, the dotenv file (~/.aih/.env) and the process
// environment, in increasing order of precedence.
type Loader struct {
	envFile string
}

// NewLoader builds a loader. An empty envFile resolves to $AIH_ENV_FILE, then
// ~/.aih/.env.
func NewLoader(envFile string) *Loader {
	return &Loader{envFile: envFile}
}

// Load implements ports.ConfigProvider.
func (l *Loader) Load(context.Context) (domain.Config, error) {
	envFile := l.resolveEnvFile()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := readEnvFile(v, envFile); err != nil {
		return domain.Config{}, err
	}

	maxSuggestions, err := intValue(v, KeyMaxSuggestions)
	if err != nil {
		return domain.Config{}, err
	}
	maxHistory, err := intValue(v, KeyMaxCommandHistory)
	if err != nil {
		return domain.Config{}, err
	}

	model := strings.TrimSpace(v.GetString(KeyModel))
	if model == "" {
		model = strings.TrimSpace(v.GetString(KeyModelAlias))
	}

	cfg := domain.Config{
		IncludeContext:      domain.IsTruthy(v.GetString(KeyIncludeContext)),
		Model:               model,
		MaxSuggestions:      maxSuggestions,
		RequireConfirmation: domain.IsTruthy(v.GetString(KeyRequireConfirmation)),
		MaxCommandHistory:   maxHistory,
		Execution:           domain.ExecutionMode(strings.ToLower(strings.TrimSpace(v.GetString(KeyExecutionMode)))),
		History:             domain.HistoryBackend(strings.ToLower(strings.TrimSpace(v.GetString(KeyHistoryBackend)))),
		Paths: domain.PathSettings{
			EnvFile:         envFile,
			HistoryFile:     pathValue(v, KeyHistoryFile),
			PreferencesFile: pathValue(v, KeyPreferencesFile),
			HandoffFile:     pathValue(v, KeyHandoffFile),
			GuardrailFile:   pathValue(v, KeyGuardrailFile),
		},
		Credentials: domain.Credentials{
			OpenAIAPIKey: strings.TrimSpace(v.GetString(KeyOpenAIAPIKey)),
			GoogleAPIKey: strings.TrimSpace(v.GetString(KeyGoogleAPIKey)),
			OllamaAPIURL: strings.TrimSpace(v.GetString(KeyOllamaAPIURL)),
		},
	}
	if cfg.Model == "" {
		cfg.Model = domain.DefaultModel
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func (l *Loader) resolveEnvFile() string {
	if l.envFile != "" {
		return filesystem.ExpandPath(l.envFile)
	}
	if custom := os.Getenv(EnvFileVariable); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filesystem.AppDir(".env")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyIncludeContext, "false")
	v.SetDefault(KeyModel, "")
	v.SetDefault(KeyModelAlias, "")
	v.SetDefault(KeyMaxSuggestions, strconv.Itoa(domain.DefaultMaxSuggestions))
	v.SetDefault(KeyRequireConfirmation, "true")
	v.SetDefault(KeyMaxCommandHistory, strconv.Itoa(domain.DefaultMaxCommandHistory))
	v.SetDefault(KeyOpenAIAPIKey, "")
	v.SetDefault(KeyGoogleAPIKey, "")
	v.SetDefault(KeyOllamaAPIURL, domain.DefaultOllamaAPIURL)
	v.SetDefault(KeyExecutionMode, string(domain.ExecutionRun))
	v.SetDefault(KeyHistoryBackend, string(domain.HistoryBackendFile))
	v.SetDefault(KeyHistoryFile, "")
	v.SetDefault(KeyPreferencesFile, filesystem.AppDir("commands.md"))
	v.SetDefault(KeyHandoffFile, filesystem.AppDir("handoff"))
	v.SetDefault(KeyGuardrailFile, filesystem.AppDir("guardrail.yaml"))
}

// readEnvFile merges the dotenv file when it exists. Process environment
// variables still win because AutomaticEnv is consulted first.
func readEnvFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return &domain.ConfigError{Reason: fmt.Sprintf("read %s: %v", path, err)}
	}
	return nil
}

func intValue(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.ConfigError{Key: key, Reason: fmt.Sprintf("must be an integer, got %q", raw)}
	}
	if n <= 0 {
		return 0, &domain.ConfigError{Key: key, Reason: fmt.Sprintf("must be a positive integer, got %d", n)}
	}
	return n, nil
}

func pathValue(v *viper.Viper, key string) string {
	return filesystem.ExpandPath(strings.TrimSpace(v.GetString(key)))
}

var _ ports.ConfigProvider = (*Loader)(nil)
