package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/doeshing/aih-go/internal/application/doctor"
	"github.com/doeshing/aih-go/internal/application/execute"
	"github.com/doeshing/aih-go/internal/application/suggest"
	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/infrastructure/ai"
	"github.com/doeshing/aih-go/internal/infrastructure/config"
	contextcollector "github.com/doeshing/aih-go/internal/infrastructure/context"
	"github.com/doeshing/aih-go/internal/infrastructure/executor"
	"github.com/doeshing/aih-go/internal/infrastructure/history"
	"github.com/doeshing/aih-go/internal/infrastructure/security"
	"github.com/doeshing/aih-go/internal/infrastructure/shell"
	"github.com/doeshing/aih-go/internal/infrastructure/terminal"
	"github.com/doeshing/aih-go/internal/pkg/filesystem"
	"github.com/doeshing/aih-go/internal/pkg/logger"
	"github.com/doeshing/aih-go/internal/ports"
)

// IO is the terminal the container's adapters talk to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO returns the process streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	SuggestService *suggest.Service
	DoctorService  *doctor.Service
	HistoryStore   ports.HistoryRepository
	Shell          *shell.Integration
	Renderer       *terminal.Renderer
	Logger         *logger.Zap
}

// BuildContainer loads the configuration and constructs the dependency
// graph. A *domain.ConfigError from loading is returned unchanged.
func BuildContainer(ctx context.Context, stdio IO) (*Container, error) {
	log := logger.NewFromEnv(filesystem.AppDir("aih.log"))

	cfgLoader := config.NewLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	historyStore, err := history.Open(cfg, filesystem.AppDir())
	if err != nil {
		return nil, err
	}

	guardrail, err := security.NewGuardrail(cfg.Paths.GuardrailFile)
	if err != nil {
		log.Warn("guardrail rules unusable, falling back to built-in", map[string]interface{}{
			"path":  cfg.Paths.GuardrailFile,
			"error": err.Error(),
		})
		guardrail, err = security.NewGuardrail("")
		if err != nil {
			return nil, err
		}
	}

	renderer := terminal.NewRenderer(stdio.Out)
	lines := terminal.NewLineReader(stdio.In)
	registry := ai.NewRegistry(cfg.Credentials, log)
	preferences := config.NewFilePreferences(cfg.Paths.PreferencesFile)
	integration := shell.NewIntegration()

	runner := executor.New(cfg, renderer, log)
	if sr, ok := runner.(*executor.ShellRunner); ok {
		sr.WithIO(stdio.In, stdio.Out, stdio.Err)
	}

	executeService := &execute.Service{
		Confirmer: terminal.NewPrompter(lines, renderer),
		History:   historyStore,
		Runner:    runner,
		Security:  guardrail,
		Notifier:  renderer,
		Logger:    log,
		Clock:     time.Now,
	}

	suggestService := &suggest.Service{
		Registry:    registry,
		Environment: contextcollector.NewCollector(contextcollector.Options{}, log),
		Preferences: preferences,
		Chooser:     terminal.NewChooser(lines, renderer),
		Executor:    executeService,
		Indicator:   terminal.NewSpinner(stdio.Err),
		Notifier:    renderer,
		Logger:      log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Registry:       registry,
		History:        historyStore,
		Preferences:    preferences,
		Guardrail:      guardrail,
		Shell:          integration,
		ShellName:      shell.Normalize(""),
	}

	return &Container{
		Config:         cfg,
		SuggestService: suggestService,
		DoctorService:  doctorService,
		HistoryStore:   historyStore,
		Shell:          integration,
		Renderer:       renderer,
		Logger:         log,
	}, nil
}

// Close releases the history store and flushes the log.
func (c *Container) Close() error {
	if closer, ok := c.HistoryStore.(io.Closer); ok {
		_ = closer.Close()
	}
	return c.Logger.Sync()
}
