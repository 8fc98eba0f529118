package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/aih-go/internal/app"
	"github.com/doeshing/aih-go/internal/application/suggest"
	"github.com/doeshing/aih-go/internal/domain"
)

// Execute builds the container, runs the command line in args and releases
// the container's resources.
func Execute(ctx context.Context, stdio app.IO, args []string) error {
	container, err := app.BuildContainer(ctx, stdio)
	if err != nil {
		return err
	}
	defer container.Close()

	root := NewRootCmd(container)
	root.SetArgs(args)
	root.SetIn(stdio.In)
	root.SetOut(stdio.Out)
	root.SetErr(stdio.Err)
	return root.ExecuteContext(ctx)
}

type rootFlags struct {
	includeContext bool
	model          string
	maxSuggestions int
	noConfirm      bool
	showHistory    bool
	historyLimit   int
}

// NewRootCmd wires the cobra root command. Flag defaults come from the
// loaded configuration.
func NewRootCmd(container *app.Container) *cobra.Command {
	cfg := container.Config
	flags := rootFlags{}

	root := &cobra.Command{
		Use:   "aih [prompt...]",
		Short: "Suggest shell commands with LLM assistance",
		Long: "aih turns a natural-language request into shell command suggestions,\n" +
			"lets you refine them, and runs the one you pick.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container.Renderer.Banner()
			if flags.showHistory {
				return showHistory(container, flags.historyLimit)
			}
			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				return fmt.Errorf("a prompt is required unless --history is given")
			}
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), container, prompt, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.Flags()
	f.BoolVar(&flags.includeContext, "context", cfg.IncludeContext, "Include directory, git and shell history context (default from INCLUDE_CONTEXT)")
	f.StringVarP(&flags.model, "model", "m", cfg.GetModel(), "Model as <backend>/<id>: openai, ollama or gemini (default from MODEL)")
	f.IntVar(&flags.maxSuggestions, "max", cfg.GetMaxSuggestions(), "Max suggestions (default from MAX_SUGGESTIONS)")
	f.BoolVar(&flags.noConfirm, "no-confirm", !cfg.RequireConfirmation, "Skip the confirmation prompt (default from REQUIRE_CONFIRMATION)")
	f.BoolVar(&flags.showHistory, "history", false, "Show executed commands and exit")
	f.IntVar(&flags.historyLimit, "history-limit", domain.DefaultHistoryLimit, "Number of entries shown by --history")

	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newShellInitCommand(container))
	return root
}

func (f rootFlags) options() (suggest.Options, error) {
	if f.maxSuggestions <= 0 {
		return suggest.Options{}, &domain.ConfigError{Key: "--max", Reason: fmt.Sprintf("must be a positive integer, got %d", f.maxSuggestions)}
	}
	return suggest.Options{
		IncludeContext:   f.includeContext,
		Model:            f.model,
		MaxSuggestions:   f.maxSuggestions,
		SkipConfirmation: f.noConfirm,
	}, nil
}

func runSession(ctx context.Context, container *app.Container, prompt string, opts suggest.Options) error {
	result, err := container.SuggestService.Run(ctx, prompt, opts)
	container.Logger.Info("session finished", map[string]interface{}{
		"outcome": string(result.Outcome),
		"rounds":  result.Rounds,
		"model":   opts.Model,
	})
	return err
}

func showHistory(container *app.Container, limit int) error {
	entries, err := container.HistoryStore.Entries(limit)
	if err != nil {
		return fmt.Errorf("read history %s: %w", container.HistoryStore.Path(), err)
	}
	container.Renderer.History(entries, time.Now())
	return nil
}
