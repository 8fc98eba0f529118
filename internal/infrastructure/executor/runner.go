package executor

import (
	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// New returns the runner for the configured execution mode.
func New(cfg domain.Config, notifier ports.Notifier, logger ports.Logger) ports.CommandRunner {
	if cfg.GetExecutionMode() == domain.ExecutionHandoff {
		return NewHandoffRunner(cfg.Paths.HandoffFile, notifier)
	}
	return NewShellRunner("", logger)
}
