package executor

import (
	"context"
	"fmt"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/pkg/filesystem"
	"github.com/doeshing/aih-go/internal/ports"
)

// HandoffRunner stages the command in a file that the shell function from
// `aih shell-init` evals after aih exits, so the command runs in the user's
// interactive shell and lands in its history.
type HandoffRunner struct {
	path     string
	notifier ports.Notifier
}

// NewHandoffRunner builds a runner writing to path.
func NewHandoffRunner(path string, notifier ports.Notifier) *HandoffRunner {
	return &HandoffRunner{path: path, notifier: notifier}
}

// Mode implements ports.CommandRunner.
func (h *HandoffRunner) Mode() domain.ExecutionMode {
	return domain.ExecutionHandoff
}

// Run implements ports.CommandRunner.
func (h *HandoffRunner) Run(_ context.Context, command string) error {
	if err := filesystem.WriteFileAtomic(h.path, []byte(command+"\n"), domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write handoff file: %w", err)
	}
	if h.notifier != nil {
		h.notifier.Notice("Handed off to your shell.")
	}
	return nil
}

// Path returns the handoff file location.
func (h *HandoffRunner) Path() string {
	return h.path
}

var _ ports.CommandRunner = (*HandoffRunner)(nil)
