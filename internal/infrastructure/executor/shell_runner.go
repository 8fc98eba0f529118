package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// ShellRunner runs commands through the user's shell with the terminal
// attached. The command's own exit status is the shell's business: a
// non-zero exit is logged, not returned.
type ShellRunner struct {
	shell  string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger ports.Logger
}

// NewShellRunner builds a runner; shell defaults to $SHELL, then /bin/sh.
func NewShellRunner(shell string, logger ports.Logger) *ShellRunner {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &ShellRunner{
		shell:  shell,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
	}
}

// WithIO replaces the standard streams.
func (r *ShellRunner) WithIO(stdin io.Reader, stdout, stderr io.Writer) *ShellRunner {
	r.stdin, r.stdout, r.stderr = stdin, stdout, stderr
	return r
}

// Mode implements ports.CommandRunner.
func (r *ShellRunner) Mode() domain.ExecutionMode {
	return domain.ExecutionRun
}

// Run implements ports.CommandRunner.
func (r *ShellRunner) Run(ctx context.Context, command string) error {
	c := exec.CommandContext(ctx, r.shell, "-c", command)
	c.Stdin = r.stdin
	c.Stdout = r.stdout
	c.Stderr = r.stderr

	err := c.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		r.logger.Warn("command exited non-zero", map[string]interface{}{
			"command":   command,
			"exit_code": exitErr.ExitCode(),
		})
		return nil
	}
	return err
}

var _ ports.CommandRunner = (*ShellRunner)(nil)
