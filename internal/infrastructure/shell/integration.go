// Package shell renders and installs the shell function that runs commands
// staged in handoff mode.
package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/doeshing/aih-go/assets"
	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/pkg/filesystem"
)

const handoffPlaceholder = "__AIH_HANDOFF_FILE__"

// Integration knows the init scripts and the rc files they are sourced from.
type Integration struct {
	home string
}

// NewIntegration builds an integration rooted at the user's home directory.
func NewIntegration() *Integration {
	return &Integration{home: filesystem.UserHomeDir()}
}

// NewIntegrationAt roots rc file lookups at home.
func NewIntegrationAt(home string) *Integration {
	return &Integration{home: home}
}

// Normalize maps a shell name, or $SHELL when empty, to a known shell.
func Normalize(shell string) domain.ShellName {
	if shell == "" {
		shell = filepath.Base(os.Getenv("SHELL"))
	}
	switch strings.ToLower(shell) {
	case "zsh":
		return domain.ShellZsh
	case "bash":
		return domain.ShellBash
	default:
		return domain.ShellUnknown
	}
}

// Script returns the init script for shell with the handoff path filled in.
func Script(shell domain.ShellName, handoffPath string) (string, error) {
	var tmpl string
	switch shell {
	case domain.ShellZsh:
		tmpl = assets.ShellInitZsh
	case domain.ShellBash:
		tmpl = assets.ShellInitBash
	default:
		return "", fmt.Errorf("unsupported shell %q (want bash or zsh)", shell)
	}
	quoted, err := syntax.Quote(handoffPath, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("quote handoff path: %w", err)
	}
	return strings.ReplaceAll(tmpl, handoffPlaceholder, quoted), nil
}

// Install appends the eval line to the shell's rc file unless present.
func (i *Integration) Install(shell domain.ShellName) (domain.ShellInstallResult, error) {
	rcFile := i.rcFile(shell)
	if rcFile == "" {
		return domain.ShellInstallResult{}, fmt.Errorf("unsupported shell %q", shell)
	}
	updated, err := ensureRCLine(rcFile, evalLine(shell))
	if err != nil {
		return domain.ShellInstallResult{}, err
	}
	return domain.ShellInstallResult{Shell: shell, RCFile: rcFile, RCUpdated: updated}, nil
}

// Status reports whether the rc file already evaluates the init script.
func (i *Integration) Status(shell domain.ShellName) domain.ShellStatus {
	status := domain.ShellStatus{Shell: shell, RCFile: i.rcFile(shell)}
	if status.RCFile == "" {
		status.Error = "unsupported shell"
		return status
	}
	contents, err := os.ReadFile(status.RCFile)
	switch {
	case err == nil:
		status.LinePresent = strings.Contains(string(contents), evalLine(shell))
	case !errors.Is(err, os.ErrNotExist):
		status.Error = err.Error()
	}
	return status
}

func (i *Integration) rcFile(shell domain.ShellName) string {
	switch shell {
	case domain.ShellZsh:
		return filepath.Join(i.home, ".zshrc")
	case domain.ShellBash:
		return filepath.Join(i.home, ".bashrc")
	default:
		return ""
	}
}

func evalLine(shell domain.ShellName) string {
	return fmt.Sprintf(`eval "$(aih shell-init %s)"`, shell)
}

// ensureRCLine appends line to the rc file unless present. A symlinked rc
// file is updated at its target, keeping the target's permissions.
func ensureRCLine(path, line string) (bool, error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	perm := os.FileMode(domain.FilePermissions)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	contents, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	text := string(contents)
	if strings.Contains(text, line) {
		return false, nil
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	text += "# Added by aih\n" + line + "\n"
	return true, filesystem.WriteFileAtomic(path, []byte(text), perm)
}
