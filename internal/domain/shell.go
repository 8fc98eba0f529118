package domain

// ShellName enumerates shells that have an integration script.
type ShellName string

const (
	ShellUnknown ShellName = "unknown"
	ShellZsh     ShellName = "zsh"
	ShellBash    ShellName = "bash"
)

// ShellStatus captures whether the handoff function is wired into an rc file.
type ShellStatus struct {
	Shell       ShellName
	RCFile      string
	LinePresent bool
	Error       string
}

// ShellInstallResult describes an install outcome.
type ShellInstallResult struct {
	Shell     ShellName
	RCFile    string
	RCUpdated bool
}
