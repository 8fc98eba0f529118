package assets

import (
	_ "embed"
)

// DefaultGuardrailYAML contains the embedded default guardrail rules.
//
//go:embed defaults/guardrail.yaml
var DefaultGuardrailYAML []byte

// ShellInitBash is the bash function that runs handed-off commands.
//
//go:embed defaults/shell_init.bash
var ShellInitBash string

// ShellInitZsh is the zsh variant of ShellInitBash.
//
//go:embed defaults/shell_init.zsh
var ShellInitZsh string
