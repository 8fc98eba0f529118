package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/aih-go/internal/app"
	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/infrastructure/shell"
)

func newConfigCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration (secrets masked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(container.Config.Masked())
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, credentials and local files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			container.Renderer.Health(report)
			if err != nil {
				return err
			}
			if report.Failed() {
				return errors.New("doctor found problems")
			}
			return nil
		},
	}
}

func newShellInitCommand(container *app.Container) *cobra.Command {
	var install bool
	cmd := &cobra.Command{
		Use:   "shell-init [bash|zsh]",
		Short: "Print the shell function used by EXECUTION_MODE=handoff",
		Long: "Prints an aih() shell function that runs the command you pick in\n" +
			"your current shell. Add `eval \"$(aih shell-init bash)\"` to your rc\n" +
			"file, or pass --install to have it appended for you.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(domain.ShellBash), string(domain.ShellZsh)},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			sh := shell.Normalize(name)

			if install {
				res, err := container.Shell.Install(sh)
				if err != nil {
					return err
				}
				if res.RCUpdated {
					container.Renderer.Notice(fmt.Sprintf("Added aih to %s. Restart your shell to use it.", res.RCFile))
				} else {
					container.Renderer.Notice(fmt.Sprintf("%s already loads aih.", res.RCFile))
				}
				return nil
			}

			script, err := shell.Script(sh, container.Config.Paths.HandoffFile)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), script)
			return err
		},
	}
	cmd.Flags().BoolVar(&install, "install", false, "Append the eval line to ~/.bashrc or ~/.zshrc")
	return cmd
}
