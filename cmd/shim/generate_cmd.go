package main

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/shim/internal/config"
	"github.com/raphi011/shim/internal/generate"
	"github.com/raphi011/shim/internal/output"
)

func newGenerateCmd() *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Output shell wrapper functions for all shims",
		Aliases: []string{"gen"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Output one shell function per registered shim.

Each function shadows the program name and calls 'shim exec', so typing
the program name in an interactive shell runs its hooks. The shell is
taken from --shell, then the "shell" setting, then $SHELL.

Re-run after editing shim files to pick up added or removed programs.`,
		Example: `  eval "$(shim generate --shell bash)"   # add to ~/.bashrc
  eval "$(shim generate --shell zsh)"    # add to ~/.zshrc
  shim generate --shell fish | source    # add to ~/.config/fish/config.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if shell == "" {
				shell = defaultShell(configFromContext(ctx))
			}
			if err := config.ValidateShell(shell); err != nil {
				return err
			}

			reg, err := loadRegistry(ctx)
			if err != nil {
				return err
			}

			return generate.Write(out.Writer(), reg, generate.Options{
				Shell:  shell,
				Binary: executablePath(),
				Now:    time.Now(),
			})
		},
	}

	cmd.Flags().StringVarP(&shell, "shell", "s", "", "Shell to generate for (bash, zsh, or fish)")
	_ = cmd.RegisterFlagCompletionFunc("shell", cobra.FixedCompletions(config.ValidShells, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// defaultShell picks the configured shell, then $SHELL, then bash.
func defaultShell(cfg *config.Config) string {
	if cfg.Shell != "" {
		return cfg.Shell
	}
	if name := filepath.Base(os.Getenv("SHELL")); slices.Contains(config.ValidShells, name) {
		return name
	}
	return "bash"
}

// executablePath returns the absolute path of the running binary.
func executablePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "shim"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}
