package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/shim/internal/dispatch"
	"github.com/raphi011/shim/internal/output"
	"github.com/raphi011/shim/internal/runner"
)

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exec [--] <program> [args...]",
		Short:   "Run a program through its shim",
		Aliases: []string{"x"},
		GroupID: GroupCore,
		Long: `Run a program through its shim.

The program is resolved on PATH and its shim is looked up by base name.
Pre-hooks run first, then the override hooks or the original program,
then the post-hooks. Hooks fire when their on_subcommand equals the first
argument; hooks without on_subcommand fire only when there are no
arguments. The first failing command stops the run and its exit code
becomes shim's exit code.

Use -- when the program's arguments start with a dash.`,
		Example: `  shim exec -- git push origin main
  shim exec git status
  shim -v exec -- cargo build        # Show phase transitions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("nothing to exec (usage: shim exec -- <program> [args...])")
			}

			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			out := output.FromContext(ctx)

			reg, err := loadRegistry(ctx)
			if err != nil {
				return err
			}

			r := runner.New(out.Writer(), cmd.ErrOrStderr())
			d := dispatch.New(r, dispatch.WithMissingShimPolicy(dispatch.MissingShimPolicy(cfg.MissingShim)))
			return d.Dispatch(ctx, reg, args[0], args[1:])
		},
	}

	// Everything after the program name belongs to the program.
	cmd.Flags().SetInterspersed(false)

	// Register completions
	cmd.ValidArgsFunction = completeExecArg

	return cmd
}
