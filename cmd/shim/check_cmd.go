package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/raphi011/shim/internal/doctor"
	"github.com/raphi011/shim/internal/runner"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Diagnose configuration and shim files",
		Aliases: []string{"doctor"},
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose configuration and shim files.

Checks:
- config.toml parses and has no unknown settings
- The shim directory exists
- Every shim file can be read and parsed
- Programs defined in more than one file (the last one wins)
- Every shimmed program is on PATH
- The command of every hook line is on PATH

Exits non-zero when issues are found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			files, err := shimFiles(ctx)
			if err != nil {
				return err
			}

			_, err = doctor.Run(ctx, doctor.Input{
				Config:    configFromContext(ctx),
				ConfigErr: stateFromContext(ctx).configErr,
				Files:     files,
			}, runner.New(io.Discard, io.Discard))
			return err
		},
	}

	return cmd
}
