package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/raphi011/shim/internal/config"
	"github.com/raphi011/shim/internal/loader"
	"github.com/raphi011/shim/internal/log"
)

// completePrograms completes registered program names. Completion runs
// without the root pre-run, so config and shims are loaded here quietly.
func completePrograms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	files, err := loader.Files(cfg.ShimDir, nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := log.WithLogger(context.Background(), log.New(io.Discard, false, true))
	reg, err := loader.Load(ctx, files)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return reg.Programs(), cobra.ShellCompDirectiveNoFileComp
}

// completeExecArg completes the program for exec, then defers to the shell.
func completeExecArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return completePrograms(cmd, args, toComplete)
}
