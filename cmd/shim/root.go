package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/shim/internal/config"
	"github.com/raphi011/shim/internal/log"
	"github.com/raphi011/shim/internal/output"
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// rootOptions holds the global flags.
type rootOptions struct {
	files   []string
	verbose bool
	quiet   bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "shim",
		Short: "Run hooks before, after, or instead of existing programs",
		Long: `shim intercepts invocations of existing command-line programs and runs
configured hooks before, after, or instead of the real program.

Shims are defined in YAML files in the shim directory. Install the
generated shell functions so that typing the program name goes through
'shim exec':

  eval "$(shim generate --shell bash)"`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate mutually exclusive flags
			if opts.verbose && opts.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			cmd.SetContext(setupContext(cmd.Context(), opts))
			return nil
		},
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	cmd.PersistentFlags().StringArrayVarP(&opts.files, "file", "f", nil, "Additional shim file to load (repeatable, wins over the shim directory)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show phases and external commands being executed")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress all log output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	_ = cmd.MarkPersistentFlagFilename("file", "yaml", "yml")

	// Version flag
	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	cmd.AddCommand(newExecCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newGenerateCmd())

	// Config commands
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// setupContext attaches the logger, printer, config, and CLI state.
func setupContext(ctx context.Context, opts rootOptions) context.Context {
	// Create logger (stderr for diagnostics)
	logger := log.New(os.Stderr, opts.verbose, opts.quiet)
	ctx = log.WithLogger(ctx, logger)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("%v", err)
	}
	ctx = config.WithConfig(ctx, &cfg)

	return withState(ctx, &cliState{shimFiles: opts.files, configErr: err})
}

// Execute runs the root command with args and returns its error.
func Execute(args []string) error {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
