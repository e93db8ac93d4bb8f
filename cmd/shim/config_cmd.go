package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/shim/internal/config"
	"github.com/raphi011/shim/internal/log"
	"github.com/raphi011/shim/internal/output"
)

// ConfigDisplay holds the effective settings for JSON output
type ConfigDisplay struct {
	File        string `json:"file,omitempty"`
	ShimDir     string `json:"shim_dir"`
	MissingShim string `json:"missing_shim"`
	Shell       string `json:"shell,omitempty"`
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage shim configuration.

Config file: config.toml in $SHIM_CONFIG_DIR, $XDG_CONFIG_HOME/shim,
or ~/.config/shim (first match wins).`,
		Example: `  shim config init          # Create default config
  shim config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  shim config init            # Create config
  shim config init --force    # Overwrite existing config
  shim config init -s         # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if stdout {
				out.Print(config.DefaultConfig())
				return nil
			}

			path, err := config.Init(force)
			if err != nil {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}

			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	// -f is taken by the global --file flag
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Example: `  shim config show          # Show config
  shim config show --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			cfg := configFromContext(ctx)

			display := ConfigDisplay{
				File:        cfg.Path,
				ShimDir:     cfg.ShimDir,
				MissingShim: cfg.MissingShim,
				Shell:       cfg.Shell,
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(display)
			}

			if display.File != "" {
				out.Printf("Config file: %s\n", display.File)
			} else {
				out.Printf("Config file: (none, using defaults)\n")
			}
			out.Println()
			out.Printf("shim_dir: %s\n", display.ShimDir)
			out.Printf("missing_shim: %s\n", display.MissingShim)
			out.Printf("shell: %s\n", display.Shell)

			for _, key := range cfg.Unknown {
				l.Warn("unknown setting %q in %s", key, cfg.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
