package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/raphi011/shim/internal/dispatch"
	"github.com/raphi011/shim/internal/log"
	"github.com/raphi011/shim/internal/output"
	"github.com/raphi011/shim/internal/shim"
	"github.com/raphi011/shim/internal/ui/static"
)

// ShimDisplay holds shim info for JSON output
type ShimDisplay struct {
	Program     string        `json:"program"`
	Source      string        `json:"source,omitempty"`
	Fingerprint string        `json:"fingerprint,omitempty"`
	Env         []string      `json:"env,omitempty"`
	Pre         []HookDisplay `json:"pre,omitempty"`
	Override    []HookDisplay `json:"override,omitempty"`
	Post        []HookDisplay `json:"post,omitempty"`
}

// HookDisplay holds hook info for JSON output
type HookDisplay struct {
	OnSubcommand *string  `json:"on_subcommand,omitempty"`
	Env          []string `json:"env,omitempty"`
	Run          string   `json:"run"`
}

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list [program]",
		Short:   "List registered shims and their hooks",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `List registered shims with one row per hook.

The ON column shows the subcommand a hook is scoped to, or "(no args)"
for hooks that fire only when the program is run without arguments.
With -v the file each shim was loaded from is shown as well.`,
		Example: `  shim list            # All shims
  shim list git        # Only the git shim
  shim -v list         # Include source files
  shim list --json     # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			reg, err := loadRegistry(ctx)
			if err != nil {
				return err
			}

			programs := reg.Programs()
			if len(args) == 1 {
				if _, ok := reg.Lookup(args[0]); !ok {
					return &dispatch.NoShimError{Program: args[0], Suggestions: reg.Suggest(args[0])}
				}
				programs = args
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(shimDisplays(reg, programs))
			}

			if len(programs) == 0 {
				l.Printf("No shims found in %s\n", configFromContext(ctx).ShimDir)
				return nil
			}

			withSource := l.IsVerbose()
			out.Print(static.RenderTable(static.ShimTableHeaders(withSource), static.ShimTableRows(reg, programs, withSource)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	// Register completions
	cmd.ValidArgsFunction = completePrograms

	return cmd
}

func shimDisplays(reg *shim.Registry, programs []string) []ShimDisplay {
	displays := make([]ShimDisplay, 0, len(programs))
	for _, program := range programs {
		s, ok := reg.Lookup(program)
		if !ok {
			continue
		}
		src, _ := reg.Source(program)
		displays = append(displays, ShimDisplay{
			Program:     program,
			Source:      src.Path,
			Fingerprint: src.Fingerprint,
			Env:         s.Env(),
			Pre:         hookDisplays(s.PreHooks()),
			Override:    hookDisplays(s.OverrideHooks()),
			Post:        hookDisplays(s.PostHooks()),
		})
	}
	return displays
}

func hookDisplays(hs []shim.SubcommandHook) []HookDisplay {
	if len(hs) == 0 {
		return nil
	}
	displays := make([]HookDisplay, len(hs))
	for i, h := range hs {
		displays[i] = HookDisplay{OnSubcommand: h.OnSubcommand, Env: h.Env, Run: h.Run}
	}
	return displays
}
