package doctor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/raphi011/shim/internal/config"
	"github.com/raphi011/shim/internal/hooks"
	"github.com/raphi011/shim/internal/loader"
	"github.com/raphi011/shim/internal/shim"
)

// Resolver finds executables on PATH.
type Resolver interface {
	LookPath(name string) (string, error)
}

// Input is what a check run inspects.
type Input struct {
	Config    *config.Config
	ConfigErr error    // error returned while loading config.toml, if any
	Files     []string // shim files in load order
}

// Check runs all checks and returns the report. It never spawns processes.
func Check(in Input, r Resolver) Report {
	var rep Report

	rep.Issues = append(rep.Issues, checkConfig(in.Config, in.ConfigErr)...)

	entries, fileIssues := checkFiles(in.Files)
	rep.Issues = append(rep.Issues, fileIssues...)
	rep.Issues = append(rep.Issues, checkShadowed(entries)...)
	rep.Stats.Files = len(in.Files) - len(fileIssues)

	reg := shim.NewRegistry(entries...)
	rep.Stats.Shims = reg.Len()

	pathIssues := checkPath(reg, r, &rep.Stats)
	rep.Issues = append(rep.Issues, pathIssues...)

	return rep
}

// checkConfig reports config load errors, unknown settings, and a missing shim dir.
func checkConfig(cfg *config.Config, loadErr error) []Issue {
	var issues []Issue

	if loadErr != nil {
		issues = append(issues, Issue{
			Key:         config.FileName,
			Description: loadErr.Error(),
			Category:    CategoryConfig,
		})
	}
	if cfg == nil {
		return issues
	}

	for _, key := range cfg.Unknown {
		issues = append(issues, Issue{
			Key:         cfg.Path,
			Description: fmt.Sprintf("unknown setting %q", key),
			Category:    CategoryConfig,
		})
	}

	info, err := os.Stat(cfg.ShimDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		issues = append(issues, Issue{
			Key:         cfg.ShimDir,
			Description: "shim directory does not exist",
			Category:    CategoryConfig,
		})
	case err != nil:
		issues = append(issues, Issue{
			Key:         cfg.ShimDir,
			Description: fmt.Sprintf("cannot access shim directory: %v", err),
			Category:    CategoryConfig,
		})
	case !info.IsDir():
		issues = append(issues, Issue{
			Key:         cfg.ShimDir,
			Description: "shim directory is not a directory",
			Category:    CategoryConfig,
		})
	}

	return issues
}

// checkFiles parses each file independently so that every broken file is
// reported, not just the first one.
func checkFiles(files []string) ([]shim.Entry, []Issue) {
	var entries []shim.Entry
	var issues []Issue

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			issues = append(issues, Issue{
				Key:         path,
				Description: fmt.Sprintf("unable to open: %v", err),
				Category:    CategoryShims,
			})
			continue
		}
		shims, err := loader.Parse(data)
		if err != nil {
			issues = append(issues, Issue{
				Key:         path,
				Description: err.Error(),
				Category:    CategoryShims,
			})
			continue
		}
		src := shim.Source{Path: path, Fingerprint: loader.Fingerprint(data)}
		for _, s := range shims {
			entries = append(entries, shim.Entry{Shim: s, Source: src})
		}
	}

	return entries, issues
}

// checkShadowed reports programs defined more than once. The last
// definition wins when loading.
func checkShadowed(entries []shim.Entry) []Issue {
	var issues []Issue
	seen := make(map[string]string, len(entries))

	for _, e := range entries {
		program := e.Shim.Program()
		if prev, ok := seen[program]; ok {
			issues = append(issues, Issue{
				Key:         program,
				Description: fmt.Sprintf("defined in %s is shadowed by %s", prev, e.Source.Path),
				Category:    CategoryShims,
			})
		}
		seen[program] = e.Source.Path
	}

	return issues
}

// checkPath resolves every shimmed program and hook command.
func checkPath(reg *shim.Registry, r Resolver, stats *Stats) []Issue {
	var issues []Issue
	resolved := make(map[string]bool)

	for _, program := range reg.Programs() {
		if _, err := r.LookPath(program); err != nil {
			issues = append(issues, Issue{
				Key:         program,
				Description: "program not found on PATH",
				Category:    CategoryPath,
			})
		} else {
			stats.ProgramsFound++
		}

		s, _ := reg.Lookup(program)
		for _, phase := range shim.Phases {
			for i, h := range s.Hooks(phase) {
				for _, fields := range hooks.SplitLines(h.Run) {
					// The command itself comes from the arguments.
					if strings.Contains(fields[0], "$@") || strings.Contains(fields[0], "${@}") {
						continue
					}
					name := fields[0]
					found, checked := resolved[name]
					if !checked {
						_, err := r.LookPath(name)
						found = err == nil
						resolved[name] = found
						stats.Commands++
						if found {
							stats.CommandsFound++
						}
					}
					if !found {
						issues = append(issues, Issue{
							Key:         fmt.Sprintf("%s %s[%d]", program, phase, i),
							Description: fmt.Sprintf("command %q not found on PATH", name),
							Category:    CategoryPath,
						})
					}
				}
			}
		}
	}

	return issues
}
