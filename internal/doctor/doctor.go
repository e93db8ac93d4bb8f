package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/raphi011/shim/internal/log"
	"github.com/raphi011/shim/internal/output"
	"github.com/raphi011/shim/internal/ui/styles"
)

// ErrIssuesFound is returned by Run when at least one issue was reported.
var ErrIssuesFound = errors.New("check found issues")

// Run performs all checks and prints a summary followed by the issues,
// grouped by category.
func Run(ctx context.Context, in Input, r Resolver) (Report, error) {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	l.Debug("checking", "files", len(in.Files))
	rep := Check(in, r)

	printSummary(out, rep.Stats)

	if len(rep.Issues) == 0 {
		out.Println("\n" + styles.OK("No issues found"))
		return rep, nil
	}

	out.Printf("\nFound %d issues:\n", len(rep.Issues))
	printIssuesByCategory(out, rep.Issues)

	return rep, fmt.Errorf("%w: %d", ErrIssuesFound, len(rep.Issues))
}

// printSummary prints what was checked successfully.
func printSummary(out *output.Printer, stats Stats) {
	out.Printf("  %s\n", styles.OK(fmt.Sprintf("%d shim files parsed", stats.Files)))
	out.Printf("  %s\n", styles.OK(fmt.Sprintf("%d shims registered", stats.Shims)))

	if missing := stats.Shims - stats.ProgramsFound; missing > 0 {
		out.Printf("  %s\n", styles.Warn(fmt.Sprintf("%d of %d programs not on PATH", missing, stats.Shims)))
	} else if stats.Shims > 0 {
		out.Printf("  %s\n", styles.OK(fmt.Sprintf("%d programs found on PATH", stats.ProgramsFound)))
	}

	if missing := stats.Commands - stats.CommandsFound; missing > 0 {
		out.Printf("  %s\n", styles.Warn(fmt.Sprintf("%d of %d hook commands not on PATH", missing, stats.Commands)))
	} else if stats.Commands > 0 {
		out.Printf("  %s\n", styles.OK(fmt.Sprintf("%d hook commands found on PATH", stats.CommandsFound)))
	}
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(out *output.Printer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryConfig: "Configuration issues",
		CategoryShims:  "Shim file issues",
		CategoryPath:   "PATH issues",
	}

	for _, cat := range []IssueCategory{CategoryConfig, CategoryShims, CategoryPath} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		out.Printf("\n%s:\n", styles.Bold.Render(categoryNames[cat]))
		for _, issue := range catIssues {
			out.Printf("  %s %s: %s\n", styles.SymbolBullet, issue.Key, issue.Description)
		}
	}
}
