// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as tables.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/shim/internal/shim"
	"github.com/raphi011/shim/internal/ui/styles"
)

// DefaultHookLabel marks hooks without on_subcommand in the ON column.
const DefaultHookLabel = "(no args)"

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// ShimTableHeaders returns the column headers for the shim table.
func ShimTableHeaders(withSource bool) []string {
	headers := []string{"PROGRAM", "PHASE", "ON", "RUN"}
	if withSource {
		headers = append(headers, "SOURCE")
	}
	return headers
}

// ShimTableRows returns one row per hook of each listed program, in phase
// order. A shim without hooks still gets a row so it shows up in the table.
func ShimTableRows(reg *shim.Registry, programs []string, withSource bool) [][]string {
	var rows [][]string
	for _, program := range programs {
		s, ok := reg.Lookup(program)
		if !ok {
			continue
		}
		source := ""
		if withSource {
			src, _ := reg.Source(program)
			source = src.Path
		}

		name := styles.PrimaryStyle.Render(program)
		if s.HookCount() == 0 {
			rows = append(rows, shimRow(name, styles.MutedStyle.Render("-"), "", "", source, withSource))
			continue
		}
		for _, phase := range shim.Phases {
			for _, h := range s.Hooks(phase) {
				rows = append(rows, shimRow(name, styles.PhaseStyle(phase).Render(string(phase)), onLabel(h), summarize(h.Run), source, withSource))
			}
		}
	}
	return rows
}

func shimRow(program, phase, on, run, source string, withSource bool) []string {
	row := []string{program, phase, on, run}
	if withSource {
		row = append(row, source)
	}
	return row
}

func onLabel(h shim.SubcommandHook) string {
	if h.OnSubcommand == nil {
		return DefaultHookLabel
	}
	return h.Subcommand()
}

// summarize joins the non-blank lines of a hook body with "; ".
func summarize(body string) string {
	var lines []string
	for line := range strings.SplitSeq(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "; ")
}
