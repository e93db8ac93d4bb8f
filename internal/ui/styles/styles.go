// Package styles provides shared lipgloss styles for shim's terminal output.
//
// The CLI applies NoneTheme when stdout is not a terminal. Whatever ANSI
// remains is downsampled by the output printer (see internal/output).
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/shim/internal/shim"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // program names
	Accent  color.Color // override hooks
	Success color.Color // checkmarks, post hooks
	Error   color.Color // failures
	Muted   color.Color // default-hook markers, sources
	Info    color.Color // pre hooks
	Warning color.Color // issues
}

var (
	// DefaultTheme is the default color scheme
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Info:    lipgloss.Color("244"), // gray
		Warning: lipgloss.Color("214"), // orange
	}

	// NoneTheme renders without any colors (uses terminal defaults)
	// Formatting (bold/italic) is preserved
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

// Common styles, set by Apply.
var (
	Bold         = lipgloss.NewStyle().Bold(true)
	PrimaryStyle lipgloss.Style
	AccentStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	InfoStyle    lipgloss.Style
	WarningStyle lipgloss.Style
)

var currentTheme Theme

func init() {
	Apply(DefaultTheme)
}

// Current returns the active theme
func Current() Theme {
	return currentTheme
}

// Apply makes t the active theme and rebuilds the style variables.
func Apply(t Theme) {
	currentTheme = t

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	InfoStyle = lipgloss.NewStyle().Foreground(t.Info).Italic(true)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
}

// PhaseStyle returns the style used to render a hook phase.
func PhaseStyle(p shim.Phase) lipgloss.Style {
	switch p {
	case shim.PhasePre:
		return InfoStyle
	case shim.PhaseOverride:
		return AccentStyle
	case shim.PhasePost:
		return SuccessStyle
	default:
		return MutedStyle
	}
}
