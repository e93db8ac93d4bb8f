package styles

// Status symbols used in check output.
const (
	SymbolOK     = "✓"
	SymbolWarn   = "⚠"
	SymbolFail   = "✗"
	SymbolBullet = "•"
)

// OK renders a success line prefix.
func OK(text string) string {
	return SuccessStyle.Render(SymbolOK) + " " + text
}

// Warn renders a warning line prefix.
func Warn(text string) string {
	return WarningStyle.Render(SymbolWarn) + " " + text
}

// Fail renders a failure line prefix.
func Fail(text string) string {
	return ErrorStyle.Render(SymbolFail) + " " + text
}
