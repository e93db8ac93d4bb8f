package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/raphi011/shim/internal/dispatch"
	"github.com/raphi011/shim/internal/output"
	"github.com/raphi011/shim/internal/ui/styles"
)

// Version information - set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	styles.Apply(themeFor(output.New(os.Stdout)))

	if err := Execute(os.Args[1:]); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// reportError prints a single-line error and returns the process exit code.
// A shimmed program that exits non-zero already spoke for itself on its own
// streams, so only its exit code is passed on.
func reportError(w io.Writer, err error) int {
	if !errors.Is(err, dispatch.ErrExitNonZero) {
		msg := strings.Join(strings.Fields(err.Error()), " ")
		if msg == "" {
			msg = "error"
		}
		fmt.Fprintln(w, "shim: "+msg)
	}
	return exitCode(err)
}

// exitCode returns the child's exit code carried by err, or 1.
func exitCode(err error) int {
	var ec exitCoder
	if errors.As(err, &ec) {
		if c := ec.ExitCode(); c != 0 {
			return c
		}
	}
	return 1
}

// themeFor returns the theme for output written through p. Colors are only
// used on a terminal.
func themeFor(p *output.Printer) styles.Theme {
	if !p.IsTerminal() {
		return styles.NoneTheme
	}
	return styles.DefaultTheme
}

// versionString returns the version string.
func versionString() string {
	return fmt.Sprintf("shim %s (%s, %s, %s)", version, commit[:min(7, len(commit))], date, runtime.Version())
}
