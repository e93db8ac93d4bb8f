package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/shim/internal/runner"
)

var (
	// ErrNoShimRegistered is returned when no shim matches the invoked program.
	ErrNoShimRegistered = errors.New("no shim registered")
	// ErrExitNonZero is returned when the original program exited non-zero.
	ErrExitNonZero = errors.New("program exited non-zero")
)

// NoShimError reports an invocation of a program without a shim.
type NoShimError struct {
	Program     string
	Suggestions []string
}

func (e *NoShimError) Error() string {
	msg := fmt.Sprintf("no registered shim for '%s'", e.Program)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NoShimError) Unwrap() error { return ErrNoShimRegistered }

// ExitError reports the original program exiting unsuccessfully.
type ExitError struct {
	Command string
	Outcome runner.Outcome
}

func (e *ExitError) Error() string {
	if e.Outcome.Signaled {
		return fmt.Sprintf("'%s' was terminated (%s)", e.Command, e.Outcome)
	}
	return fmt.Sprintf("'%s' returned non-zero exit code %d", e.Command, e.Outcome.ExitCode)
}

func (e *ExitError) Unwrap() error { return ErrExitNonZero }

// ExitCode returns the program's exit code, or 1 if it was terminated by a signal.
func (e *ExitError) ExitCode() int {
	if e.Outcome.ExitCode > 0 {
		return e.Outcome.ExitCode
	}
	return 1
}

// PhaseError ties a failure to the dispatch state it happened in.
type PhaseError struct {
	State State
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.State.describe(), e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// ExitCode returns the exit code of the underlying failure, defaulting to 1.
func (e *PhaseError) ExitCode() int {
	var ec interface{ ExitCode() int }
	if errors.As(e.Err, &ec) {
		return ec.ExitCode()
	}
	return 1
}
