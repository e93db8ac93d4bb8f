package hooks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/shim/internal/log"
	"github.com/raphi011/shim/internal/runner"
)

// ErrHookFailed is matched by every HookFailure.
var ErrHookFailed = errors.New("hook failed")

// HookFailure reports a hook line that did not exit successfully.
type HookFailure struct {
	Line    string
	Outcome runner.Outcome
}

func (e *HookFailure) Error() string {
	if e.Outcome.Signaled {
		return fmt.Sprintf("'%s' was terminated (%s)", e.Line, e.Outcome)
	}
	return fmt.Sprintf("'%s' returned non-zero exit code %d", e.Line, e.Outcome.ExitCode)
}

func (e *HookFailure) Unwrap() error { return ErrHookFailed }

// ExitCode returns the exit code of the failed line, or 1 if it was
// terminated by a signal.
func (e *HookFailure) ExitCode() int {
	if e.Outcome.ExitCode > 0 {
		return e.Outcome.ExitCode
	}
	return 1
}

// ProcessRunner runs a single process to completion.
type ProcessRunner interface {
	Run(ctx context.Context, executable string, args []string, env []string) (runner.Outcome, error)
}

// Executor runs hook bodies line by line.
type Executor struct {
	runner ProcessRunner
}

// NewExecutor creates an executor spawning processes through r.
func NewExecutor(r ProcessRunner) *Executor {
	return &Executor{runner: r}
}

// Execute substitutes $@ in body with args and runs the resulting lines in
// order with the extra KEY=VALUE assignments in env. It stops at the first
// line that fails. ctx is checked before each line; a running line is never
// interrupted.
func (e *Executor) Execute(ctx context.Context, body string, args []string, env []string) error {
	l := log.FromContext(ctx)
	script := SubstituteArgs(body, args)

	for _, raw := range strings.Split(script, "\n") {
		fields, comment := parseLine(raw)
		if comment {
			l.Debug("skipping comment", "line", strings.TrimSpace(raw))
			continue
		}
		if len(fields) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.Join(fields, " ")
		l.Debug("running hook line", "line", line)

		outcome, err := e.runner.Run(ctx, fields[0], fields[1:], env)
		if err != nil {
			return fmt.Errorf("hook line '%s': %w", line, err)
		}
		if !outcome.Success {
			return &HookFailure{Line: line, Outcome: outcome}
		}
	}
	return nil
}

// SubstituteArgs replaces every ${@} and $@ in body with args joined by
// single spaces. Arguments are inserted verbatim.
func SubstituteArgs(body string, args []string) string {
	if !strings.Contains(body, "$@") && !strings.Contains(body, "${@}") {
		return body
	}
	joined := strings.Join(args, " ")
	// One pass, so a "$@" inside an argument is left alone.
	return strings.NewReplacer("${@}", joined, "$@", joined).Replace(body)
}

// SplitLines splits a hook body into command lines, each as a program
// followed by its arguments. Empty lines and lines starting with # are
// dropped.
func SplitLines(body string) [][]string {
	var lines [][]string
	for _, raw := range strings.Split(body, "\n") {
		fields, comment := parseLine(raw)
		if comment || len(fields) == 0 {
			continue
		}
		lines = append(lines, fields)
	}
	return lines
}

func parseLine(raw string) (fields []string, comment bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "#") {
		return nil, true
	}
	return strings.Fields(trimmed), false
}
