package runner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProgramNotFound is returned when an executable cannot be resolved
	// on the system search path.
	ErrProgramNotFound = errors.New("program not found")
	// ErrSpawnFailed is returned when the operating system refused to start
	// a child process.
	ErrSpawnFailed = errors.New("spawn failed")
	// ErrStreamReadFailed is returned when draining a child's output failed.
	ErrStreamReadFailed = errors.New("stream read failed")
)

// NotFoundError reports an executable missing from PATH.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unable to find %q on the system path", e.Name)
}

func (e *NotFoundError) Unwrap() []error { return causes(ErrProgramNotFound, e.Err) }

// SpawnError reports a child process that could not be started or waited on.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to run '%s': %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() []error { return causes(ErrSpawnFailed, e.Err) }

// StreamError reports an I/O failure while relaying a child's output.
type StreamError struct {
	Command string
	Stream  string // "stdout" or "stderr"
	Err     error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("'%s': %s: %v", e.Command, e.Stream, e.Err)
}

func (e *StreamError) Unwrap() []error { return causes(ErrStreamReadFailed, e.Err) }

// CommandLine formats an executable and its arguments for messages.
func CommandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func causes(kind, err error) []error {
	if err == nil {
		return []error{kind}
	}
	return []error{kind, err}
}
