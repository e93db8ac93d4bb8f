// Package runner spawns child processes and relays their output line by line.
//
// stdout and stderr of the child are drained concurrently and merged into a
// single sink, so a child writing to both descriptors can never block on a
// full pipe. Lines are written whole; their relative order across the two
// streams follows arrival order.
package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/shim/internal/log"
)

// lineBuffer bounds the number of lines in flight between the readers and
// the sink.
const lineBuffer = 64

type stream string

const (
	streamStdout stream = "stdout"
	streamStderr stream = "stderr"
)

type line struct {
	stream stream
	text   string
}

// Outcome is the result of one process execution.
type Outcome struct {
	ExitCode int    // -1 when the process was terminated by a signal
	Signaled bool   // true when the process did not exit on its own
	Success  bool   // true for exit code 0
	State    string // process state as reported by the OS, e.g. "exit status 1"
}

func (o Outcome) String() string {
	if o.State != "" {
		return o.State
	}
	if o.Success {
		return "exit status 0"
	}
	return "failed"
}

// Runner runs processes with inherited stdin and live output relaying.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Dir    string // working directory; empty uses the current one
}

// New creates a runner relaying child output to stdout and stderr.
func New(stdout, stderr io.Writer) *Runner {
	return &Runner{Stdout: stdout, Stderr: stderr, Stdin: os.Stdin}
}

// LookPath resolves name on the system search path.
func (r *Runner) LookPath(name string) (string, error) {
	if name == "" {
		return "", &NotFoundError{Name: name, Err: exec.ErrNotFound}
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", &NotFoundError{Name: name, Err: err}
	}
	return path, nil
}

// Run resolves executable, spawns it with args and the extra KEY=VALUE
// assignments in env, and blocks until it exited and all of its output
// was relayed. A non-zero exit is reported through the Outcome, not as an
// error. A spawned process is never cancelled; ctx is only consulted
// before spawning.
func (r *Runner) Run(ctx context.Context, executable string, args []string, env []string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	path, err := r.LookPath(executable)
	if err != nil {
		return Outcome{}, err
	}

	cmdLine := CommandLine(executable, args)
	cmd := exec.Command(path, args...)
	cmd.Args[0] = executable
	cmd.Dir = r.Dir
	cmd.Stdin = r.Stdin
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Outcome{}, &SpawnError{Command: cmdLine, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Outcome{}, &SpawnError{Command: cmdLine, Err: err}
	}

	done := log.FromContext(ctx).Command(r.Dir, executable, args...)
	start := time.Now()

	if err := cmd.Start(); err != nil {
		return Outcome{}, &SpawnError{Command: cmdLine, Err: err}
	}

	lines := make(chan line, lineBuffer)
	sinkErr := make(chan error, 1)
	go func() { sinkErr <- r.sink(cmdLine, lines) }()

	var g errgroup.Group
	g.Go(func() error { return drain(cmdLine, stdout, streamStdout, lines) })
	g.Go(func() error { return drain(cmdLine, stderr, streamStderr, lines) })
	drainErr := g.Wait()
	close(lines)
	writeErr := <-sinkErr

	waitErr := cmd.Wait()
	done(time.Since(start))

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return Outcome{}, &SpawnError{Command: cmdLine, Err: waitErr}
		}
	}

	outcome := outcomeOf(cmd.ProcessState)
	if drainErr != nil {
		return outcome, drainErr
	}
	if writeErr != nil {
		return outcome, writeErr
	}
	return outcome, nil
}

// drain reads r line by line and sends each line to out. A final line
// without a trailing newline is terminated before sending. After a read
// error the rest of r is discarded, so the child never blocks on a full
// pipe while the other stream is still being read.
func drain(cmdLine string, r io.Reader, s stream, out chan<- line) error {
	br := bufio.NewReader(r)
	for {
		text, err := br.ReadString('\n')
		if text != "" {
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			out <- line{stream: s, text: text}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			_, _ = io.Copy(io.Discard, r)
			return &StreamError{Command: cmdLine, Stream: string(s), Err: err}
		}
	}
}

// sink writes every line to the writer of its stream. After a write error
// it keeps consuming so the readers never block.
func (r *Runner) sink(cmdLine string, lines <-chan line) error {
	var firstErr error
	for l := range lines {
		if firstErr != nil {
			continue
		}
		w := r.Stdout
		if l.stream == streamStderr {
			w = r.Stderr
		}
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, l.text); err != nil {
			firstErr = &StreamError{Command: cmdLine, Stream: string(l.stream), Err: err}
		}
	}
	return firstErr
}

func outcomeOf(ps *os.ProcessState) Outcome {
	if ps == nil {
		return Outcome{ExitCode: -1}
	}
	code := ps.ExitCode()
	return Outcome{
		ExitCode: code,
		Signaled: code == -1,
		Success:  ps.Success(),
		State:    ps.String(),
	}
}
