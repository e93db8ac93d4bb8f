package dispatch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/raphi011/shim/internal/hooks"
	"github.com/raphi011/shim/internal/log"
	"github.com/raphi011/shim/internal/runner"
	"github.com/raphi011/shim/internal/shim"
)

// State is a step of the dispatch state machine.
type State string

const (
	StateIdle     State = "idle"
	StatePre      State = "pre"
	StateOverride State = "override"
	StateOriginal State = "original"
	StatePost     State = "post"
	StateDone     State = "done"
	StateFailed   State = "failed"
)

func (s State) describe() string {
	switch s {
	case StatePre:
		return "pre-hook"
	case StateOverride:
		return "override hook"
	case StateOriginal:
		return "program"
	case StatePost:
		return "post-hook"
	}
	return string(s)
}

// MissingShimPolicy decides what happens when no shim matches a program.
type MissingShimPolicy string

const (
	// MissingShimError reports ErrNoShimRegistered and runs nothing.
	MissingShimError MissingShimPolicy = "error"
	// MissingShimPassthrough runs the bare program.
	MissingShimPassthrough MissingShimPolicy = "passthrough"
)

// Invocation is the command line the user typed.
type Invocation struct {
	Program string
	Args    []string
}

// FirstArg returns the subcommand token, or "" when there are no arguments.
func (i Invocation) FirstArg() string {
	if len(i.Args) == 0 {
		return ""
	}
	return i.Args[0]
}

// Runner spawns processes and resolves executables on PATH.
type Runner interface {
	hooks.ProcessRunner
	LookPath(name string) (string, error)
}

// Dispatcher runs the hooks of a shim around the original program.
type Dispatcher struct {
	runner   Runner
	executor *hooks.Executor
	missing  MissingShimPolicy
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMissingShimPolicy sets the behaviour for programs without a shim.
func WithMissingShimPolicy(p MissingShimPolicy) Option {
	return func(d *Dispatcher) {
		if p != "" {
			d.missing = p
		}
	}
}

// New creates a dispatcher spawning processes through r.
func New(r Runner, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		runner:   r,
		executor: hooks.NewExecutor(r),
		missing:  MissingShimError,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs program with args through the shim registered for it in reg.
// reg is only read.
func (d *Dispatcher) Dispatch(ctx context.Context, reg *shim.Registry, program string, args []string) error {
	l := log.FromContext(ctx)
	inv := Invocation{Program: program, Args: args}

	resolved, err := d.runner.LookPath(program)
	if err != nil {
		return err
	}
	name := filepath.Base(resolved)
	l.Debug("resolved program", "program", program, "path", resolved)

	s, ok := reg.Lookup(name)
	if !ok {
		if d.missing == MissingShimPassthrough {
			l.Debug("no shim registered, passing through", "program", name)
			if err := d.runOriginal(ctx, resolved, inv, nil); err != nil {
				return &PhaseError{State: StateOriginal, Err: err}
			}
			return nil
		}
		return &NoShimError{Program: name, Suggestions: reg.Suggest(name)}
	}

	first := inv.FirstArg()
	l.Debug("found shim", "program", name, "subcommand", first)

	state := StateIdle
	transition := func(next State) {
		l.Debug("dispatch", "from", state, "to", next)
		state = next
	}
	fail := func(err error) error {
		failed := state
		transition(StateFailed)
		return &PhaseError{State: failed, Err: err}
	}

	transition(StatePre)
	if err := d.runHooks(ctx, s.Select(shim.PhasePre, first), s, inv); err != nil {
		return fail(err)
	}

	if overrides := s.Select(shim.PhaseOverride, first); len(overrides) > 0 {
		transition(StateOverride)
		if err := d.runHooks(ctx, overrides, s, inv); err != nil {
			return fail(err)
		}
	} else {
		transition(StateOriginal)
		if err := d.runOriginal(ctx, resolved, inv, s.Env()); err != nil {
			return fail(err)
		}
	}

	transition(StatePost)
	if err := d.runHooks(ctx, s.Select(shim.PhasePost, first), s, inv); err != nil {
		return fail(err)
	}

	transition(StateDone)
	return nil
}

// runHooks runs each hook body in order and stops at the first failure.
func (d *Dispatcher) runHooks(ctx context.Context, selected []shim.SubcommandHook, s *shim.Shim, inv Invocation) error {
	for _, h := range selected {
		env := hooks.MergeEnv(s.Env(), h.Env)
		if err := d.executor.Execute(ctx, h.Run, inv.Args, env); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) runOriginal(ctx context.Context, resolved string, inv Invocation, env []string) error {
	outcome, err := d.runner.Run(ctx, resolved, inv.Args, env)
	if err != nil {
		return fmt.Errorf("run %s: %w", inv.Program, err)
	}
	if !outcome.Success {
		return &ExitError{Command: runner.CommandLine(inv.Program, inv.Args), Outcome: outcome}
	}
	return nil
}
