// Package hooks executes hook bodies with argument substitution.
//
// A hook body is one or more command lines separated by newlines:
//
//	# comments are skipped
//	echo running $@
//	make lint
//
// Each line is split on whitespace into a program and its arguments and
// run directly, without a shell. There is no quoting: an argument
// containing spaces cannot be expressed.
//
// # Placeholder Substitution
//
// $@ (or ${@}) is replaced by the original arguments of the intercepted
// invocation joined with single spaces. Substitution happens before line
// splitting, so an argument containing whitespace becomes several
// arguments. No other placeholder is supported.
//
// # Fail-fast
//
// Lines run strictly in order. The first line that exits non-zero stops
// the body and is reported as a [HookFailure].
package hooks
