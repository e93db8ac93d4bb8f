// Package dispatch drives one intercepted invocation through its shim.
//
// For an invocation of program with args, the dispatcher resolves program
// on PATH, looks up the shim by the resolved base name and runs, strictly
// in sequence:
//
//  1. matching pre-hooks
//  2. matching override-hooks, or the original program when none match
//  3. matching post-hooks
//
// A hook matches when its on_subcommand equals args[0], or when it has no
// on_subcommand and args is empty. The first failure in any phase ends the
// dispatch; hooks that already ran are not undone.
package dispatch
