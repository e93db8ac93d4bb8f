// Package shim defines the data model for intercepted programs.
//
// A [Shim] names one real program and owns three ordered hook lists:
// pre-hooks run before the program, override-hooks replace it, and
// post-hooks run after it. Each [SubcommandHook] may be scoped to the
// first argument of the invocation:
//
//	program: git
//	pre:
//	  - run: echo about to run git
//	post:
//	  - on_subcommand: push
//	    run: echo pushed $@
//
// A hook without on_subcommand only fires when git is invoked with no
// arguments at all.
//
// A [Registry] maps program base names to shims. It is built once by the
// loader package and never mutated afterwards.
package shim
