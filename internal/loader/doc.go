// Package loader reads shim definitions from YAML files into a registry.
//
// A shim file is either a list of shims or a mapping with a "shims" list:
//
//	shims:
//	  - program: git
//	    env: ["GIT_PAGER=cat"]
//	    pre:
//	      - on_subcommand: push
//	        run: make lint
//	    post:
//	      - on_subcommand: push
//	        run: echo pushed $@
//
// Files are applied in order and a later definition of the same program
// replaces the earlier one entirely. A file that cannot be opened is
// skipped with a warning; a file that cannot be parsed fails the load.
package loader
