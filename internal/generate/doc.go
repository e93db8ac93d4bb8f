// Package generate renders shell wrapper functions for registered shims.
//
// Each wrapper shadows the program name in an interactive shell and calls
// back into "shim exec", which resolves the real program on PATH. Because
// shell functions are not on PATH, the wrapper never recurses into itself.
//
// Supported shells are bash, zsh, and fish:
//
//	eval "$(shim generate --shell bash)"   # ~/.bashrc
//	eval "$(shim generate --shell zsh)"    # ~/.zshrc
//	shim generate --shell fish | source    # ~/.config/fish/config.fish
package generate
