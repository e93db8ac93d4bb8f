// Package config handles loading and validation of shim's own settings.
//
// Settings are read from config.toml in the config directory with an
// environment variable override for the shim directory.
//
// # Config Directory (highest priority first)
//
//   - SHIM_CONFIG_DIR env var
//   - $XDG_CONFIG_HOME/shim
//   - ~/.config/shim
//
// # Key Settings
//
//   - shim_dir: Directory scanned for *.yaml / *.yml shim files
//     (default: <config dir>/shims, overridden by SHIM_DIR)
//   - missing_shim: "error" or "passthrough" when an invoked program has no shim
//   - shell: Default shell for "shim generate" ("bash", "zsh", or "fish")
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
