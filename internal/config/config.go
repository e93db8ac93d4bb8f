package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/shim/internal/storage"
)

// FileName is the name of the settings file inside the config directory.
const FileName = "config.toml"

// Config holds the shim settings
type Config struct {
	ShimDir     string `toml:"shim_dir"`
	MissingShim string `toml:"missing_shim"` // "error" or "passthrough"
	Shell       string `toml:"shell"`        // default shell for generate

	// Path is the file the settings were read from (empty for defaults).
	Path string `toml:"-"`
	// Unknown lists keys present in the file that no setting consumed.
	Unknown []string `toml:"-"`
}

// DefaultMissingShim is the policy used when missing_shim is not set
const DefaultMissingShim = "error"

// Default returns the default configuration
func Default() Config {
	return Config{
		MissingShim: DefaultMissingShim,
	}
}

// Dir returns the directory holding config.toml and, by default, the shims.
func Dir() (string, error) {
	if dir := os.Getenv("SHIM_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "shim"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "shim"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Load reads config from the config directory.
// Returns Default() if the file doesn't exist (no error).
// Returns error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path. A missing file yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config file: %w", err)
		}
		for _, key := range md.Undecoded() {
			cfg.Unknown = append(cfg.Unknown, key.String())
		}
		cfg.Path = path
	}

	if cfg.MissingShim == "" {
		cfg.MissingShim = DefaultMissingShim
	}
	if err := validateEnum(cfg.MissingShim, "missing_shim", ValidMissingShimPolicies); err != nil {
		return Default(), err
	}
	if err := validateEnum(cfg.Shell, "shell", ValidShells); err != nil {
		return Default(), err
	}

	if err := ValidatePath(cfg.ShimDir, "shim_dir"); err != nil {
		return Default(), err
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Default(), err
	}

	// Expand ~ in shim_dir (shell doesn't expand in config files)
	expanded, err := expandPath(cfg.ShimDir)
	if err != nil {
		return Default(), fmt.Errorf("expand shim_dir: %w", err)
	}
	cfg.ShimDir = expanded

	if cfg.ShimDir == "" {
		dir, err := Dir()
		if err != nil {
			return Default(), fmt.Errorf("resolve shim_dir: %w", err)
		}
		cfg.ShimDir = filepath.Join(dir, "shims")
	}

	return cfg, nil
}

// applyEnvOverrides applies SHIM_DIR on top of the file settings.
func applyEnvOverrides(cfg *Config) error {
	if dir := os.Getenv("SHIM_DIR"); dir != "" {
		if err := ValidatePath(dir, "SHIM_DIR"); err != nil {
			return err
		}
		cfg.ShimDir = dir
	}
	return nil
}

const defaultConfig = `# shim configuration

# Directory containing shim files (*.yaml or *.yml), loaded in name order.
# Must be an absolute path or start with ~ (no relative paths like "." or "..")
# The SHIM_DIR environment variable takes precedence.
# Default: <config dir>/shims
# shim_dir = "~/.config/shim/shims"

# What "shim exec" does when the invoked program has no shim:
#   "error"       - fail with "no registered shim" (default)
#   "passthrough" - run the program unchanged
missing_shim = "error"

# Default shell for "shim generate" (bash, zsh, or fish)
# shell = "bash"

# Shim files look like this:
#
# shims:
#   - program: git
#     env: ["GIT_PAGER=cat"]
#     pre:
#       - on_subcommand: push
#         run: make test
#     post:
#       - on_subcommand: push
#         run: echo pushed $@
`

// DefaultConfig returns the default configuration template content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file in the config directory.
// If force is true, overwrites existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := storage.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}

type ctxKey struct{}

// WithConfig returns a new context with the config stored in it.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config from context.
// Returns nil if no config is stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return nil
}
