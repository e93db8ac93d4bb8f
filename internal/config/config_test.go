package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.MissingShim != DefaultMissingShim {
		t.Errorf("expected missing_shim %q, got %q", DefaultMissingShim, cfg.MissingShim)
	}
	if cfg.ShimDir != "" {
		t.Errorf("expected empty shim_dir, got %q", cfg.ShimDir)
	}
}

func TestDir(t *testing.T) {
	// Cannot use t.Parallel() - t.Setenv mutates process env
	t.Run("SHIM_CONFIG_DIR wins", func(t *testing.T) {
		t.Setenv("SHIM_CONFIG_DIR", "/custom/shim")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		got, err := Dir()
		if err != nil {
			t.Fatalf("Dir() error: %v", err)
		}
		if got != "/custom/shim" {
			t.Errorf("Dir() = %q, want %q", got, "/custom/shim")
		}
	})

	t.Run("XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("SHIM_CONFIG_DIR", "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		got, err := Dir()
		if err != nil {
			t.Fatalf("Dir() error: %v", err)
		}
		if want := filepath.Join("/xdg", "shim"); got != want {
			t.Errorf("Dir() = %q, want %q", got, want)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("SHIM_CONFIG_DIR", "")
		t.Setenv("XDG_CONFIG_HOME", "")
		got, err := Dir()
		if err != nil {
			t.Fatalf("Dir() error: %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".config", "shim"); got != want {
			t.Errorf("Dir() = %q, want %q", got, want)
		}
	})
}

func TestLoad(t *testing.T) {
	// Cannot use t.Parallel() - t.Setenv mutates process env
	t.Run("missing file yields defaults", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SHIM_CONFIG_DIR", dir)
		t.Setenv("SHIM_DIR", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Path != "" {
			t.Errorf("Path = %q, want empty", cfg.Path)
		}
		if want := filepath.Join(dir, "shims"); cfg.ShimDir != want {
			t.Errorf("ShimDir = %q, want %q", cfg.ShimDir, want)
		}
		if cfg.MissingShim != "error" {
			t.Errorf("MissingShim = %q, want %q", cfg.MissingShim, "error")
		}
	})

	t.Run("file settings", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SHIM_CONFIG_DIR", dir)
		t.Setenv("SHIM_DIR", "")
		writeConfig(t, dir, "shim_dir = \"/opt/shims\"\nmissing_shim = \"passthrough\"\nshell = \"zsh\"\n")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.ShimDir != "/opt/shims" {
			t.Errorf("ShimDir = %q, want %q", cfg.ShimDir, "/opt/shims")
		}
		if cfg.MissingShim != "passthrough" {
			t.Errorf("MissingShim = %q, want %q", cfg.MissingShim, "passthrough")
		}
		if cfg.Shell != "zsh" {
			t.Errorf("Shell = %q, want %q", cfg.Shell, "zsh")
		}
		if cfg.Path != filepath.Join(dir, FileName) {
			t.Errorf("Path = %q, want %q", cfg.Path, filepath.Join(dir, FileName))
		}
	})

	t.Run("SHIM_DIR overrides shim_dir", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SHIM_CONFIG_DIR", dir)
		t.Setenv("SHIM_DIR", "/env/shims")
		writeConfig(t, dir, "shim_dir = \"/opt/shims\"\n")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.ShimDir != "/env/shims" {
			t.Errorf("ShimDir = %q, want %q", cfg.ShimDir, "/env/shims")
		}
	})

	t.Run("tilde is expanded", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SHIM_CONFIG_DIR", dir)
		t.Setenv("SHIM_DIR", "")
		writeConfig(t, dir, "shim_dir = \"~/shims\"\n")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, "shims"); cfg.ShimDir != want {
			t.Errorf("ShimDir = %q, want %q", cfg.ShimDir, want)
		}
	})

	t.Run("unknown keys are recorded", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SHIM_CONFIG_DIR", dir)
		t.Setenv("SHIM_DIR", "")
		writeConfig(t, dir, "shel = \"bash\"\n")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if len(cfg.Unknown) != 1 || cfg.Unknown[0] != "shel" {
			t.Errorf("Unknown = %v, want [shel]", cfg.Unknown)
		}
	})
}

func TestLoadErrors(t *testing.T) {
	// Cannot use t.Parallel() - t.Setenv mutates process env
	tests := []struct {
		name    string
		content string
		env     string
		wantErr string
	}{
		{"invalid toml", "shim_dir = [", "", "failed to parse config file"},
		{"relative shim_dir", "shim_dir = \"shims\"\n", "", "shim_dir must be absolute"},
		{"bad missing_shim", "missing_shim = \"ignore\"\n", "", `invalid missing_shim "ignore"`},
		{"bad shell", "shell = \"tcsh\"\n", "", `invalid shell "tcsh"`},
		{"relative SHIM_DIR", "", "rel/shims", "SHIM_DIR must be absolute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("SHIM_CONFIG_DIR", dir)
			t.Setenv("SHIM_DIR", tt.env)
			writeConfig(t, dir, tt.content)

			cfg, err := Load()
			if err == nil {
				t.Fatalf("Load() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want substring %q", err, tt.wantErr)
			}
			if cfg.MissingShim != DefaultMissingShim {
				t.Errorf("Load() should return defaults on error, got %+v", cfg)
			}
		})
	}
}

func TestInit(t *testing.T) {
	// Cannot use t.Parallel() - t.Setenv mutates process env
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv("SHIM_CONFIG_DIR", dir)

	path, err := Init(false)
	if err != nil {
		t.Fatalf("Init(false) error: %v", err)
	}
	if path != filepath.Join(dir, FileName) {
		t.Errorf("Init path = %q, want %q", path, filepath.Join(dir, FileName))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(data) != DefaultConfig() {
		t.Error("written config does not match DefaultConfig()")
	}

	if _, err := Init(false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Init(false) on existing file error = %v, want already exists", err)
	}
	if _, err := Init(true); err != nil {
		t.Errorf("Init(true) error: %v", err)
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty", "", false},
		{"absolute", "/opt/shims", false},
		{"tilde", "~/shims", false},
		{"dot", ".", true},
		{"relative", "shims", true},
		{"parent", "../shims", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePath(tt.path, "shim_dir")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEnum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		field   string
		allowed []string
		wantErr bool
	}{
		{"empty value is ok", "", "test", []string{"a", "b"}, false},
		{"valid value", "a", "test", []string{"a", "b"}, false},
		{"invalid value", "c", "test", []string{"a", "b"}, true},
		{"case sensitive", "A", "test", []string{"a", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateEnum(tt.value, tt.field, tt.allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEnum(%q, %q, %v) error = %v, wantErr %v", tt.value, tt.field, tt.allowed, err, tt.wantErr)
			}
		})
	}
}

func TestValidateShell(t *testing.T) {
	t.Parallel()

	for _, shell := range ValidShells {
		if err := ValidateShell(shell); err != nil {
			t.Errorf("ValidateShell(%q) error = %v", shell, err)
		}
	}
	if err := ValidateShell("powershell"); err == nil {
		t.Error("ValidateShell(powershell) error = nil, want error")
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []string
		want string
	}{
		{"single option", []string{"a"}, `"a"`},
		{"two options", []string{"a", "b"}, `"a" or "b"`},
		{"three options", []string{"a", "b", "c"}, `"a", "b", or "c"`},
		{"four options", []string{"a", "b", "c", "d"}, `"a", "b", "c", or "d"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := formatOptions(tt.opts)
			if got != tt.want {
				t.Errorf("formatOptions(%v) = %q, want %q", tt.opts, got, tt.want)
			}
		})
	}
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	t.Parallel()

	var cfg Config
	md, err := toml.Decode(DefaultConfig(), &cfg)
	if err != nil {
		t.Fatalf("DefaultConfig() produces invalid TOML: %v\nContent:\n%s", err, DefaultConfig())
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		t.Errorf("DefaultConfig() has unknown keys: %v", keys)
	}
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Shell: "fish"}
		ctx := WithConfig(context.Background(), cfg)
		got := FromContext(ctx)
		if got != cfg {
			t.Error("FromContext did not return the stored config")
		}
	})

	t.Run("nil when not set", func(t *testing.T) {
		t.Parallel()
		if got := FromContext(context.Background()); got != nil {
			t.Errorf("FromContext on empty context = %v, want nil", got)
		}
	})
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
