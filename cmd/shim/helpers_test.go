package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/raphi011/shim/internal/config"
	"github.com/raphi011/shim/internal/log"
	"github.com/raphi011/shim/internal/output"
)

// testContext returns a context with a quiet logger, a printer writing to
// the returned buffer, cfg, and the given --file values.
func testContext(t *testing.T, cfg *config.Config, files ...string) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, &buf)
	ctx = config.WithConfig(ctx, cfg)
	ctx = withState(ctx, &cliState{shimFiles: files})
	return ctx, &buf
}

// shimDir writes the given shim files to a new directory and returns a
// config pointing at it.
func shimDir(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return &config.Config{ShimDir: dir, MissingShim: config.DefaultMissingShim}
}

func requirePOSIXShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell tests require POSIX shell")
	}
}

// fakeProgram installs an executable shell script named name on PATH.
func fakeProgram(t *testing.T, name, script string) {
	t.Helper()
	bin := t.TempDir()
	if err := os.WriteFile(filepath.Join(bin, name), []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	t.Setenv("PATH", bin+string(filepath.ListSeparator)+os.Getenv("PATH"))
}
