package main

import (
	"context"

	"github.com/raphi011/shim/internal/config"
	"github.com/raphi011/shim/internal/loader"
	"github.com/raphi011/shim/internal/log"
	"github.com/raphi011/shim/internal/shim"
)

// cliState carries what the root command learned before a subcommand runs.
type cliState struct {
	shimFiles []string // from --file
	configErr error    // config.toml load error, already reported as a warning
}

type stateKey struct{}

func withState(ctx context.Context, s *cliState) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}

func stateFromContext(ctx context.Context) *cliState {
	if s, ok := ctx.Value(stateKey{}).(*cliState); ok {
		return s
	}
	return &cliState{}
}

// configFromContext returns the config from ctx, or the defaults.
func configFromContext(ctx context.Context) *config.Config {
	if cfg := config.FromContext(ctx); cfg != nil {
		return cfg
	}
	cfg := config.Default()
	return &cfg
}

// shimFiles lists the files to load: the shim directory first, then --file.
func shimFiles(ctx context.Context) ([]string, error) {
	cfg := configFromContext(ctx)
	return loader.Files(cfg.ShimDir, stateFromContext(ctx).shimFiles)
}

// loadRegistry builds the shim registry for this invocation.
func loadRegistry(ctx context.Context) (*shim.Registry, error) {
	files, err := shimFiles(ctx)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debug("loading shims", "dir", configFromContext(ctx).ShimDir, "files", len(files))
	return loader.Load(ctx, files)
}
