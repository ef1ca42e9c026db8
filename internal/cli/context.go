package cli

import (
	"context"

	"github.com/thenoetrevino/todometer/internal/app"
	"github.com/thenoetrevino/todometer/internal/config"
)

type contextKey int

const (
	appKey contextKey = iota
	configKey
)

// WithApp injects an already opened App; commands then use it instead of
// opening the database themselves
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// WithConfig stores the loaded configuration for commands
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFromContext returns the stored configuration, or the defaults
func ConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.Default()
}

// GetCLIFromContext returns a CLI over the injected App, or opens one from
// the configuration in ctx. Callers must Close it.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	cfg := ConfigFromContext(ctx)
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a, Config: cfg}, nil
	}
	return NewCLI(ctx, cfg)
}
