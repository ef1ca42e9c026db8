package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/todometer/internal/app"
	"github.com/thenoetrevino/todometer/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with use-cases
	Config *config.Config
	owned  bool
}

// NewCLI opens the database from cfg and connects to the daemon if it is running
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}

	return &CLI{
		App:    a,
		Config: cfg,
		owned:  true,
	}, nil
}

// Close cleans up CLI resources. An injected App is left open for its owner.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
