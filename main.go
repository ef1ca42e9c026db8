package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/todometer/cmd"
	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/styles"
	"github.com/thenoetrevino/todometer/internal/config"
	"github.com/thenoetrevino/todometer/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return cli.ExitError
	}

	// Logs go to a file so they never mix with command output
	closer, err := logging.Init(cfg.Log.Path, cfg.Log.SlogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	} else {
		defer func() { _ = closer.Close() }()
	}

	styles.Init(cfg.ColorScheme)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cmd.NewRootCmd()
	err = root.ExecuteContext(cli.WithConfig(ctx, cfg))
	// Argument and flag errors are raised by cobra before any command body
	// runs, so nothing has printed them yet
	if err != nil && !cli.Reported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if cli.ExitCode(err) == cli.ExitUsage {
			fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", root.CommandPath())
		}
	}
	return cli.ExitCode(err)
}
