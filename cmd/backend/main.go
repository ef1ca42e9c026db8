package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/todometer/internal/app"
	"github.com/thenoetrevino/todometer/internal/config"
	"github.com/thenoetrevino/todometer/internal/logging"
	"github.com/thenoetrevino/todometer/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(os.Stderr, cfg.Log.SlogLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open app", "error", err)
		os.Exit(1)
	}
	if !a.Connected() {
		slog.Warn("daemon not reachable, changes from other clients will not be seen", "socket_path", cfg.Daemon.SocketPath)
	}

	srv := server.New(a.UseCases, slog.Default())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("todometer backend listening", "addr", cfg.Backend.Addr)
		return srv.Listen(cfg.Backend.Addr)
	})

	wait := gfshutdown.GracefulShutdown(gctx, shutdownTimeout, map[string]gfshutdown.Operation{
		"backend": func(ctx context.Context) error {
			slog.Info("graceful shutdown initiated")
			return errors.Join(srv.Shutdown(ctx), a.Close())
		},
	})

	exitCode := <-wait
	if err := g.Wait(); err != nil {
		slog.Error("backend stopped with error", "error", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	slog.Info("todometer backend exited", "code", exitCode)
	os.Exit(exitCode)
}
