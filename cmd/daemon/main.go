package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/todometer/internal/config"
	"github.com/thenoetrevino/todometer/internal/daemon"
	"github.com/thenoetrevino/todometer/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Under systemd stderr is captured by the journal
	logging.Setup(os.Stderr, cfg.Log.SlogLevel())

	server, err := daemon.NewServer(cfg.Daemon.SocketPath,
		daemon.WithBroadcastBuffer(cfg.Daemon.BroadcastBuffer),
		daemon.WithClientBuffer(cfg.Daemon.ClientBuffer),
	)
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("todometer daemon starting", "socket_path", server.SocketPath(), "pid", os.Getpid())

	// Start the daemon (blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	snapshot := server.Metrics().GetSnapshot()
	slog.Info("todometer daemon shut down gracefully",
		"uptime", snapshot.Uptime,
		"events_broadcast", snapshot.EventsBroadcast,
		"clients_total", snapshot.ClientsTotal,
	)
}
