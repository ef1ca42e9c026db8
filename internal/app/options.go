package app

import (
	"log/slog"

	"github.com/thenoetrevino/todometer/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	ownsDB      bool
}

// WithEventPublisher shares changes with other processes through the daemon
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger used by the App and its repository.
// Opening the database still logs through slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// withOwnedDB makes Close also close the database
func withOwnedDB() Option {
	return func(cfg *appConfig) {
		cfg.ownsDB = true
	}
}
