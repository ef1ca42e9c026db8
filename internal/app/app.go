package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thenoetrevino/todometer/internal/config"
	"github.com/thenoetrevino/todometer/internal/database"
	"github.com/thenoetrevino/todometer/internal/events"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/usecase"
)

// App holds the repository, the use-cases and the change bus built over one
// database. It is the composition root shared by the CLI, the HTTP backend
// and the tests.
type App struct {
	db          *sql.DB
	ownsDB      bool
	bus         *events.Bus
	eventClient events.EventPublisher
	logger      *slog.Logger

	Repository repository.Repository
	UseCases   *usecase.UseCases

	stopBridge context.CancelFunc
	bridgeDone chan struct{}
	closeOnce  sync.Once
}

// New creates an App over an initialized database. With an event publisher,
// local changes are forwarded to the daemon and remote changes are delivered
// to local live queries.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	bus := events.NewBus()
	repo := repository.New(database.NewRepository(db), bus, repository.WithLogger(cfg.logger))

	a := &App{
		db:          db,
		ownsDB:      cfg.ownsDB,
		bus:         bus,
		eventClient: cfg.eventClient,
		logger:      cfg.logger,
		Repository:  repo,
		UseCases:    usecase.New(repo),
	}

	if a.eventClient != nil {
		bus.SetForwarder(a.eventClient)

		ctx, cancel := context.WithCancel(context.Background())
		a.stopBridge = cancel
		a.bridgeDone = make(chan struct{})
		go func() {
			defer close(a.bridgeDone)
			if err := bus.Bridge(ctx, a.eventClient); err != nil {
				a.logger.Warn("failed to listen for daemon events", "error", err)
			}
		}()
	}

	return a
}

// Open initializes the database from cfg and, when the daemon is reachable,
// connects to it. A missing daemon is not an error: changes then stay local
// to this process.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	opts = append(opts, withOwnedDB())

	client, err := events.NewClient(cfg.Daemon.SocketPath, events.WithDebounce(cfg.Daemon.Debounce()))
	if err == nil {
		if err := client.Connect(ctx); err == nil {
			opts = append(opts, WithEventPublisher(client))
		} else {
			slog.Debug("daemon not available, live updates stay in-process",
				"socket_path", cfg.Daemon.SocketPath, "error", events.ClassifyDaemonError(err))
			_ = client.Close()
		}
	}

	return New(db, opts...), nil
}

// Bus is the change bus the repository publishes on
func (a *App) Bus() *events.Bus {
	return a.bus
}

// DB returns the underlying database handle
func (a *App) DB() *sql.DB {
	return a.db
}

// Connected reports whether changes are shared through the daemon
func (a *App) Connected() bool {
	return a.eventClient != nil
}

// Close stops the daemon bridge, closes the event client and, when the App
// opened it, the database.
func (a *App) Close() error {
	var errs []error
	a.closeOnce.Do(func() {
		if a.eventClient != nil {
			a.bus.SetForwarder(nil)
			a.stopBridge()
			if err := a.eventClient.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close event client: %w", err))
			}
			<-a.bridgeDone
		}
		if a.ownsDB {
			if err := a.db.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close database: %w", err))
			}
		}
	})
	return errors.Join(errs...)
}
