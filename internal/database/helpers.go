package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/todometer/internal/database/generated"
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
// Every query inside fn must go through the supplied *generated.Queries: the
// pool holds a single connection, so touching r.db would deadlock.
func withTx(ctx context.Context, db *sql.DB, fn func(*generated.Queries) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(generated.New(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
