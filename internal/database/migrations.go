package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/todometer/internal/database/generated"
	"github.com/thenoetrevino/todometer/internal/types"
)

//go:embed queries/schema.sql
var schema string

// DefaultTaskListName is the name of the task list seeded into an empty database
const DefaultTaskListName = "Default"

// Migrate creates the schema and seeds the default task list if needed.
// It is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return seedDefaultTaskList(ctx, db)
}

// seedDefaultTaskList inserts the default task list if there are no task lists
func seedDefaultTaskList(ctx context.Context, db *sql.DB) error {
	q := generated.New(db)

	count, err := q.CountTaskLists(ctx)
	if err != nil {
		return fmt.Errorf("failed to count task lists: %w", err)
	}
	if count > 0 {
		return nil
	}

	row, err := q.CreateTaskList(ctx, generated.CreateTaskListParams{
		ID:   types.NewTaskListID().String(),
		Name: DefaultTaskListName,
	})
	if err != nil {
		return fmt.Errorf("failed to seed default task list: %w", err)
	}
	slog.Info("seeded default task list", "task_list_id", row.ID)
	return nil
}
