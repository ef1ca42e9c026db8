package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/todometer/internal/database"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/types"
)

// SetupTestDB creates an in-memory database with the real migrations applied.
// It contains the seeded "Default" task list.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// DefaultTaskListID returns the id of the seeded task list
func DefaultTaskListID(t *testing.T, db *sql.DB) types.TaskListID {
	t.Helper()
	var id string
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM task_lists WHERE name = ? ORDER BY created_at, rowid LIMIT 1",
		database.DefaultTaskListName).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to find default task list: %v", err)
	}
	return types.TaskListID(id)
}

// CreateTestTaskList creates a task list and returns its ID
func CreateTestTaskList(t *testing.T, db *sql.DB, name string) types.TaskListID {
	t.Helper()
	tl, err := database.NewRepository(db).CreateTaskList(context.Background(), name, "Test description")
	if err != nil {
		t.Fatalf("Failed to create test task list: %v", err)
	}
	return tl.ID
}

// CreateTestTask creates an open, gray task and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, taskListID types.TaskListID, title string) types.TaskID {
	t.Helper()
	task, err := database.NewRepository(db).CreateTask(context.Background(), models.Task{
		Title:      title,
		TaskListID: taskListID,
	})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task.ID
}

// CreateTestChecklist adds checklist items to a task and returns their IDs
func CreateTestChecklist(t *testing.T, db *sql.DB, taskID types.TaskID, texts ...string) []types.ChecklistItemID {
	t.Helper()
	items, err := database.NewRepository(db).CreateChecklistItems(context.Background(), taskID, texts)
	if err != nil {
		t.Fatalf("Failed to create test checklist: %v", err)
	}
	ids := make([]types.ChecklistItemID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
