package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/types"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with the real migrations applied.
// The seeded "Default" task list is kept.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestDBFile creates a file-based database for testing persistence across restarts
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "todometer.db")
	db, err := InitDB(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to create file database: %v", err)
	}
	return db, path
}

// ============================================================================
// FIXTURES
// ============================================================================

func mustCreateTaskList(t *testing.T, repo *Repository, name string) *models.TaskList {
	t.Helper()
	tl, err := repo.CreateTaskList(context.Background(), name, "")
	if err != nil {
		t.Fatalf("Failed to create task list %q: %v", name, err)
	}
	return tl
}

func mustCreateTask(t *testing.T, repo *Repository, listID types.TaskListID, title string) *models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), models.Task{Title: title, TaskListID: listID})
	if err != nil {
		t.Fatalf("Failed to create task %q: %v", title, err)
	}
	return task
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
