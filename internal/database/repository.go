package database

import (
	"database/sql"

	"github.com/thenoetrevino/todometer/internal/database/generated"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*TaskListRepo
	*TaskRepo
	*ChecklistRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	queries := generated.New(db)
	return &Repository{
		TaskListRepo:  &TaskListRepo{queries: queries, db: db},
		TaskRepo:      &TaskRepo{queries: queries, db: db},
		ChecklistRepo: &ChecklistRepo{queries: queries, db: db},
	}
}
