package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/todometer/internal/converters"
	"github.com/thenoetrevino/todometer/internal/database/generated"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/types"
)

// PreferenceTaskListSelected stores the id of the selected task list
const PreferenceTaskListSelected = "task_list_selected"

// TaskListRepo handles all task-list-related database operations.
type TaskListRepo struct {
	queries *generated.Queries
	db      *sql.DB
}

// CreateTaskList inserts a task list with a freshly generated id
func (r *TaskListRepo) CreateTaskList(ctx context.Context, name, description string) (*models.TaskList, error) {
	row, err := r.queries.CreateTaskList(ctx, generated.CreateTaskListParams{
		ID:          types.NewTaskListID().String(),
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task list '%s': %w", name, err)
	}
	tl := converters.TaskListToModel(row)
	return &tl, nil
}

// GetTaskListByID retrieves a task list by its ID
func (r *TaskListRepo) GetTaskListByID(ctx context.Context, id types.TaskListID) (*models.TaskList, error) {
	row, err := r.queries.GetTaskList(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get task list %s: %w", id, notFound(err))
	}
	tl := converters.TaskListToModel(row)
	return &tl, nil
}

// GetAllTaskLists retrieves all task lists, oldest first
func (r *TaskListRepo) GetAllTaskLists(ctx context.Context) ([]models.TaskList, error) {
	rows, err := r.queries.ListTaskLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all task lists: %w", err)
	}
	return converters.TaskListsToModels(rows), nil
}

// UpdateTaskList replaces the name and description of a task list
func (r *TaskListRepo) UpdateTaskList(ctx context.Context, tl models.TaskList) error {
	err := requireAffected(r.queries.UpdateTaskList(ctx, generated.UpdateTaskListParams{
		Name:        tl.Name,
		Description: tl.Description,
		ID:          tl.ID.String(),
	}))
	if err != nil {
		return fmt.Errorf("failed to update task list %s: %w", tl.ID, err)
	}
	return nil
}

// DeleteTaskList deletes a task list; its tasks and their checklist items
// are removed by ON DELETE CASCADE
func (r *TaskListRepo) DeleteTaskList(ctx context.Context, id types.TaskListID) error {
	if err := requireAffected(r.queries.DeleteTaskList(ctx, id.String())); err != nil {
		return fmt.Errorf("failed to delete task list %s: %w", id, err)
	}
	return nil
}

// GetSelectedTaskList resolves the selected task list. When nothing is
// stored, or the stored list no longer exists, the oldest list is returned.
// ErrNotFound means there are no task lists at all.
func (r *TaskListRepo) GetSelectedTaskList(ctx context.Context) (*models.TaskList, error) {
	var selected generated.TaskList
	err := withTx(ctx, r.db, func(q *generated.Queries) error {
		id, err := q.GetPreference(ctx, PreferenceTaskListSelected)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err == nil {
			selected, err = q.GetTaskList(ctx, id)
			if err == nil {
				return nil
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
		}
		selected, err = q.GetOldestTaskList(ctx)
		return notFound(err)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get selected task list: %w", err)
	}
	tl := converters.TaskListToModel(selected)
	return &tl, nil
}

// SetSelectedTaskList stores id as the selected task list. The list must exist.
func (r *TaskListRepo) SetSelectedTaskList(ctx context.Context, id types.TaskListID) error {
	err := withTx(ctx, r.db, func(q *generated.Queries) error {
		if _, err := q.GetTaskList(ctx, id.String()); err != nil {
			return notFound(err)
		}
		return q.UpsertPreference(ctx, generated.UpsertPreferenceParams{
			Key:   PreferenceTaskListSelected,
			Value: id.String(),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to select task list %s: %w", id, err)
	}
	return nil
}
