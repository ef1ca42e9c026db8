package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/todometer/internal/converters"
	"github.com/thenoetrevino/todometer/internal/database/generated"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/types"
)

// ChecklistRepo handles all checklist-item-related database operations.
type ChecklistRepo struct {
	queries *generated.Queries
	db      *sql.DB
}

// CreateChecklistItems inserts one unchecked item per text, in order, atomically
func (r *ChecklistRepo) CreateChecklistItems(ctx context.Context, taskID types.TaskID, texts []string) ([]models.TaskChecklistItem, error) {
	var items []models.TaskChecklistItem
	err := withTx(ctx, r.db, func(q *generated.Queries) error {
		var err error
		items, err = insertChecklistItems(ctx, q, taskID, texts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add checklist items to task %s: %w", taskID, missingParent(err))
	}
	return items, nil
}

func insertChecklistItems(ctx context.Context, q *generated.Queries, taskID types.TaskID, texts []string) ([]models.TaskChecklistItem, error) {
	items := make([]models.TaskChecklistItem, 0, len(texts))
	for _, text := range texts {
		row, err := q.CreateTaskChecklistItem(ctx, generated.CreateTaskChecklistItemParams{
			ID:     types.NewChecklistItemID().String(),
			Text:   text,
			State:  converters.ChecklistStateToDB(models.ChecklistItemUnchecked),
			TaskID: taskID.String(),
		})
		if err != nil {
			return nil, err
		}
		items = append(items, converters.ChecklistItemToModel(row))
	}
	return items, nil
}

// GetChecklistItemByID retrieves a checklist item by its ID
func (r *ChecklistRepo) GetChecklistItemByID(ctx context.Context, id types.ChecklistItemID) (*models.TaskChecklistItem, error) {
	row, err := r.queries.GetTaskChecklistItem(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist item %s: %w", id, notFound(err))
	}
	item := converters.ChecklistItemToModel(row)
	return &item, nil
}

// GetChecklistItemsByTask retrieves the checklist of a task in insertion order
func (r *ChecklistRepo) GetChecklistItemsByTask(ctx context.Context, taskID types.TaskID) ([]models.TaskChecklistItem, error) {
	rows, err := r.queries.ListTaskChecklistItemsByTask(ctx, taskID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist of task %s: %w", taskID, err)
	}
	return converters.ChecklistItemsToModels(rows), nil
}

// UpdateChecklistItemState checks or unchecks an item and returns the owning task
func (r *ChecklistRepo) UpdateChecklistItemState(ctx context.Context, id types.ChecklistItemID, state models.ChecklistItemState) (types.TaskID, error) {
	var taskID types.TaskID
	err := withTx(ctx, r.db, func(q *generated.Queries) error {
		row, err := q.GetTaskChecklistItem(ctx, id.String())
		if err != nil {
			return notFound(err)
		}
		taskID = types.TaskID(row.TaskID)
		return requireAffected(q.UpdateTaskChecklistItemState(ctx, generated.UpdateTaskChecklistItemStateParams{
			State: converters.ChecklistStateToDB(state),
			ID:    id.String(),
		}))
	})
	if err != nil {
		return "", fmt.Errorf("failed to set state of checklist item %s: %w", id, err)
	}
	return taskID, nil
}

// DeleteChecklistItem deletes an item and returns the owning task
func (r *ChecklistRepo) DeleteChecklistItem(ctx context.Context, id types.ChecklistItemID) (types.TaskID, error) {
	var taskID types.TaskID
	err := withTx(ctx, r.db, func(q *generated.Queries) error {
		row, err := q.GetTaskChecklistItem(ctx, id.String())
		if err != nil {
			return notFound(err)
		}
		taskID = types.TaskID(row.TaskID)
		return requireAffected(q.DeleteTaskChecklistItem(ctx, id.String()))
	})
	if err != nil {
		return "", fmt.Errorf("failed to delete checklist item %s: %w", id, err)
	}
	return taskID, nil
}
