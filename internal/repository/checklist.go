package repository

import (
	"context"

	"github.com/thenoetrevino/todometer/internal/events"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

// InsertTaskChecklistItems appends unchecked items to a task, in order
func (r *repo) InsertTaskChecklistItems(ctx context.Context, taskID types.TaskID, texts ...string) result.Result[[]types.ChecklistItemID] {
	items, err := r.store.CreateChecklistItems(ctx, taskID, texts)
	if err != nil {
		return result.Error[[]types.ChecklistItemID](notFoundAs(err, ErrTaskNotFound))
	}

	ids := make([]types.ChecklistItemID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	r.publishChecklistChanged(ctx, taskID)
	return result.Success(ids)
}

// SetTaskChecklistItemState checks or unchecks an item
func (r *repo) SetTaskChecklistItemState(ctx context.Context, id types.ChecklistItemID, state models.ChecklistItemState) result.Result[result.Unit] {
	taskID, err := r.store.UpdateChecklistItemState(ctx, id, state)
	if err != nil {
		return done(notFoundAs(err, ErrChecklistItemNotFound))
	}

	r.publishChecklistChanged(ctx, taskID)
	return result.Done()
}

// DeleteTaskChecklistItem deletes an item
func (r *repo) DeleteTaskChecklistItem(ctx context.Context, id types.ChecklistItemID) result.Result[result.Unit] {
	taskID, err := r.store.DeleteChecklistItem(ctx, id)
	if err != nil {
		return done(notFoundAs(err, ErrChecklistItemNotFound))
	}

	r.publishChecklistChanged(ctx, taskID)
	return result.Done()
}

// GetTaskChecklistItems streams the checklist of a task in insertion order
func (r *repo) GetTaskChecklistItems(ctx context.Context, taskID types.TaskID) <-chan result.Result[[]models.TaskChecklistItem] {
	return watch(ctx, r.bus, affectsTask(taskID), func(ctx context.Context) ([]models.TaskChecklistItem, error) {
		return r.store.GetChecklistItemsByTask(ctx, taskID)
	})
}

func (r *repo) publishChecklistChanged(ctx context.Context, taskID types.TaskID) {
	r.bus.Publish(events.Event{
		Type:       events.EventChecklistChanged,
		TaskListID: r.taskListOf(ctx, taskID),
		TaskID:     taskID,
	})
}
