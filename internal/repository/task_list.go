package repository

import (
	"context"

	"github.com/thenoetrevino/todometer/internal/events"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

// InsertTaskList inserts a task list and returns its generated id
func (r *repo) InsertTaskList(ctx context.Context, name, description string) result.Result[types.TaskListID] {
	tl, err := r.store.CreateTaskList(ctx, name, description)
	if err != nil {
		return result.Error[types.TaskListID](err)
	}

	r.logger.Debug("task list inserted", "task_list_id", tl.ID)
	r.bus.Publish(events.Event{Type: events.EventTaskListChanged, TaskListID: tl.ID})
	return result.Success(tl.ID)
}

// UpdateTaskList replaces the name and description of a task list
func (r *repo) UpdateTaskList(ctx context.Context, taskList models.TaskList) result.Result[result.Unit] {
	if err := r.store.UpdateTaskList(ctx, taskList); err != nil {
		return done(notFoundAs(err, ErrTaskListNotFound))
	}

	r.bus.Publish(events.Event{Type: events.EventTaskListChanged, TaskListID: taskList.ID})
	return result.Done()
}

// DeleteTaskList deletes a task list with all its tasks and checklist items
func (r *repo) DeleteTaskList(ctx context.Context, id types.TaskListID) result.Result[result.Unit] {
	if err := r.store.DeleteTaskList(ctx, id); err != nil {
		return done(notFoundAs(err, ErrTaskListNotFound))
	}

	r.logger.Debug("task list deleted", "task_list_id", id)
	r.bus.Publish(events.Event{Type: events.EventTaskListChanged, TaskListID: id})
	return result.Done()
}

// GetTaskLists streams every task list, oldest first
func (r *repo) GetTaskLists(ctx context.Context) <-chan result.Result[[]models.TaskList] {
	return watch(ctx, r.bus, affectsTaskLists, func(ctx context.Context) ([]models.TaskList, error) {
		return r.store.GetAllTaskLists(ctx)
	})
}

// GetTaskListSelected streams the selected task list. When nothing valid is
// selected the oldest list is emitted; with no lists at all the snapshot is
// Error(ErrTaskListNotFound).
func (r *repo) GetTaskListSelected(ctx context.Context) <-chan result.Result[models.TaskList] {
	return watch(ctx, r.bus, affectsSelection, func(ctx context.Context) (models.TaskList, error) {
		tl, err := r.store.GetSelectedTaskList(ctx)
		if err != nil {
			return models.TaskList{}, notFoundAs(err, ErrTaskListNotFound)
		}
		return *tl, nil
	})
}

// SetTaskListSelected persists the selection; the list must exist
func (r *repo) SetTaskListSelected(ctx context.Context, id types.TaskListID) result.Result[result.Unit] {
	if err := r.store.SetSelectedTaskList(ctx, id); err != nil {
		return done(notFoundAs(err, ErrTaskListNotFound))
	}

	r.bus.Publish(events.Event{Type: events.EventSelectionChanged, TaskListID: id})
	return result.Done()
}

func affectsTaskLists(e events.Event) bool {
	return e.Type == events.EventTaskListChanged || e.Type == events.EventDatabaseChanged
}

func affectsSelection(e events.Event) bool {
	return affectsTaskLists(e) || e.Type == events.EventSelectionChanged
}
