package repository

import (
	"context"
	"time"

	"github.com/thenoetrevino/todometer/internal/events"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

// InsertTask inserts a task and returns its generated id
func (r *repo) InsertTask(ctx context.Context, title string, tag models.Tag, description *string, dueDate *time.Time, taskListID types.TaskListID) result.Result[types.TaskID] {
	task, err := r.store.CreateTask(ctx, models.Task{
		Title:       title,
		Tag:         tag,
		Description: description,
		DueDate:     dueDate,
		State:       models.TaskStateOpen,
		TaskListID:  taskListID,
	})
	if err != nil {
		return result.Error[types.TaskID](notFoundAs(err, ErrTaskListNotFound))
	}

	r.logger.Debug("task inserted", "task_id", task.ID, "task_list_id", taskListID)
	r.bus.Publish(events.Event{Type: events.EventTaskChanged, TaskListID: taskListID, TaskID: task.ID})
	return result.Success(task.ID)
}

// InsertTaskWithChecklist inserts a task and its checklist items in one transaction
func (r *repo) InsertTaskWithChecklist(ctx context.Context, in TaskInput) result.Result[types.TaskID] {
	detail, err := r.store.CreateTaskWithChecklist(ctx, models.Task{
		Title:       in.Title,
		Tag:         in.Tag,
		Description: in.Description,
		DueDate:     in.DueDate,
		State:       models.TaskStateOpen,
		TaskListID:  in.TaskListID,
	}, in.Checklist)
	if err != nil {
		return result.Error[types.TaskID](notFoundAs(err, ErrTaskListNotFound))
	}

	r.logger.Debug("task inserted", "task_id", detail.Task.ID, "task_list_id", in.TaskListID, "checklist_items", len(detail.Checklist))
	r.bus.Publish(events.Event{Type: events.EventTaskChanged, TaskListID: in.TaskListID, TaskID: detail.Task.ID})
	return result.Success(detail.Task.ID)
}

// UpdateTask replaces title, description, tag, due date and state.
// task.TaskListID is ignored; the event is scoped to the stored owner.
func (r *repo) UpdateTask(ctx context.Context, task models.Task) result.Result[result.Unit] {
	listID := r.taskListOf(ctx, task.ID)
	if err := r.store.UpdateTask(ctx, task); err != nil {
		return done(notFoundAs(err, ErrTaskNotFound))
	}

	r.bus.Publish(events.Event{Type: events.EventTaskChanged, TaskListID: listID, TaskID: task.ID})
	return result.Done()
}

// UpdateTaskState changes only the state of a task
func (r *repo) UpdateTaskState(ctx context.Context, id types.TaskID, state models.TaskState) result.Result[result.Unit] {
	if err := r.store.UpdateTaskState(ctx, id, state); err != nil {
		return done(notFoundAs(err, ErrTaskNotFound))
	}

	r.bus.Publish(events.Event{Type: events.EventTaskChanged, TaskListID: r.taskListOf(ctx, id), TaskID: id})
	return result.Done()
}

// DeleteTask deletes a task and its checklist
func (r *repo) DeleteTask(ctx context.Context, id types.TaskID) result.Result[result.Unit] {
	listID := r.taskListOf(ctx, id)
	if err := r.store.DeleteTask(ctx, id); err != nil {
		return done(notFoundAs(err, ErrTaskNotFound))
	}

	r.logger.Debug("task deleted", "task_id", id, "task_list_id", listID)
	r.bus.Publish(events.Event{Type: events.EventTaskChanged, TaskListID: listID, TaskID: id})
	return result.Done()
}

// GetTask streams a task together with its checklist
func (r *repo) GetTask(ctx context.Context, id types.TaskID) <-chan result.Result[models.TaskDetail] {
	return watch(ctx, r.bus, affectsTask(id), func(ctx context.Context) (models.TaskDetail, error) {
		detail, err := r.store.GetTaskDetail(ctx, id)
		if err != nil {
			return models.TaskDetail{}, notFoundAs(err, ErrTaskNotFound)
		}
		return *detail, nil
	})
}

// GetTasks streams the tasks of a task list in insertion order
func (r *repo) GetTasks(ctx context.Context, taskListID types.TaskListID) <-chan result.Result[[]models.Task] {
	return watch(ctx, r.bus, affectsTasksOf(taskListID), func(ctx context.Context) ([]models.Task, error) {
		return r.store.GetTasksByTaskList(ctx, taskListID)
	})
}

// affectsTask matches changes that may alter a task or its checklist
func affectsTask(id types.TaskID) events.Filter {
	return func(e events.Event) bool {
		switch e.Type {
		case events.EventTaskChanged, events.EventChecklistChanged:
			return e.TaskID == id || e.TaskID == ""
		case events.EventTaskListChanged, events.EventDatabaseChanged:
			// deleting a task list cascades to its tasks
			return true
		}
		return false
	}
}

// affectsTasksOf matches changes that may alter the task set of a list
func affectsTasksOf(taskListID types.TaskListID) events.Filter {
	return func(e events.Event) bool {
		switch e.Type {
		case events.EventTaskChanged, events.EventTaskListChanged, events.EventDatabaseChanged:
			return e.InTaskList(taskListID)
		}
		return false
	}
}
