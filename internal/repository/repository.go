// Package repository is the single mediator between the application and
// storage. Mutations return a result.Result and announce what they changed
// on the event bus after commit; reads are live streams that re-emit a fresh
// snapshot whenever a relevant change is announced.
package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/thenoetrevino/todometer/internal/database"
	"github.com/thenoetrevino/todometer/internal/events"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

// Repository is the data contract used by the use-cases.
// Streams emit the current snapshot first and close when ctx is done.
type Repository interface {
	// Tasks
	InsertTask(ctx context.Context, title string, tag models.Tag, description *string, dueDate *time.Time, taskListID types.TaskListID) result.Result[types.TaskID]
	InsertTaskWithChecklist(ctx context.Context, task TaskInput) result.Result[types.TaskID]
	UpdateTask(ctx context.Context, task models.Task) result.Result[result.Unit]
	UpdateTaskState(ctx context.Context, id types.TaskID, state models.TaskState) result.Result[result.Unit]
	DeleteTask(ctx context.Context, id types.TaskID) result.Result[result.Unit]
	GetTask(ctx context.Context, id types.TaskID) <-chan result.Result[models.TaskDetail]
	GetTasks(ctx context.Context, taskListID types.TaskListID) <-chan result.Result[[]models.Task]

	// Task lists
	InsertTaskList(ctx context.Context, name, description string) result.Result[types.TaskListID]
	UpdateTaskList(ctx context.Context, taskList models.TaskList) result.Result[result.Unit]
	DeleteTaskList(ctx context.Context, id types.TaskListID) result.Result[result.Unit]
	GetTaskLists(ctx context.Context) <-chan result.Result[[]models.TaskList]
	GetTaskListSelected(ctx context.Context) <-chan result.Result[models.TaskList]
	SetTaskListSelected(ctx context.Context, id types.TaskListID) result.Result[result.Unit]

	// Checklist items
	InsertTaskChecklistItems(ctx context.Context, taskID types.TaskID, texts ...string) result.Result[[]types.ChecklistItemID]
	SetTaskChecklistItemState(ctx context.Context, id types.ChecklistItemID, state models.ChecklistItemState) result.Result[result.Unit]
	DeleteTaskChecklistItem(ctx context.Context, id types.ChecklistItemID) result.Result[result.Unit]
	GetTaskChecklistItems(ctx context.Context, taskID types.TaskID) <-chan result.Result[[]models.TaskChecklistItem]
}

// TaskInput carries the fields of a task to insert together with its checklist
type TaskInput struct {
	Title       string
	Tag         models.Tag
	Description *string
	DueDate     *time.Time
	TaskListID  types.TaskListID
	Checklist   []string
}

// repo implements Repository over a database.DataStore
type repo struct {
	store  database.DataStore
	bus    *events.Bus
	logger *slog.Logger
}

// Option configures a Repository
type Option func(*repo)

// WithLogger sets the logger used for mutation debug logs. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *repo) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Repository. bus must be shared by every Repository over the same database.
func New(store database.DataStore, bus *events.Bus, opts ...Option) Repository {
	r := &repo{store: store, bus: bus, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// done converts a mutation error into a Unit result
func done(err error) result.Result[result.Unit] {
	if err != nil {
		return result.Error[result.Unit](err)
	}
	return result.Done()
}

// taskListOf looks up the task list owning a task for event scoping.
// Unknown tasks yield the empty id, which widens the event to every list.
func (r *repo) taskListOf(ctx context.Context, id types.TaskID) types.TaskListID {
	task, err := r.store.GetTaskByID(ctx, id)
	if err != nil {
		return ""
	}
	return task.TaskListID
}
