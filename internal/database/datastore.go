package database

import (
	"context"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/types"
)

// TaskListStore defines task list operations.
type TaskListStore interface {
	CreateTaskList(ctx context.Context, name, description string) (*models.TaskList, error)
	GetTaskListByID(ctx context.Context, id types.TaskListID) (*models.TaskList, error)
	GetAllTaskLists(ctx context.Context) ([]models.TaskList, error)
	UpdateTaskList(ctx context.Context, tl models.TaskList) error
	DeleteTaskList(ctx context.Context, id types.TaskListID) error
	GetSelectedTaskList(ctx context.Context) (*models.TaskList, error)
	SetSelectedTaskList(ctx context.Context, id types.TaskListID) error
}

// TaskStore defines task operations.
type TaskStore interface {
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	CreateTaskWithChecklist(ctx context.Context, task models.Task, checklist []string) (*models.TaskDetail, error)
	GetTaskByID(ctx context.Context, id types.TaskID) (*models.Task, error)
	GetTaskDetail(ctx context.Context, id types.TaskID) (*models.TaskDetail, error)
	GetTasksByTaskList(ctx context.Context, taskListID types.TaskListID) ([]models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) error
	UpdateTaskState(ctx context.Context, id types.TaskID, state models.TaskState) error
	DeleteTask(ctx context.Context, id types.TaskID) error
}

// ChecklistStore defines checklist item operations.
type ChecklistStore interface {
	CreateChecklistItems(ctx context.Context, taskID types.TaskID, texts []string) ([]models.TaskChecklistItem, error)
	GetChecklistItemByID(ctx context.Context, id types.ChecklistItemID) (*models.TaskChecklistItem, error)
	GetChecklistItemsByTask(ctx context.Context, taskID types.TaskID) ([]models.TaskChecklistItem, error)
	UpdateChecklistItemState(ctx context.Context, id types.ChecklistItemID, state models.ChecklistItemState) (types.TaskID, error)
	DeleteChecklistItem(ctx context.Context, id types.ChecklistItemID) (types.TaskID, error)
}

// DataStore defines the unified interface for all data operations.
// It is composed of smaller, entity-specific interfaces; consumers that need
// only one entity can depend on the smaller interface instead.
type DataStore interface {
	TaskListStore
	TaskStore
	ChecklistStore
}

var _ DataStore = (*Repository)(nil)
