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

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	queries *generated.Queries
	db      *sql.DB
}

// CreateTask inserts task with a freshly generated id. task.ID is ignored.
// An empty tag is stored as the default tag, an empty state as open.
func (r *TaskRepo) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	row, err := r.queries.CreateTask(ctx, generated.CreateTaskParams{
		ID:          types.NewTaskID().String(),
		Title:       task.Title,
		Description: converters.DescriptionToNull(task.Description),
		Tag:         converters.TagToDB(task.Tag),
		DueDate:     converters.DueDateToNull(task.DueDate),
		State:       converters.TaskStateToDB(task.State),
		TaskListID:  task.TaskListID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task '%s' in task list %s: %w", task.Title, task.TaskListID, missingParent(err))
	}
	created := converters.TaskToModel(row)
	return &created, nil
}

// CreateTaskWithChecklist inserts a task and its checklist items atomically
func (r *TaskRepo) CreateTaskWithChecklist(ctx context.Context, task models.Task, checklist []string) (*models.TaskDetail, error) {
	detail := &models.TaskDetail{Checklist: []models.TaskChecklistItem{}}
	err := withTx(ctx, r.db, func(q *generated.Queries) error {
		row, err := q.CreateTask(ctx, generated.CreateTaskParams{
			ID:          types.NewTaskID().String(),
			Title:       task.Title,
			Description: converters.DescriptionToNull(task.Description),
			Tag:         converters.TagToDB(task.Tag),
			DueDate:     converters.DueDateToNull(task.DueDate),
			State:       converters.TaskStateToDB(task.State),
			TaskListID:  task.TaskListID.String(),
		})
		if err != nil {
			return err
		}
		detail.Task = converters.TaskToModel(row)

		items, err := insertChecklistItems(ctx, q, detail.Task.ID, checklist)
		if err != nil {
			return err
		}
		detail.Checklist = items
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task '%s' in task list %s: %w", task.Title, task.TaskListID, missingParent(err))
	}
	return detail, nil
}

// GetTaskByID retrieves a task by its ID
func (r *TaskRepo) GetTaskByID(ctx context.Context, id types.TaskID) (*models.Task, error) {
	row, err := r.queries.GetTask(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, notFound(err))
	}
	task := converters.TaskToModel(row)
	return &task, nil
}

// GetTaskDetail retrieves a task together with its checklist in one read transaction
func (r *TaskRepo) GetTaskDetail(ctx context.Context, id types.TaskID) (*models.TaskDetail, error) {
	detail := &models.TaskDetail{}
	err := withTx(ctx, r.db, func(q *generated.Queries) error {
		row, err := q.GetTask(ctx, id.String())
		if err != nil {
			return notFound(err)
		}
		items, err := q.ListTaskChecklistItemsByTask(ctx, id.String())
		if err != nil {
			return err
		}
		detail.Task = converters.TaskToModel(row)
		detail.Checklist = converters.ChecklistItemsToModels(items)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get task detail %s: %w", id, err)
	}
	return detail, nil
}

// GetTasksByTaskList retrieves the tasks of a task list in insertion order
func (r *TaskRepo) GetTasksByTaskList(ctx context.Context, taskListID types.TaskListID) ([]models.Task, error) {
	rows, err := r.queries.ListTasksByTaskList(ctx, taskListID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks for task list %s: %w", taskListID, err)
	}
	return converters.TasksToModels(rows), nil
}

// UpdateTask replaces title, description, tag, due date and state.
// The task list and the id are never changed.
func (r *TaskRepo) UpdateTask(ctx context.Context, task models.Task) error {
	err := requireAffected(r.queries.UpdateTask(ctx, generated.UpdateTaskParams{
		Title:       task.Title,
		Description: converters.DescriptionToNull(task.Description),
		Tag:         converters.TagToDB(task.Tag),
		DueDate:     converters.DueDateToNull(task.DueDate),
		State:       converters.TaskStateToDB(task.State),
		ID:          task.ID.String(),
	}))
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}
	return nil
}

// UpdateTaskState changes only the state of a task
func (r *TaskRepo) UpdateTaskState(ctx context.Context, id types.TaskID, state models.TaskState) error {
	err := requireAffected(r.queries.UpdateTaskState(ctx, generated.UpdateTaskStateParams{
		State: converters.TaskStateToDB(state),
		ID:    id.String(),
	}))
	if err != nil {
		return fmt.Errorf("failed to set state of task %s: %w", id, err)
	}
	return nil
}

// DeleteTask deletes a task and, by cascade, its checklist items
func (r *TaskRepo) DeleteTask(ctx context.Context, id types.TaskID) error {
	if err := requireAffected(r.queries.DeleteTask(ctx, id.String())); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}
