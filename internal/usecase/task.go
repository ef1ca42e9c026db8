package usecase

import (
	"context"
	"time"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

type InsertTask struct{ repo repository.Repository }

func NewInsertTask(repo repository.Repository) *InsertTask { return &InsertTask{repo: repo} }

// Execute inserts a task into taskListID. An empty tag becomes models.DefaultTag.
func (u *InsertTask) Execute(ctx context.Context, title string, tag models.Tag, description *string, dueDate *time.Time, taskListID types.TaskListID) result.Result[types.TaskID] {
	return u.repo.InsertTask(ctx, title, tagOrDefault(tag), description, dueDate, taskListID)
}

// InsertTaskInTaskListSelected inserts a task, with its checklist, into
// whichever task list is currently selected
type InsertTaskInTaskListSelected struct{ repo repository.Repository }

func NewInsertTaskInTaskListSelected(repo repository.Repository) *InsertTaskInTaskListSelected {
	return &InsertTaskInTaskListSelected{repo: repo}
}

func (u *InsertTaskInTaskListSelected) Execute(ctx context.Context, title string, tag models.Tag, description *string, dueDate *time.Time, checklist []string) result.Result[types.TaskID] {
	selectionCtx, cancel := context.WithCancel(ctx)
	selected := repository.First(selectionCtx, u.repo.GetTaskListSelected(selectionCtx))
	cancel()

	taskList, err := selected.Unwrap()
	if err != nil {
		return result.Error[types.TaskID](err)
	}

	return u.repo.InsertTaskWithChecklist(ctx, repository.TaskInput{
		Title:       title,
		Tag:         tagOrDefault(tag),
		Description: description,
		DueDate:     dueDate,
		TaskListID:  taskList.ID,
		Checklist:   checklist,
	})
}

// InsertTaskWithChecklist inserts a task and its checklist into an explicit task list
type InsertTaskWithChecklist struct{ repo repository.Repository }

func NewInsertTaskWithChecklist(repo repository.Repository) *InsertTaskWithChecklist {
	return &InsertTaskWithChecklist{repo: repo}
}

func (u *InsertTaskWithChecklist) Execute(ctx context.Context, in repository.TaskInput) result.Result[types.TaskID] {
	in.Tag = tagOrDefault(in.Tag)
	return u.repo.InsertTaskWithChecklist(ctx, in)
}

type UpdateTask struct{ repo repository.Repository }

func NewUpdateTask(repo repository.Repository) *UpdateTask { return &UpdateTask{repo: repo} }

// Execute replaces the editable fields of task
func (u *UpdateTask) Execute(ctx context.Context, task models.Task) result.Result[result.Unit] {
	return u.repo.UpdateTask(ctx, task)
}

type SetTaskDone struct{ repo repository.Repository }

func NewSetTaskDone(repo repository.Repository) *SetTaskDone { return &SetTaskDone{repo: repo} }

func (u *SetTaskDone) Execute(ctx context.Context, id types.TaskID) result.Result[result.Unit] {
	return u.repo.UpdateTaskState(ctx, id, models.TaskStateDone)
}

type SetTaskOpen struct{ repo repository.Repository }

func NewSetTaskOpen(repo repository.Repository) *SetTaskOpen { return &SetTaskOpen{repo: repo} }

func (u *SetTaskOpen) Execute(ctx context.Context, id types.TaskID) result.Result[result.Unit] {
	return u.repo.UpdateTaskState(ctx, id, models.TaskStateOpen)
}

type SetTaskInProgress struct{ repo repository.Repository }

func NewSetTaskInProgress(repo repository.Repository) *SetTaskInProgress {
	return &SetTaskInProgress{repo: repo}
}

func (u *SetTaskInProgress) Execute(ctx context.Context, id types.TaskID) result.Result[result.Unit] {
	return u.repo.UpdateTaskState(ctx, id, models.TaskStateInProgress)
}

type DeleteTask struct{ repo repository.Repository }

func NewDeleteTask(repo repository.Repository) *DeleteTask { return &DeleteTask{repo: repo} }

func (u *DeleteTask) Execute(ctx context.Context, id types.TaskID) result.Result[result.Unit] {
	return u.repo.DeleteTask(ctx, id)
}

type GetTask struct{ repo repository.Repository }

func NewGetTask(repo repository.Repository) *GetTask { return &GetTask{repo: repo} }

// Execute streams the task and its checklist
func (u *GetTask) Execute(ctx context.Context, id types.TaskID) <-chan result.Result[models.TaskDetail] {
	return u.repo.GetTask(ctx, id)
}

type GetTasks struct{ repo repository.Repository }

func NewGetTasks(repo repository.Repository) *GetTasks { return &GetTasks{repo: repo} }

// Execute streams the tasks of one task list
func (u *GetTasks) Execute(ctx context.Context, taskListID types.TaskListID) <-chan result.Result[[]models.Task] {
	return u.repo.GetTasks(ctx, taskListID)
}

// GetTaskListSelectedTasks streams the tasks of the selected task list,
// following the selection when it changes
type GetTaskListSelectedTasks struct{ repo repository.Repository }

func NewGetTaskListSelectedTasks(repo repository.Repository) *GetTaskListSelectedTasks {
	return &GetTaskListSelectedTasks{repo: repo}
}

func (u *GetTaskListSelectedTasks) Execute(ctx context.Context) <-chan result.Result[[]models.Task] {
	return repository.Switch(ctx, u.repo.GetTaskListSelected(ctx),
		func(tl models.TaskList) types.TaskListID { return tl.ID },
		func(ctx context.Context, tl models.TaskList) <-chan result.Result[[]models.Task] {
			return u.repo.GetTasks(ctx, tl.ID)
		})
}
