package usecase

import (
	"context"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

type InsertTaskList struct{ repo repository.Repository }

func NewInsertTaskList(repo repository.Repository) *InsertTaskList {
	return &InsertTaskList{repo: repo}
}

func (u *InsertTaskList) Execute(ctx context.Context, name, description string) result.Result[types.TaskListID] {
	return u.repo.InsertTaskList(ctx, name, description)
}

type UpdateTaskList struct{ repo repository.Repository }

func NewUpdateTaskList(repo repository.Repository) *UpdateTaskList {
	return &UpdateTaskList{repo: repo}
}

// Execute replaces the name and description of taskList
func (u *UpdateTaskList) Execute(ctx context.Context, taskList models.TaskList) result.Result[result.Unit] {
	return u.repo.UpdateTaskList(ctx, taskList)
}

type DeleteTaskList struct{ repo repository.Repository }

func NewDeleteTaskList(repo repository.Repository) *DeleteTaskList {
	return &DeleteTaskList{repo: repo}
}

// Execute deletes the task list together with its tasks
func (u *DeleteTaskList) Execute(ctx context.Context, id types.TaskListID) result.Result[result.Unit] {
	return u.repo.DeleteTaskList(ctx, id)
}

type GetTaskLists struct{ repo repository.Repository }

func NewGetTaskLists(repo repository.Repository) *GetTaskLists { return &GetTaskLists{repo: repo} }

func (u *GetTaskLists) Execute(ctx context.Context) <-chan result.Result[[]models.TaskList] {
	return u.repo.GetTaskLists(ctx)
}

type GetTaskListSelected struct{ repo repository.Repository }

func NewGetTaskListSelected(repo repository.Repository) *GetTaskListSelected {
	return &GetTaskListSelected{repo: repo}
}

func (u *GetTaskListSelected) Execute(ctx context.Context) <-chan result.Result[models.TaskList] {
	return u.repo.GetTaskListSelected(ctx)
}

type SetTaskListSelected struct{ repo repository.Repository }

func NewSetTaskListSelected(repo repository.Repository) *SetTaskListSelected {
	return &SetTaskListSelected{repo: repo}
}

func (u *SetTaskListSelected) Execute(ctx context.Context, id types.TaskListID) result.Result[result.Unit] {
	return u.repo.SetTaskListSelected(ctx, id)
}
