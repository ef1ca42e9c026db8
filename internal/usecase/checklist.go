package usecase

import (
	"context"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

type InsertTaskChecklistItems struct{ repo repository.Repository }

func NewInsertTaskChecklistItems(repo repository.Repository) *InsertTaskChecklistItems {
	return &InsertTaskChecklistItems{repo: repo}
}

// Execute appends unchecked items to the task
func (u *InsertTaskChecklistItems) Execute(ctx context.Context, taskID types.TaskID, texts ...string) result.Result[[]types.ChecklistItemID] {
	return u.repo.InsertTaskChecklistItems(ctx, taskID, texts...)
}

type SetTaskChecklistItemChecked struct{ repo repository.Repository }

func NewSetTaskChecklistItemChecked(repo repository.Repository) *SetTaskChecklistItemChecked {
	return &SetTaskChecklistItemChecked{repo: repo}
}

func (u *SetTaskChecklistItemChecked) Execute(ctx context.Context, id types.ChecklistItemID) result.Result[result.Unit] {
	return u.repo.SetTaskChecklistItemState(ctx, id, models.ChecklistItemChecked)
}

type SetTaskChecklistItemUnchecked struct{ repo repository.Repository }

func NewSetTaskChecklistItemUnchecked(repo repository.Repository) *SetTaskChecklistItemUnchecked {
	return &SetTaskChecklistItemUnchecked{repo: repo}
}

func (u *SetTaskChecklistItemUnchecked) Execute(ctx context.Context, id types.ChecklistItemID) result.Result[result.Unit] {
	return u.repo.SetTaskChecklistItemState(ctx, id, models.ChecklistItemUnchecked)
}

type DeleteTaskChecklistItem struct{ repo repository.Repository }

func NewDeleteTaskChecklistItem(repo repository.Repository) *DeleteTaskChecklistItem {
	return &DeleteTaskChecklistItem{repo: repo}
}

func (u *DeleteTaskChecklistItem) Execute(ctx context.Context, id types.ChecklistItemID) result.Result[result.Unit] {
	return u.repo.DeleteTaskChecklistItem(ctx, id)
}

type GetTaskChecklistItems struct{ repo repository.Repository }

func NewGetTaskChecklistItems(repo repository.Repository) *GetTaskChecklistItems {
	return &GetTaskChecklistItems{repo: repo}
}

func (u *GetTaskChecklistItems) Execute(ctx context.Context, taskID types.TaskID) <-chan result.Result[[]models.TaskChecklistItem] {
	return u.repo.GetTaskChecklistItems(ctx, taskID)
}
