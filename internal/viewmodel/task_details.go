package viewmodel

import (
	"context"
	"strings"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
	"github.com/thenoetrevino/todometer/internal/usecase"
)

// TaskDetails shows a task with its checklist
type TaskDetails struct {
	*scope
	uc      *usecase.UseCases
	id      types.TaskID
	task    result.Result[models.TaskDetail]
	deleted bool
}

func NewTaskDetails(ctx context.Context, uc *usecase.UseCases, id types.TaskID) *TaskDetails {
	v := &TaskDetails{scope: newScope(ctx), uc: uc, id: id}
	observe(v.scope, uc.GetTask.Execute(v.ctx, id), func(r result.Result[models.TaskDetail]) { v.task = r })
	return v
}

func (v *TaskDetails) Task() result.Result[models.TaskDetail] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.task
}

// ToggleChecklistItem checks an unchecked item and unchecks a checked one
func (v *TaskDetails) ToggleChecklistItem(item models.TaskChecklistItem) bool {
	return v.submit(func(ctx context.Context) error {
		if item.State == models.ChecklistItemChecked {
			return errOf(v.uc.SetTaskChecklistItemUnchecked.Execute(ctx, item.ID))
		}
		return errOf(v.uc.SetTaskChecklistItemChecked.Execute(ctx, item.ID))
	}, nil)
}

// AddChecklistItem appends an item; blank text is ignored
func (v *TaskDetails) AddChecklistItem(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return v.submit(func(ctx context.Context) error {
		return errOf(v.uc.InsertTaskChecklistItems.Execute(ctx, v.id, text))
	}, nil)
}

func (v *TaskDetails) DeleteChecklistItem(id types.ChecklistItemID) bool {
	return v.submit(func(ctx context.Context) error {
		return errOf(v.uc.DeleteTaskChecklistItem.Execute(ctx, id))
	}, nil)
}

// SetState moves the task to state
func (v *TaskDetails) SetState(state models.TaskState) bool {
	return v.submit(func(ctx context.Context) error {
		switch state {
		case models.TaskStateDone:
			return errOf(v.uc.SetTaskDone.Execute(ctx, v.id))
		case models.TaskStateInProgress:
			return errOf(v.uc.SetTaskInProgress.Execute(ctx, v.id))
		default:
			return errOf(v.uc.SetTaskOpen.Execute(ctx, v.id))
		}
	}, nil)
}

func (v *TaskDetails) DeleteTask() bool {
	return v.submit(func(ctx context.Context) error {
		return errOf(v.uc.DeleteTask.Execute(ctx, v.id))
	}, func() {
		v.mu.Lock()
		v.deleted = true
		v.mu.Unlock()
	})
}

// Deleted reports whether DeleteTask succeeded
func (v *TaskDetails) Deleted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.deleted
}
