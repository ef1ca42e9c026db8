package viewmodel

import (
	"context"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
	"github.com/thenoetrevino/todometer/internal/usecase"
)

// HomeState is the state of the main screen
type HomeState struct {
	TaskLists result.Result[[]models.TaskList]
	Selected  result.Result[models.TaskList]
	Tasks     result.Result[[]models.Task]
}

// Home shows every task list, the selected one and its tasks
type Home struct {
	*scope
	uc    *usecase.UseCases
	state HomeState
}

func NewHome(ctx context.Context, uc *usecase.UseCases) *Home {
	h := &Home{scope: newScope(ctx), uc: uc}
	observe(h.scope, uc.GetTaskLists.Execute(h.ctx), func(r result.Result[[]models.TaskList]) { h.state.TaskLists = r })
	observe(h.scope, uc.GetTaskListSelected.Execute(h.ctx), func(r result.Result[models.TaskList]) { h.state.Selected = r })
	observe(h.scope, uc.GetTaskListSelectedTasks.Execute(h.ctx), func(r result.Result[[]models.Task]) { h.state.Tasks = r })
	return h
}

func (h *Home) State() HomeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// SelectTaskList makes id the selected task list
func (h *Home) SelectTaskList(id types.TaskListID) bool {
	return h.submit(func(ctx context.Context) error {
		return errOf(h.uc.SetTaskListSelected.Execute(ctx, id))
	}, nil)
}

// ToggleTaskDone marks an open or in-progress task done and a done task open
func (h *Home) ToggleTaskDone(task models.Task) bool {
	return h.submit(func(ctx context.Context) error {
		if task.State == models.TaskStateDone {
			return errOf(h.uc.SetTaskOpen.Execute(ctx, task.ID))
		}
		return errOf(h.uc.SetTaskDone.Execute(ctx, task.ID))
	}, nil)
}

func (h *Home) DeleteTask(id types.TaskID) bool {
	return h.submit(func(ctx context.Context) error {
		return errOf(h.uc.DeleteTask.Execute(ctx, id))
	}, nil)
}

// DeleteSelectedTaskList deletes the selected task list and its tasks.
// Returns false when nothing is selected.
func (h *Home) DeleteSelectedTaskList() bool {
	selected, ok := h.State().Selected.Value()
	if !ok {
		return false
	}
	return h.submit(func(ctx context.Context) error {
		return errOf(h.uc.DeleteTaskList.Execute(ctx, selected.ID))
	}, nil)
}
