package viewmodel

import (
	"context"
	"strings"
	"time"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
	"github.com/thenoetrevino/todometer/internal/usecase"
)

// EditTask edits the fields of one task
type EditTask struct {
	*scope
	uc    *usecase.UseCases
	task  result.Result[models.TaskDetail]
	saved bool
}

func NewEditTask(ctx context.Context, uc *usecase.UseCases, id types.TaskID) *EditTask {
	v := &EditTask{scope: newScope(ctx), uc: uc}
	observe(v.scope, uc.GetTask.Execute(v.ctx, id), func(r result.Result[models.TaskDetail]) { v.task = r })
	return v
}

func (v *EditTask) Task() result.Result[models.TaskDetail] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.task
}

// Submit replaces title, description, tag and due date, keeping the state.
// A blank title is rejected.
func (v *EditTask) Submit(title string, description *string, tag models.Tag, dueDate *time.Time) bool {
	if strings.TrimSpace(title) == "" {
		return v.reject(ErrEmptyTitle)
	}
	detail, ok := v.Task().Value()
	if !ok {
		return v.reject(ErrNotLoaded)
	}

	task := detail.Task.Clone()
	task.Title = strings.TrimSpace(title)
	task.Description = description
	task.Tag = tag
	task.DueDate = dueDate
	return v.submit(func(ctx context.Context) error {
		return errOf(v.uc.UpdateTask.Execute(ctx, task))
	}, func() {
		v.mu.Lock()
		v.saved = true
		v.mu.Unlock()
	})
}

// Saved reports whether a submit succeeded
func (v *EditTask) Saved() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.saved
}
