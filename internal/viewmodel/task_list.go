package viewmodel

import (
	"context"
	"strings"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
	"github.com/thenoetrevino/todometer/internal/usecase"
)

// AddTaskList creates a task list
type AddTaskList struct {
	*scope
	uc      *usecase.UseCases
	created types.TaskListID
}

func NewAddTaskList(ctx context.Context, uc *usecase.UseCases) *AddTaskList {
	return &AddTaskList{scope: newScope(ctx), uc: uc}
}

// Submit inserts the task list; a blank name is rejected
func (v *AddTaskList) Submit(name, description string) bool {
	if strings.TrimSpace(name) == "" {
		return v.reject(ErrEmptyName)
	}

	var id types.TaskListID
	return v.submit(func(ctx context.Context) error {
		var err error
		id, err = v.uc.InsertTaskList.Execute(ctx, strings.TrimSpace(name), description).Unwrap()
		return err
	}, func() {
		v.mu.Lock()
		v.created = id
		v.mu.Unlock()
	})
}

// Created returns the id of the inserted task list once the submit succeeded
func (v *AddTaskList) Created() (types.TaskListID, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.created, v.created != ""
}

// EditTaskList edits the selected task list
type EditTaskList struct {
	*scope
	uc       *usecase.UseCases
	taskList result.Result[models.TaskList]
	saved    bool
}

func NewEditTaskList(ctx context.Context, uc *usecase.UseCases) *EditTaskList {
	v := &EditTaskList{scope: newScope(ctx), uc: uc}
	observe(v.scope, uc.GetTaskListSelected.Execute(v.ctx), func(r result.Result[models.TaskList]) { v.taskList = r })
	return v
}

// TaskList is the task list being edited
func (v *EditTaskList) TaskList() result.Result[models.TaskList] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.taskList
}

// Submit replaces the name and description; a blank name is rejected
func (v *EditTaskList) Submit(name, description string) bool {
	if strings.TrimSpace(name) == "" {
		return v.reject(ErrEmptyName)
	}
	current, ok := v.TaskList().Value()
	if !ok {
		return v.reject(ErrNotLoaded)
	}

	current.Name = strings.TrimSpace(name)
	current.Description = description
	return v.submit(func(ctx context.Context) error {
		return errOf(v.uc.UpdateTaskList.Execute(ctx, current))
	}, func() {
		v.mu.Lock()
		v.saved = true
		v.mu.Unlock()
	})
}

// Saved reports whether a submit succeeded
func (v *EditTaskList) Saved() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.saved
}
