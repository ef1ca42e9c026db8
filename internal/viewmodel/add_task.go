package viewmodel

import (
	"context"
	"strings"

	"github.com/thenoetrevino/todometer/internal/types"
	"github.com/thenoetrevino/todometer/internal/usecase"
)

// AddTask inserts the task described by its form into the selected task list
type AddTask struct {
	*scope
	uc      *usecase.UseCases
	Form    *AddTaskForm
	created types.TaskID
}

func NewAddTask(ctx context.Context, uc *usecase.UseCases) *AddTask {
	return &AddTask{scope: newScope(ctx), uc: uc, Form: NewAddTaskForm()}
}

// Submit validates the form and inserts the task with its checklist
func (v *AddTask) Submit() bool {
	if !v.Form.CanSubmit() {
		return v.reject(ErrEmptyTitle)
	}

	title := strings.TrimSpace(v.Form.Title)
	tag := v.Form.Tag
	description := v.Form.DescriptionOrNil()
	dueDate := v.Form.DueDate()
	checklist := v.Form.checklistToSave()

	var id types.TaskID
	return v.submit(func(ctx context.Context) error {
		var err error
		id, err = v.uc.InsertTaskInTaskListSelected.Execute(ctx, title, tag, description, dueDate, checklist).Unwrap()
		return err
	}, func() {
		v.mu.Lock()
		v.created = id
		v.mu.Unlock()
	})
}

// Created returns the id of the inserted task once the submit succeeded
func (v *AddTask) Created() (types.TaskID, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.created, v.created != ""
}
