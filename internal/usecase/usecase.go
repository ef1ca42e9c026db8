// Package usecase holds one type per application operation. Each Execute
// delegates to a single repository call and hands its Result back untouched;
// the only logic added is substituting defaults for parameters that were not
// given.
package usecase

import (
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/repository"
)

// UseCases bundles every use-case over one repository
type UseCases struct {
	InsertTask                   *InsertTask
	InsertTaskInTaskListSelected *InsertTaskInTaskListSelected
	InsertTaskWithChecklist      *InsertTaskWithChecklist
	UpdateTask                   *UpdateTask
	SetTaskDone                  *SetTaskDone
	SetTaskOpen                  *SetTaskOpen
	SetTaskInProgress            *SetTaskInProgress
	DeleteTask                   *DeleteTask
	GetTask                      *GetTask
	GetTasks                     *GetTasks
	GetTaskListSelectedTasks     *GetTaskListSelectedTasks

	InsertTaskList      *InsertTaskList
	UpdateTaskList      *UpdateTaskList
	DeleteTaskList      *DeleteTaskList
	GetTaskLists        *GetTaskLists
	GetTaskListSelected *GetTaskListSelected
	SetTaskListSelected *SetTaskListSelected

	InsertTaskChecklistItems      *InsertTaskChecklistItems
	SetTaskChecklistItemChecked   *SetTaskChecklistItemChecked
	SetTaskChecklistItemUnchecked *SetTaskChecklistItemUnchecked
	DeleteTaskChecklistItem       *DeleteTaskChecklistItem
	GetTaskChecklistItems         *GetTaskChecklistItems
}

// New creates every use-case over repo
func New(repo repository.Repository) *UseCases {
	return &UseCases{
		InsertTask:                   NewInsertTask(repo),
		InsertTaskInTaskListSelected: NewInsertTaskInTaskListSelected(repo),
		InsertTaskWithChecklist:      NewInsertTaskWithChecklist(repo),
		UpdateTask:                   NewUpdateTask(repo),
		SetTaskDone:                  NewSetTaskDone(repo),
		SetTaskOpen:                  NewSetTaskOpen(repo),
		SetTaskInProgress:            NewSetTaskInProgress(repo),
		DeleteTask:                   NewDeleteTask(repo),
		GetTask:                      NewGetTask(repo),
		GetTasks:                     NewGetTasks(repo),
		GetTaskListSelectedTasks:     NewGetTaskListSelectedTasks(repo),

		InsertTaskList:      NewInsertTaskList(repo),
		UpdateTaskList:      NewUpdateTaskList(repo),
		DeleteTaskList:      NewDeleteTaskList(repo),
		GetTaskLists:        NewGetTaskLists(repo),
		GetTaskListSelected: NewGetTaskListSelected(repo),
		SetTaskListSelected: NewSetTaskListSelected(repo),

		InsertTaskChecklistItems:      NewInsertTaskChecklistItems(repo),
		SetTaskChecklistItemChecked:   NewSetTaskChecklistItemChecked(repo),
		SetTaskChecklistItemUnchecked: NewSetTaskChecklistItemUnchecked(repo),
		DeleteTaskChecklistItem:       NewDeleteTaskChecklistItem(repo),
		GetTaskChecklistItems:         NewGetTaskChecklistItems(repo),
	}
}

// tagOrDefault substitutes the default tag when none was given.
// An explicit TagUnspecified is kept.
func tagOrDefault(tag models.Tag) models.Tag {
	return tag.OrDefault()
}
