package models

import (
	"strings"
	"time"

	"github.com/thenoetrevino/todometer/internal/types"
)

// TaskState is the progress of a task
type TaskState string

const (
	TaskStateOpen       TaskState = "OPEN"
	TaskStateInProgress TaskState = "IN_PROGRESS"
	TaskStateDone       TaskState = "DONE"
)

// ParseTaskState resolves a state name; "in-progress" and "doing" are accepted aliases
func ParseTaskState(s string) (TaskState, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "todo":
		return TaskStateOpen, true
	case "in_progress", "in-progress", "doing":
		return TaskStateInProgress, true
	case "done":
		return TaskStateDone, true
	}
	return TaskStateOpen, false
}

// OrDefault returns TaskStateOpen when s was not given
func (s TaskState) OrDefault() TaskState {
	if s == "" {
		return TaskStateOpen
	}
	return s
}

func (s TaskState) String() string {
	return strings.ToLower(string(s))
}

// TaskList is a named collection of tasks
type TaskList struct {
	ID          types.TaskListID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Task is a single actionable item owned by exactly one task list
type Task struct {
	ID          types.TaskID
	Title       string
	Description *string
	Tag         Tag
	DueDate     *time.Time
	State       TaskState
	TaskListID  types.TaskListID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue reports whether the task is not done and its due date is before now
func (t Task) IsOverdue(now time.Time) bool {
	return t.State != TaskStateDone && t.DueDate != nil && t.DueDate.Before(now)
}

// Clone returns a deep copy so snapshots handed to observers stay immutable
func (t Task) Clone() Task {
	c := t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return c
}

// ChecklistItemState is whether a checklist item has been checked off
type ChecklistItemState string

const (
	ChecklistItemUnchecked ChecklistItemState = "UNCHECKED"
	ChecklistItemChecked   ChecklistItemState = "CHECKED"
)

// Toggle flips the state
func (s ChecklistItemState) Toggle() ChecklistItemState {
	if s == ChecklistItemChecked {
		return ChecklistItemUnchecked
	}
	return ChecklistItemChecked
}

// TaskChecklistItem is a completable step inside a task
type TaskChecklistItem struct {
	ID     types.ChecklistItemID
	Text   string
	State  ChecklistItemState
	TaskID types.TaskID
}

// TaskDetail is a task together with its checklist
type TaskDetail struct {
	Task      Task
	Checklist []TaskChecklistItem
}

// Progress returns the number of checked items and the checklist size
func (d TaskDetail) Progress() (checked, total int) {
	for _, item := range d.Checklist {
		if item.State == ChecklistItemChecked {
			checked++
		}
	}
	return checked, len(d.Checklist)
}

// EffectiveState infers progress from the checklist: a task that is not done
// but has at least one checked item is in progress.
func (d TaskDetail) EffectiveState() TaskState {
	if d.Task.State == TaskStateDone {
		return TaskStateDone
	}
	if checked, _ := d.Progress(); checked > 0 {
		return TaskStateInProgress
	}
	return d.Task.State
}
