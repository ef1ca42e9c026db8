package types

import "github.com/google/uuid"

// ID types give semantic meaning to the string identifiers stored in the
// database. Every identifier is a UUID assigned once at insert time.

// TaskListID identifies a task list
type TaskListID string

// TaskID identifies a task within a task list
type TaskID string

// ChecklistItemID identifies a checklist item within a task
type ChecklistItemID string

// NewTaskListID generates a fresh task list identifier
func NewTaskListID() TaskListID {
	return TaskListID(uuid.NewString())
}

// NewTaskID generates a fresh task identifier
func NewTaskID() TaskID {
	return TaskID(uuid.NewString())
}

// NewChecklistItemID generates a fresh checklist item identifier
func NewChecklistItemID() ChecklistItemID {
	return ChecklistItemID(uuid.NewString())
}

func (id TaskListID) String() string {
	return string(id)
}

func (id TaskID) String() string {
	return string(id)
}

func (id ChecklistItemID) String() string {
	return string(id)
}

// IsValid reports whether the identifier parses as a UUID
func IsValid[T ~string](id T) bool {
	_, err := uuid.Parse(string(id))
	return err == nil
}
