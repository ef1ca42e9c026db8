// Package converters provides type-safe conversion between
// database rows (from SQLC) and domain models.
//
// All conversions handle:
// - NULL database values (sql.Null* types)
// - enumerations stored by name (tag, task state, checklist state)
// - due dates stored as epoch milliseconds
//
// Unknown stored names never fail a read: an unknown tag maps to
// TagUnspecified and an unknown state maps to the state's default.
//
// Example usage:
//
//	task := converters.TaskToModel(row)
//	params.DueDate = converters.DueDateToNull(task.DueDate)
package converters

import (
	"database/sql"
	"time"

	"github.com/thenoetrevino/todometer/internal/database/generated"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/types"
)

// TaskToModel converts a generated.Task to models.Task.
//
// Handles NULL values for optional fields:
// - description (sql.NullString) becomes a nil pointer
// - due_date (sql.NullInt64) becomes a nil pointer
// - created_at, updated_at (sql.NullTime) become the zero time
func TaskToModel(t generated.Task) models.Task {
	return models.Task{
		ID:          types.TaskID(t.ID),
		Title:       t.Title,
		Description: NullToDescription(t.Description),
		Tag:         TagFromDB(t.Tag),
		DueDate:     NullToDueDate(t.DueDate),
		State:       TaskStateFromDB(t.State),
		TaskListID:  types.TaskListID(t.TaskListID),
		CreatedAt:   NullTimeToTime(t.CreatedAt),
		UpdatedAt:   NullTimeToTime(t.UpdatedAt),
	}
}

// TasksToModels converts a slice of generated.Task; the result is never nil
func TasksToModels(rows []generated.Task) []models.Task {
	result := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		result = append(result, TaskToModel(row))
	}
	return result
}

// TagFromDB resolves a stored tag name
func TagFromDB(name string) models.Tag {
	tag, ok := models.ParseTag(name)
	if !ok {
		return models.TagUnspecified
	}
	return tag
}

// TagToDB returns the stored name of tag. An empty tag is stored as the
// default and an unknown one as TagUnspecified.
func TagToDB(tag models.Tag) string {
	known, _ := models.ParseTag(string(tag.OrDefault()))
	return string(known)
}

// TaskStateFromDB resolves a stored task state name
func TaskStateFromDB(name string) models.TaskState {
	state, _ := models.ParseTaskState(name)
	return state
}

// TaskStateToDB returns the stored name of state; unknown states are stored as open
func TaskStateToDB(state models.TaskState) string {
	known, _ := models.ParseTaskState(string(state.OrDefault()))
	return string(known)
}

// DescriptionToNull maps an optional description to a nullable column
func DescriptionToNull(description *string) sql.NullString {
	if description == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *description, Valid: true}
}

// NullToDescription maps a nullable column to an optional description
func NullToDescription(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// DueDateToNull stores a due date as epoch milliseconds
func DueDateToNull(due *time.Time) sql.NullInt64 {
	if due == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: due.UnixMilli(), Valid: true}
}

// NullToDueDate reads epoch milliseconds back as a UTC time
func NullToDueDate(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.UnixMilli(n.Int64).UTC()
	return &t
}

// NullTimeToTime returns the zero time for NULL
func NullTimeToTime(nt sql.NullTime) time.Time {
	if nt.Valid {
		return nt.Time
	}
	return time.Time{}
}
