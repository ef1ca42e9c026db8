package viewmodel

import (
	"strings"
	"time"

	"github.com/thenoetrevino/todometer/internal/models"
)

// AddTaskForm is the editable content of the add-task screen.
// It is owned by a single caller and not safe for concurrent use.
type AddTaskForm struct {
	Title       string
	Description string
	Tag         models.Tag

	// date is UTC midnight of the picked day; timeOfDay is added to it
	date      *time.Time
	timeOfDay time.Duration
	dueDate   *time.Time

	checklist []string

	datePickerVisible    bool
	timePickerVisible    bool
	discardDialogVisible bool
}

// NewAddTaskForm returns an empty form with the first tag selected
func NewAddTaskForm() *AddTaskForm {
	return &AddTaskForm{Tag: models.Tags()[0]}
}

// CanSubmit reports whether the title is not blank
func (f *AddTaskForm) CanSubmit() bool {
	return strings.TrimSpace(f.Title) != ""
}

// DescriptionOrNil returns nil for a blank description
func (f *AddTaskForm) DescriptionOrNil() *string {
	if strings.TrimSpace(f.Description) == "" {
		return nil
	}
	d := f.Description
	return &d
}

func (f *AddTaskForm) DueDate() *time.Time {
	if f.dueDate == nil {
		return nil
	}
	d := *f.dueDate
	return &d
}

func (f *AddTaskForm) ShowDatePicker() { f.datePickerVisible = true }
func (f *AddTaskForm) DismissDatePicker() { f.datePickerVisible = false }
func (f *AddTaskForm) DatePickerVisible() bool { return f.datePickerVisible }
func (f *AddTaskForm) ShowTimePicker() { f.timePickerVisible = true }
func (f *AddTaskForm) DismissTimePicker() { f.timePickerVisible = false }
func (f *AddTaskForm) TimePickerVisible() bool { return f.timePickerVisible }
func (f *AddTaskForm) DiscardDialogVisible() bool { return f.discardDialogVisible }
func (f *AddTaskForm) DismissDiscardDialog() { f.discardDialogVisible = false }

// ConfirmDatePicker picks the calendar day of date and recomputes the due date
func (f *AddTaskForm) ConfirmDatePicker(date time.Time) {
	f.datePickerVisible = false
	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	f.date = &midnight
	f.updateDueDate()
}

// ConfirmTimePicker picks the time of day and recomputes the due date
func (f *AddTaskForm) ConfirmTimePicker(hour, minute int) {
	f.timePickerVisible = false
	f.timeOfDay = time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
	f.updateDueDate()
}

// ClearDueDate removes the picked day and time
func (f *AddTaskForm) ClearDueDate() {
	f.date = nil
	f.timeOfDay = 0
	f.dueDate = nil
}

// the due date only exists once a day is picked
func (f *AddTaskForm) updateDueDate() {
	if f.date == nil {
		f.dueDate = nil
		return
	}
	due := f.date.Add(f.timeOfDay)
	f.dueDate = &due
}

// AddChecklistItem appends an item to the checklist being edited
func (f *AddTaskForm) AddChecklistItem(text string) {
	f.checklist = append(f.checklist, text)
}

// SetChecklistItem replaces the text at index i; out of range is ignored
func (f *AddTaskForm) SetChecklistItem(i int, text string) {
	if i >= 0 && i < len(f.checklist) {
		f.checklist[i] = text
	}
}

// RemoveChecklistItem removes the item at index i; out of range is ignored
func (f *AddTaskForm) RemoveChecklistItem(i int) {
	if i >= 0 && i < len(f.checklist) {
		f.checklist = append(f.checklist[:i], f.checklist[i+1:]...)
	}
}

func (f *AddTaskForm) Checklist() []string {
	return append([]string(nil), f.checklist...)
}

// checklistToSave drops blank items
func (f *AddTaskForm) checklistToSave() []string {
	items := make([]string, 0, len(f.checklist))
	for _, text := range f.checklist {
		if t := strings.TrimSpace(text); t != "" {
			items = append(items, t)
		}
	}
	return items
}

// Changed reports whether anything was entered
func (f *AddTaskForm) Changed() bool {
	return strings.TrimSpace(f.Title) != "" ||
		f.dueDate != nil ||
		strings.TrimSpace(f.Description) != "" ||
		len(f.checklist) > 0
}

// Back returns true when the caller may navigate away. With unsaved input it
// shows the discard dialog instead and returns false.
func (f *AddTaskForm) Back() bool {
	if f.Changed() {
		f.discardDialogVisible = true
		return false
	}
	return true
}
