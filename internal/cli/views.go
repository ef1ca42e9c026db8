package cli

import (
	"time"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/types"
)

// TaskListView is the JSON shape of a task list
type TaskListView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

func (v TaskListView) GetID() string { return v.ID }

// TaskView is the JSON shape of a task
type TaskView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Tag         string     `json:"tag"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	State       string     `json:"state"`
	TaskListID  string     `json:"task_list_id"`
}

func (v TaskView) GetID() string { return v.ID }

// ChecklistItemView is the JSON shape of a checklist item
type ChecklistItemView struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

func (v ChecklistItemView) GetID() string { return v.ID }

// TaskDetailView is a task with its checklist and progress
type TaskDetailView struct {
	TaskView
	EffectiveState string              `json:"effective_state"`
	Checked        int                 `json:"checked"`
	Total          int                 `json:"total"`
	Checklist      []ChecklistItemView `json:"checklist"`
}

// IDView is returned by commands that only produce an id
type IDView struct {
	ID string `json:"id"`
}

func (v IDView) GetID() string { return v.ID }

func NewTaskListView(l models.TaskList, selected types.TaskListID) TaskListView {
	return TaskListView{
		ID:          l.ID.String(),
		Name:        l.Name,
		Description: l.Description,
		Selected:    l.ID == selected,
	}
}

func NewTaskView(t models.Task) TaskView {
	return TaskView{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Tag:         t.Tag.String(),
		DueDate:     t.DueDate,
		State:       t.State.String(),
		TaskListID:  t.TaskListID.String(),
	}
}

func NewTaskViews(tasks []models.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewTaskView(t))
	}
	return views
}

func NewChecklistItemViews(items []models.TaskChecklistItem) []ChecklistItemView {
	views := make([]ChecklistItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ChecklistItemView{
			ID:      item.ID.String(),
			Text:    item.Text,
			Checked: item.State == models.ChecklistItemChecked,
		})
	}
	return views
}

func NewTaskDetailView(d models.TaskDetail) TaskDetailView {
	checked, total := d.Progress()
	return TaskDetailView{
		TaskView:       NewTaskView(d.Task),
		EffectiveState: d.EffectiveState().String(),
		Checked:        checked,
		Total:          total,
		Checklist:      NewChecklistItemViews(d.Checklist),
	}
}
