package server

import (
	"time"

	"github.com/thenoetrevino/todometer/internal/models"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// CreateTaskListRequest is the body of POST /api/v1/task-lists
type CreateTaskListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateTaskListRequest is the body of PUT /api/v1/task-lists/:id
type UpdateTaskListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SelectTaskListRequest is the body of PUT /api/v1/selected-task-list
type SelectTaskListRequest struct {
	ID string `json:"id"`
}

// CreateTaskRequest is the body of POST /api/v1/tasks. Without a task list
// id the task goes to the selected list.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Tag         string     `json:"tag"`
	DueDate     *time.Time `json:"due_date"`
	TaskListID  string     `json:"task_list_id"`
	Checklist   []string   `json:"checklist"`
}

// UpdateTaskRequest is the body of PUT /api/v1/tasks/:id
type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Tag         string     `json:"tag"`
	DueDate     *time.Time `json:"due_date"`
}

// SetTaskStateRequest is the body of PUT /api/v1/tasks/:id/state
type SetTaskStateRequest struct {
	State string `json:"state"`
}

// AddChecklistItemsRequest is the body of POST /api/v1/tasks/:id/checklist
type AddChecklistItemsRequest struct {
	Texts []string `json:"texts"`
}

// SetChecklistItemRequest is the body of PUT /api/v1/checklist-items/:id
type SetChecklistItemRequest struct {
	Checked bool `json:"checked"`
}

// IDResponse is returned by create endpoints
type IDResponse struct {
	ID string `json:"id"`
}

// IDsResponse is returned when several rows are created at once
type IDsResponse struct {
	IDs []string `json:"ids"`
}

type TaskListResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Tag         string     `json:"tag"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	State       string     `json:"state"`
	TaskListID  string     `json:"task_list_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ChecklistItemResponse struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type TaskDetailResponse struct {
	TaskResponse
	EffectiveState string                  `json:"effective_state"`
	Checklist      []ChecklistItemResponse `json:"checklist"`
}

func toTaskListResponse(l models.TaskList) TaskListResponse {
	return TaskListResponse{
		ID:          l.ID.String(),
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toTaskResponse(t models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Tag:         t.Tag.String(),
		DueDate:     t.DueDate,
		State:       t.State.String(),
		TaskListID:  t.TaskListID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toChecklistResponse(items []models.TaskChecklistItem) []ChecklistItemResponse {
	out := make([]ChecklistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ChecklistItemResponse{
			ID:      item.ID.String(),
			Text:    item.Text,
			Checked: item.State == models.ChecklistItemChecked,
		})
	}
	return out
}

func toTaskDetailResponse(d models.TaskDetail) TaskDetailResponse {
	return TaskDetailResponse{
		TaskResponse:   toTaskResponse(d.Task),
		EffectiveState: d.EffectiveState().String(),
		Checklist:      toChecklistResponse(d.Checklist),
	}
}

func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
