package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/todometer/internal/app"
	"github.com/thenoetrevino/todometer/internal/testutil"
	"github.com/thenoetrevino/todometer/internal/types"
)

func setup(t *testing.T) (*Server, types.TaskListID) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	a := app.New(db)
	t.Cleanup(func() { _ = a.Close() })
	return New(a.UseCases, nil), testutil.DefaultTaskListID(t, db)
}

func do(t *testing.T, s *Server, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createTask(t *testing.T, s *Server, req CreateTaskRequest) string {
	t.Helper()
	resp := do(t, s, http.MethodPost, "/api/v1/tasks", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[IDResponse](t, resp).ID
}

func TestHealth(t *testing.T) {
	s, _ := setup(t)
	resp := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decode[HealthResponse](t, resp).Status)
}

func TestTaskLists_CRUD(t *testing.T) {
	s, defaultID := setup(t)

	resp := do(t, s, http.MethodPost, "/api/v1/task-lists", CreateTaskListRequest{Name: "Groceries", Description: "weekly"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[IDResponse](t, resp).ID

	resp = do(t, s, http.MethodGet, "/api/v1/task-lists", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lists := decode[[]TaskListResponse](t, resp)
	require.Len(t, lists, 2)
	assert.ElementsMatch(t, []string{defaultID.String(), id}, []string{lists[0].ID, lists[1].ID})

	resp = do(t, s, http.MethodPut, "/api/v1/task-lists/"+id, UpdateTaskListRequest{Name: "Food"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, s, http.MethodDelete, "/api/v1/task-lists/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, s, http.MethodDelete, "/api/v1/task-lists/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTaskLists_Validation(t *testing.T) {
	s, defaultID := setup(t)

	resp := do(t, s, http.MethodPost, "/api/v1/task-lists", CreateTaskListRequest{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_error", decode[ErrorResponse](t, resp).Error)

	resp = do(t, s, http.MethodPut, "/api/v1/task-lists/"+defaultID.String(), UpdateTaskListRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, s, http.MethodPut, "/api/v1/task-lists/"+types.NewTaskListID().String(), UpdateTaskListRequest{Name: "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSelectedTaskList(t *testing.T) {
	s, defaultID := setup(t)

	resp := do(t, s, http.MethodGet, "/api/v1/selected-task-list", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, defaultID.String(), decode[TaskListResponse](t, resp).ID)

	resp = do(t, s, http.MethodPost, "/api/v1/task-lists", CreateTaskListRequest{Name: "Work"})
	id := decode[IDResponse](t, resp).ID

	resp = do(t, s, http.MethodPut, "/api/v1/selected-task-list", SelectTaskListRequest{ID: id})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	createTask(t, s, CreateTaskRequest{Title: "Goes to work"})

	resp = do(t, s, http.MethodGet, "/api/v1/selected-task-list/tasks", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tasks := decode[[]TaskResponse](t, resp)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Goes to work", tasks[0].Title)
	assert.Equal(t, id, tasks[0].TaskListID)

	resp = do(t, s, http.MethodPut, "/api/v1/selected-task-list", SelectTaskListRequest{ID: types.NewTaskListID().String()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTasks_CreateAndGet(t *testing.T) {
	s, defaultID := setup(t)

	desc := "two liters"
	id := createTask(t, s, CreateTaskRequest{
		Title:       "Milk",
		Description: &desc,
		Tag:         "teal",
		TaskListID:  defaultID.String(),
		Checklist:   []string{"check fridge", "buy"},
	})

	resp := do(t, s, http.MethodGet, "/api/v1/tasks/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[TaskDetailResponse](t, resp)
	assert.Equal(t, "Milk", detail.Title)
	assert.Equal(t, "teal", detail.Tag)
	assert.Equal(t, "open", detail.State)
	require.NotNil(t, detail.Description)
	assert.Equal(t, desc, *detail.Description)
	require.Len(t, detail.Checklist, 2)

	resp = do(t, s, http.MethodGet, "/api/v1/task-lists/"+defaultID.String()+"/tasks", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]TaskResponse](t, resp), 1)
}

func TestTasks_DefaultTag(t *testing.T) {
	s, _ := setup(t)
	id := createTask(t, s, CreateTaskRequest{Title: "Untagged"})

	resp := do(t, s, http.MethodGet, "/api/v1/tasks/"+id, nil)
	assert.Equal(t, "gray", decode[TaskDetailResponse](t, resp).Tag)
}

func TestTasks_Validation(t *testing.T) {
	s, _ := setup(t)

	resp := do(t, s, http.MethodPost, "/api/v1/tasks", CreateTaskRequest{Title: ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, s, http.MethodPost, "/api/v1/tasks", CreateTaskRequest{Title: "x", Tag: "magenta"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, s, http.MethodPost, "/api/v1/tasks", CreateTaskRequest{Title: "x", TaskListID: types.NewTaskListID().String()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	raw, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = raw.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestTasks_UpdateKeepsState(t *testing.T) {
	s, _ := setup(t)
	id := createTask(t, s, CreateTaskRequest{Title: "Draft"})

	resp := do(t, s, http.MethodPut, "/api/v1/tasks/"+id+"/state", SetTaskStateRequest{State: "done"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, s, http.MethodPut, "/api/v1/tasks/"+id, UpdateTaskRequest{Title: "Final", Tag: "red"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, s, http.MethodGet, "/api/v1/tasks/"+id, nil)
	detail := decode[TaskDetailResponse](t, resp)
	assert.Equal(t, "Final", detail.Title)
	assert.Equal(t, "red", detail.Tag)
	assert.Equal(t, "done", detail.State)
}

func TestTasks_StateAndDelete(t *testing.T) {
	s, _ := setup(t)
	id := createTask(t, s, CreateTaskRequest{Title: "Task"})

	resp := do(t, s, http.MethodPut, "/api/v1/tasks/"+id+"/state", SetTaskStateRequest{State: "blocked"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, s, http.MethodPut, "/api/v1/tasks/"+id+"/state", SetTaskStateRequest{State: "in-progress"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, s, http.MethodGet, "/api/v1/tasks/"+id, nil)
	assert.Equal(t, "in_progress", decode[TaskDetailResponse](t, resp).State)

	resp = do(t, s, http.MethodDelete, "/api/v1/tasks/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, s, http.MethodGet, "/api/v1/tasks/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", decode[ErrorResponse](t, resp).Error)

	resp = do(t, s, http.MethodPut, "/api/v1/tasks/"+id+"/state", SetTaskStateRequest{State: "done"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChecklistItems(t *testing.T) {
	s, _ := setup(t)
	taskID := createTask(t, s, CreateTaskRequest{Title: "Trip"})

	resp := do(t, s, http.MethodPost, "/api/v1/tasks/"+taskID+"/checklist", AddChecklistItemsRequest{Texts: []string{"passport", " ", "tickets"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ids := decode[IDsResponse](t, resp).IDs
	require.Len(t, ids, 2)

	resp = do(t, s, http.MethodPut, "/api/v1/checklist-items/"+ids[0], SetChecklistItemRequest{Checked: true})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, s, http.MethodGet, "/api/v1/tasks/"+taskID, nil)
	detail := decode[TaskDetailResponse](t, resp)
	assert.Equal(t, "in_progress", detail.EffectiveState)
	checked := 0
	for _, item := range detail.Checklist {
		if item.Checked {
			checked++
		}
	}
	assert.Equal(t, 1, checked)

	resp = do(t, s, http.MethodDelete, "/api/v1/checklist-items/"+ids[1], nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, s, http.MethodDelete, "/api/v1/checklist-items/"+ids[1], nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, s, http.MethodPost, "/api/v1/tasks/"+taskID+"/checklist", AddChecklistItemsRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, s, http.MethodPost, "/api/v1/tasks/"+types.NewTaskID().String()+"/checklist", AddChecklistItemsRequest{Texts: []string{"x"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := setup(t)
	resp := do(t, s, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
