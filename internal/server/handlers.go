package server

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

// listTaskLists handles GET /api/v1/task-lists
func (s *Server) listTaskLists(c *fiber.Ctx) error {
	lists, err := repository.Once(c.UserContext(), s.uc.GetTaskLists.Execute).Unwrap()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(mapSlice(lists, toTaskListResponse))
}

// createTaskList handles POST /api/v1/task-lists
func (s *Server) createTaskList(c *fiber.Ctx) error {
	var req CreateTaskListRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "validation_error", "Name is required")
	}

	id, err := s.uc.InsertTaskList.Execute(c.UserContext(), req.Name, req.Description).Unwrap()
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(IDResponse{ID: id.String()})
}

// updateTaskList handles PUT /api/v1/task-lists/:id
func (s *Server) updateTaskList(c *fiber.Ctx) error {
	var req UpdateTaskListRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "validation_error", "Name is required")
	}

	list := models.TaskList{
		ID:          types.TaskListID(c.Params("id")),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.uc.UpdateTaskList.Execute(c.UserContext(), list).Err(); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// deleteTaskList handles DELETE /api/v1/task-lists/:id
func (s *Server) deleteTaskList(c *fiber.Ctx) error {
	return s.noContent(c, s.uc.DeleteTaskList.Execute(c.UserContext(), types.TaskListID(c.Params("id"))))
}

// listTasks handles GET /api/v1/task-lists/:id/tasks
func (s *Server) listTasks(c *fiber.Ctx) error {
	id := types.TaskListID(c.Params("id"))
	tasks, err := repository.Once(c.UserContext(), func(ctx context.Context) <-chan result.Result[[]models.Task] {
		return s.uc.GetTasks.Execute(ctx, id)
	}).Unwrap()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(mapSlice(tasks, toTaskResponse))
}

// getSelectedTaskList handles GET /api/v1/selected-task-list
func (s *Server) getSelectedTaskList(c *fiber.Ctx) error {
	list, err := repository.Once(c.UserContext(), s.uc.GetTaskListSelected.Execute).Unwrap()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(toTaskListResponse(list))
}

// selectTaskList handles PUT /api/v1/selected-task-list
func (s *Server) selectTaskList(c *fiber.Ctx) error {
	var req SelectTaskListRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if req.ID == "" {
		return badRequest(c, "validation_error", "Task list ID is required")
	}
	return s.noContent(c, s.uc.SetTaskListSelected.Execute(c.UserContext(), types.TaskListID(req.ID)))
}

// listSelectedTasks handles GET /api/v1/selected-task-list/tasks
func (s *Server) listSelectedTasks(c *fiber.Ctx) error {
	tasks, err := repository.Once(c.UserContext(), s.uc.GetTaskListSelectedTasks.Execute).Unwrap()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(mapSlice(tasks, toTaskResponse))
}

// createTask handles POST /api/v1/tasks
func (s *Server) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return badRequest(c, "validation_error", "Title is required")
	}
	tag, ok := parseTag(req.Tag)
	if !ok {
		return badRequest(c, "validation_error", "Unknown tag "+req.Tag)
	}

	ctx := c.UserContext()
	var r result.Result[types.TaskID]
	if req.TaskListID == "" {
		r = s.uc.InsertTaskInTaskListSelected.Execute(ctx, req.Title, tag, req.Description, req.DueDate, req.Checklist)
	} else {
		r = s.uc.InsertTaskWithChecklist.Execute(ctx, repository.TaskInput{
			Title:       req.Title,
			Tag:         tag,
			Description: req.Description,
			DueDate:     req.DueDate,
			TaskListID:  types.TaskListID(req.TaskListID),
			Checklist:   req.Checklist,
		})
	}

	id, err := r.Unwrap()
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(IDResponse{ID: id.String()})
}

// getTask handles GET /api/v1/tasks/:id
func (s *Server) getTask(c *fiber.Ctx) error {
	detail, err := s.taskDetail(c.UserContext(), types.TaskID(c.Params("id")))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(toTaskDetailResponse(detail))
}

// updateTask handles PUT /api/v1/tasks/:id. State and task list are kept.
func (s *Server) updateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return badRequest(c, "validation_error", "Title is required")
	}
	tag, ok := parseTag(req.Tag)
	if !ok {
		return badRequest(c, "validation_error", "Unknown tag "+req.Tag)
	}

	ctx := c.UserContext()
	detail, err := s.taskDetail(ctx, types.TaskID(c.Params("id")))
	if err != nil {
		return s.fail(c, err)
	}

	task := detail.Task
	task.Title = req.Title
	task.Description = req.Description
	task.DueDate = req.DueDate
	if tag != "" {
		task.Tag = tag
	}
	return s.noContent(c, s.uc.UpdateTask.Execute(ctx, task))
}

// setTaskState handles PUT /api/v1/tasks/:id/state
func (s *Server) setTaskState(c *fiber.Ctx) error {
	var req SetTaskStateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	state, ok := models.ParseTaskState(req.State)
	if !ok {
		return badRequest(c, "validation_error", "State must be one of open, in_progress, done")
	}

	ctx := c.UserContext()
	id := types.TaskID(c.Params("id"))
	switch state {
	case models.TaskStateDone:
		return s.noContent(c, s.uc.SetTaskDone.Execute(ctx, id))
	case models.TaskStateInProgress:
		return s.noContent(c, s.uc.SetTaskInProgress.Execute(ctx, id))
	default:
		return s.noContent(c, s.uc.SetTaskOpen.Execute(ctx, id))
	}
}

// deleteTask handles DELETE /api/v1/tasks/:id
func (s *Server) deleteTask(c *fiber.Ctx) error {
	return s.noContent(c, s.uc.DeleteTask.Execute(c.UserContext(), types.TaskID(c.Params("id"))))
}

// addChecklistItems handles POST /api/v1/tasks/:id/checklist
func (s *Server) addChecklistItems(c *fiber.Ctx) error {
	var req AddChecklistItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	texts := make([]string, 0, len(req.Texts))
	for _, text := range req.Texts {
		if strings.TrimSpace(text) != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return badRequest(c, "validation_error", "At least one checklist item text is required")
	}

	ids, err := s.uc.InsertTaskChecklistItems.Execute(c.UserContext(), types.TaskID(c.Params("id")), texts...).Unwrap()
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(IDsResponse{IDs: mapSlice(ids, types.ChecklistItemID.String)})
}

// setChecklistItem handles PUT /api/v1/checklist-items/:id
func (s *Server) setChecklistItem(c *fiber.Ctx) error {
	var req SetChecklistItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}

	ctx := c.UserContext()
	id := types.ChecklistItemID(c.Params("id"))
	if req.Checked {
		return s.noContent(c, s.uc.SetTaskChecklistItemChecked.Execute(ctx, id))
	}
	return s.noContent(c, s.uc.SetTaskChecklistItemUnchecked.Execute(ctx, id))
}

// deleteChecklistItem handles DELETE /api/v1/checklist-items/:id
func (s *Server) deleteChecklistItem(c *fiber.Ctx) error {
	return s.noContent(c, s.uc.DeleteTaskChecklistItem.Execute(c.UserContext(), types.ChecklistItemID(c.Params("id"))))
}

func (s *Server) taskDetail(ctx context.Context, id types.TaskID) (models.TaskDetail, error) {
	return repository.Once(ctx, func(ctx context.Context) <-chan result.Result[models.TaskDetail] {
		return s.uc.GetTask.Execute(ctx, id)
	}).Unwrap()
}

func (s *Server) noContent(c *fiber.Ctx, r result.Result[result.Unit]) error {
	if err := r.Err(); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseTag accepts an empty tag as "not given"
func parseTag(s string) (models.Tag, bool) {
	if strings.TrimSpace(s) == "" {
		return "", true
	}
	return models.ParseTag(s)
}
