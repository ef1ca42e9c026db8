// Package server exposes the use-cases as a JSON API over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/usecase"
)

// Server is the HTTP backend
type Server struct {
	app    *fiber.App
	uc     *usecase.UseCases
	logger *slog.Logger
}

// New builds the fiber app and registers every route
func New(uc *usecase.UseCases, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		uc:     uc,
		logger: logger,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "todometer",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.app.Use(recover.New())
	s.setupRoutes()
	return s
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown is called
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.health)

	api := s.app.Group("/api/v1")

	lists := api.Group("/task-lists")
	lists.Get("/", s.listTaskLists)
	lists.Post("/", s.createTaskList)
	lists.Put("/:id", s.updateTaskList)
	lists.Delete("/:id", s.deleteTaskList)
	lists.Get("/:id/tasks", s.listTasks)

	selected := api.Group("/selected-task-list")
	selected.Get("/", s.getSelectedTaskList)
	selected.Put("/", s.selectTaskList)
	selected.Get("/tasks", s.listSelectedTasks)

	tasks := api.Group("/tasks")
	tasks.Post("/", s.createTask)
	tasks.Get("/:id", s.getTask)
	tasks.Put("/:id", s.updateTask)
	tasks.Put("/:id/state", s.setTaskState)
	tasks.Delete("/:id", s.deleteTask)
	tasks.Post("/:id/checklist", s.addChecklistItems)

	items := api.Group("/checklist-items")
	items.Put("/:id", s.setChecklistItem)
	items.Delete("/:id", s.deleteChecklistItem)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "healthy"})
}

// fail writes the error response for a use-case error: not-found errors map
// to 404, anything else to 500
func (s *Server) fail(c *fiber.Ctx, err error) error {
	if repository.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	}
	if errors.Is(err, context.Canceled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "cancelled",
			Message: err.Error(),
		})
	}
	s.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   code,
		Message: message,
	})
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("unhandled error", "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
