package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

// Validation errors
var (
	ErrEmptyTitle = errors.New("title must not be empty")
	ErrEmptyName  = errors.New("name must not be empty")
)

// dateLayouts are the accepted --due formats, tried in order
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ExactArgs is cobra.ExactArgs with the usage exit code
func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return Exit(ExitUsage, err)
		}
		return nil
	}
}

// RequireTitle validates a task title
func RequireTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return Exit(ExitValidation, ErrEmptyTitle)
	}
	return nil
}

// RequireName validates a task list name
func RequireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return Exit(ExitValidation, ErrEmptyName)
	}
	return nil
}

// ParseTag resolves a --tag value; empty selects fallback
func ParseTag(s string, fallback models.Tag) (models.Tag, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	tag, ok := models.ParseTag(s)
	if !ok {
		names := make([]string, 0, len(models.Tags()))
		for _, t := range models.Tags() {
			names = append(names, t.String())
		}
		return "", Exit(ExitValidation, fmt.Errorf("invalid tag '%s' (must be one of: %s)", s, strings.Join(names, ", ")))
	}
	return tag, nil
}

// ParseState resolves a task state name
func ParseState(s string) (models.TaskState, error) {
	state, ok := models.ParseTaskState(s)
	if !ok {
		return "", Exit(ExitValidation, fmt.Errorf("invalid state '%s' (must be: open, in_progress, done)", s))
	}
	return state, nil
}

// ParseDueDate parses a --due value in UTC. Empty means no due date.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, Exit(ExitDataErr, fmt.Errorf("invalid due date '%s' (use YYYY-MM-DD or YYYY-MM-DD HH:MM)", s))
}

// ReadDescription returns value, reading it from the command's stdin when it is "-"
func ReadDescription(cmd *cobra.Command, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", Exit(ExitDataErr, fmt.Errorf("failed to read description from stdin: %w", err))
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// OptionalString returns nil for an empty string
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ResolveTaskList finds a task list by id or case-insensitive name. An empty
// ref resolves to the selected task list.
func ResolveTaskList(ctx context.Context, c *CLI, ref string) (models.TaskList, error) {
	uc := c.App.UseCases
	if strings.TrimSpace(ref) == "" {
		return repository.Once(ctx, uc.GetTaskListSelected.Execute).Unwrap()
	}

	lists, err := repository.Once(ctx, uc.GetTaskLists.Execute).Unwrap()
	if err != nil {
		return models.TaskList{}, err
	}
	for _, l := range lists {
		if l.ID == types.TaskListID(ref) {
			return l, nil
		}
	}
	for _, l := range lists {
		if strings.EqualFold(l.Name, ref) {
			return l, nil
		}
	}
	return models.TaskList{}, fmt.Errorf("%w: %s", repository.ErrTaskListNotFound, ref)
}

// GetTaskDetail reads a task and its checklist once
func GetTaskDetail(ctx context.Context, c *CLI, id types.TaskID) (models.TaskDetail, error) {
	return repository.Once(ctx, func(ctx context.Context) <-chan result.Result[models.TaskDetail] {
		return c.App.UseCases.GetTask.Execute(ctx, id)
	}).Unwrap()
}
