package repository

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/todometer/internal/database"
)

// Not-found errors; match with errors.Is
var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrTaskListNotFound      = errors.New("task list not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
)

// IsNotFound reports whether err is any of the not-found errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrTaskListNotFound) ||
		errors.Is(err, ErrChecklistItemNotFound) ||
		errors.Is(err, database.ErrNotFound)
}

// notFoundAs replaces a storage not-found with the entity-specific sentinel,
// keeping the storage error in the chain
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
