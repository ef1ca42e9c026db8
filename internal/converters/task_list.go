package converters

import (
	"github.com/thenoetrevino/todometer/internal/database/generated"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/types"
)

// TaskListToModel converts a generated.TaskList to models.TaskList
func TaskListToModel(tl generated.TaskList) models.TaskList {
	return models.TaskList{
		ID:          types.TaskListID(tl.ID),
		Name:        tl.Name,
		Description: tl.Description,
		CreatedAt:   NullTimeToTime(tl.CreatedAt),
		UpdatedAt:   NullTimeToTime(tl.UpdatedAt),
	}
}

// TaskListsToModels converts a slice of generated.TaskList; the result is never nil
func TaskListsToModels(rows []generated.TaskList) []models.TaskList {
	result := make([]models.TaskList, 0, len(rows))
	for _, row := range rows {
		result = append(result, TaskListToModel(row))
	}
	return result
}
