package converters

import (
	"strings"

	"github.com/thenoetrevino/todometer/internal/database/generated"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/types"
)

// ChecklistItemToModel converts a generated.TaskChecklistItem to models.TaskChecklistItem
func ChecklistItemToModel(c generated.TaskChecklistItem) models.TaskChecklistItem {
	return models.TaskChecklistItem{
		ID:     types.ChecklistItemID(c.ID),
		Text:   c.Text,
		State:  ChecklistStateFromDB(c.State),
		TaskID: types.TaskID(c.TaskID),
	}
}

// ChecklistItemsToModels converts a slice of checklist rows; the result is never nil
func ChecklistItemsToModels(rows []generated.TaskChecklistItem) []models.TaskChecklistItem {
	result := make([]models.TaskChecklistItem, 0, len(rows))
	for _, row := range rows {
		result = append(result, ChecklistItemToModel(row))
	}
	return result
}

// ChecklistStateFromDB resolves a stored checklist state; anything unknown is unchecked
func ChecklistStateFromDB(name string) models.ChecklistItemState {
	if strings.EqualFold(name, string(models.ChecklistItemChecked)) {
		return models.ChecklistItemChecked
	}
	return models.ChecklistItemUnchecked
}

// ChecklistStateToDB returns the stored name of state
func ChecklistStateToDB(state models.ChecklistItemState) string {
	if state == models.ChecklistItemChecked {
		return string(models.ChecklistItemChecked)
	}
	return string(models.ChecklistItemUnchecked)
}
