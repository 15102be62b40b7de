package mapper

import (
	"time"

	"taskpulse/internal/adapter/http/dto"
	"taskpulse/internal/core/domain"
)

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:             task.ID,
		BoardID:        task.BoardID,
		Title:          task.Title,
		Status:         string(task.Status),
		Priority:       task.Priority,
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		CreatedAt:      task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      task.UpdatedAt.Format(time.RFC3339),
	}

	if task.DueDate != nil {
		value := task.DueDate.Format("2006-01-02")
		item.DueDate = &value
	}

	return item
}

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToSubtaskItem(subtask domain.Subtask) dto.SubtaskItem {
	return dto.SubtaskItem{
		ID:             subtask.ID,
		TaskID:         subtask.TaskID,
		Title:          subtask.Title,
		Status:         string(subtask.Status),
		EstimatedHours: subtask.EstimatedHours,
		ActualHours:    subtask.ActualHours,
		CreatedAt:      subtask.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      subtask.UpdatedAt.Format(time.RFC3339),
	}
}

func ToSubtaskItems(subtasks []domain.Subtask) []dto.SubtaskItem {
	items := make([]dto.SubtaskItem, 0, len(subtasks))
	for _, subtask := range subtasks {
		items = append(items, ToSubtaskItem(subtask))
	}
	return items
}
