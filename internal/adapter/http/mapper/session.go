package mapper

import (
	"time"

	"taskpulse/internal/adapter/http/dto"
	"taskpulse/internal/core/domain"
)

func ToSessionItem(entry domain.TimeLogEntry) dto.SessionItem {
	item := dto.SessionItem{
		ID:              entry.ID,
		UserID:          entry.UserID,
		TaskID:          entry.TaskID,
		SubtaskID:       entry.SubtaskID,
		StartedAt:       entry.StartedAt.Format(time.RFC3339),
		DurationMinutes: entry.DurationMinutes,
		Note:            entry.Note,
	}

	if entry.EndedAt != nil {
		value := entry.EndedAt.Format(time.RFC3339)
		item.EndedAt = &value
	}

	return item
}

func ToSessionItems(entries []domain.TimeLogEntry) []dto.SessionItem {
	items := make([]dto.SessionItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ToSessionItem(entry))
	}
	return items
}

func ToStopSessionResponse(result domain.StopResult) dto.StopSessionResponse {
	return dto.StopSessionResponse{
		DurationMinutes:   result.DurationMinutes,
		FormattedDuration: result.FormattedDuration(),
		CascadedCount:     result.CascadedCount,
	}
}

func ToHoursSummary(summary domain.HoursSummary) dto.HoursSummary {
	return dto.HoursSummary{
		TotalMinutes: summary.TotalMinutes,
		SessionCount: summary.SessionCount,
	}
}
