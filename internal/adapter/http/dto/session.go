package dto

type StartSessionRequest struct {
	TaskID    uint64  `json:"task_id" binding:"required,gt=0"`
	SubtaskID *uint64 `json:"subtask_id" binding:"omitempty,gt=0"`
}

type StopSessionRequest struct {
	Note *string `json:"note" binding:"omitempty,max=1024"`
}

type SessionItem struct {
	ID              uint64  `json:"id"`
	UserID          uint64  `json:"user_id"`
	TaskID          uint64  `json:"task_id"`
	SubtaskID       *uint64 `json:"subtask_id,omitempty"`
	StartedAt       string  `json:"started_at"`
	EndedAt         *string `json:"ended_at,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Note            *string `json:"note,omitempty"`
}

type StopSessionResponse struct {
	DurationMinutes   int    `json:"duration_minutes"`
	FormattedDuration string `json:"formatted_duration"`
	CascadedCount     int    `json:"cascaded_count"`
}

type HoursSummary struct {
	TotalMinutes int `json:"total_minutes"`
	SessionCount int `json:"session_count"`
}
