package dto

type TaskItem struct {
	ID             uint64  `json:"id"`
	BoardID        uint64  `json:"board_id"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	Priority       int     `json:"priority"`
	DueDate        *string `json:"due_date,omitempty"`
	EstimatedHours float64 `json:"estimated_hours"`
	ActualHours    float64 `json:"actual_hours"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type SubtaskItem struct {
	ID             uint64  `json:"id"`
	TaskID         uint64  `json:"task_id"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	EstimatedHours float64 `json:"estimated_hours"`
	ActualHours    float64 `json:"actual_hours"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type UpdateSubtaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in_progress done"`
}

type UpdateSubtaskStatusResponse struct {
	Subtask    SubtaskItem `json:"subtask"`
	TaskStatus string      `json:"task_status"`
}
