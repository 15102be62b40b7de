package domain

import "time"

type Task struct {
	ID             uint64
	BoardID        uint64
	Title          string
	Status         TaskStatus
	Priority       int
	DueDate        *time.Time
	EstimatedHours float64
	ActualHours    float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Subtask struct {
	ID             uint64
	TaskID         uint64
	Title          string
	Status         SubtaskStatus
	EstimatedHours float64
	ActualHours    float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Assignment struct {
	ID          uint64
	TaskID      uint64
	UserID      uint64
	Status      AssignmentStatus
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
