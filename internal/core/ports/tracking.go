package ports

import (
	"context"
	"time"

	"taskpulse/internal/core/domain"
)

type TimeLogRepository interface {
	InsertEntry(ctx context.Context, entry domain.TimeLogEntry) (domain.TimeLogEntry, error)
	GetEntryForUpdate(ctx context.Context, id uint64) (domain.TimeLogEntry, error)
	// FindOpenEntry returns the open entry for the exact scope, nil when
	// none exists. Locks the row when called inside a transaction.
	FindOpenEntry(ctx context.Context, userID, taskID uint64, subtaskID *uint64) (*domain.TimeLogEntry, error)
	// FindOpenTaskEntry returns the user's open task-level entry on any
	// task, nil when none exists.
	FindOpenTaskEntry(ctx context.Context, userID uint64) (*domain.TimeLogEntry, error)
	// ListOpenSubtaskEntries returns the user's open subtask-level
	// entries under the task, locked for update.
	ListOpenSubtaskEntries(ctx context.Context, userID, taskID uint64) ([]domain.TimeLogEntry, error)
	SealEntry(ctx context.Context, id uint64, endedAt time.Time, durationMinutes int, note *string) error
	ListOpenEntriesByUser(ctx context.Context, userID uint64) ([]domain.TimeLogEntry, error)
	// SumSealedByTask aggregates sealed entries for the task, task-level
	// and subtask-level alike.
	SumSealedByTask(ctx context.Context, taskID uint64) (domain.HoursSummary, error)
	SumSealedBySubtask(ctx context.Context, subtaskID uint64) (domain.HoursSummary, error)
}

type TrackingService interface {
	StartSession(ctx context.Context, userID, taskID uint64, subtaskID *uint64) (domain.TimeLogEntry, error)
	StopSession(ctx context.Context, userID, entryID uint64, note *string) (domain.StopResult, error)
	OpenSessions(ctx context.Context, userID uint64) ([]domain.TimeLogEntry, error)
	TaskHours(ctx context.Context, taskID uint64) (domain.HoursSummary, error)
	SubtaskHours(ctx context.Context, subtaskID uint64) (domain.HoursSummary, error)
}
