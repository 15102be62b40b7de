package ports

import (
	"context"
	"time"

	"taskpulse/internal/core/domain"
)

type TaskRepository interface {
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	// GetTaskForUpdate locks the task row for the duration of the
	// surrounding transaction.
	GetTaskForUpdate(ctx context.Context, id uint64) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	UpdateTaskStatus(ctx context.Context, id uint64, status domain.TaskStatus) error
	UpdateTaskActualHours(ctx context.Context, id uint64, hours float64) error
}

type SubtaskRepository interface {
	GetSubtask(ctx context.Context, id uint64) (domain.Subtask, error)
	ListSubtasks(ctx context.Context, taskID uint64) ([]domain.Subtask, error)
	// CountSubtasks returns the total number of subtasks for the task and
	// how many of them are done.
	CountSubtasks(ctx context.Context, taskID uint64) (total int, done int, err error)
	UpdateSubtaskStatus(ctx context.Context, id uint64, status domain.SubtaskStatus) error
	UpdateSubtaskActualHours(ctx context.Context, id uint64, hours float64) error
}

type AssignmentRepository interface {
	// GetAssignmentForUpdate returns nil when the user has no assignment
	// on the task.
	GetAssignmentForUpdate(ctx context.Context, taskID, userID uint64) (*domain.Assignment, error)
	ListAssignments(ctx context.Context, taskID uint64) ([]domain.Assignment, error)
	MarkAssignmentStarted(ctx context.Context, id uint64, at time.Time) error
	CompleteAssignment(ctx context.Context, id uint64, at time.Time) error
	// CompleteOpenAssignments finalizes every non-completed assignment on
	// the task and reports how many rows changed.
	CompleteOpenAssignments(ctx context.Context, taskID uint64, at time.Time) (int, error)
}

type MembershipRepository interface {
	// RoleForTask resolves the caller's role on the task's owning
	// project; domain.RoleNone when not a member.
	RoleForTask(ctx context.Context, userID, taskID uint64) (domain.Role, error)
}
