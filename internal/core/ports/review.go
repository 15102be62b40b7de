package ports

import (
	"context"

	"taskpulse/internal/core/domain"
)

type ReviewRepository interface {
	InsertReview(ctx context.Context, review domain.Review) (domain.Review, error)
	ListReviews(ctx context.Context, taskID uint64) ([]domain.Review, error)
}

type ReviewService interface {
	SubmitReview(ctx context.Context, reviewerID, taskID uint64, decision domain.ReviewDecision, notes *string) (domain.ReviewOutcome, error)
}

// StatusPropagator derives task status from subtask completion state. It
// is idempotent: evaluating an already-propagated task changes nothing.
type StatusPropagator interface {
	EvaluateTask(ctx context.Context, taskID uint64) (changed bool, err error)
}

type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, taskID uint64) (domain.Task, error)
	ListSubtasks(ctx context.Context, taskID uint64) ([]domain.Subtask, error)
	// UpdateSubtaskStatus is the external subtask-update path; it runs
	// status propagation and returns the task status after it.
	UpdateSubtaskStatus(ctx context.Context, userID, subtaskID uint64, status domain.SubtaskStatus) (domain.Subtask, domain.TaskStatus, error)
}
