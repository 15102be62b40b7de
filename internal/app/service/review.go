package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

// ReviewService is the approve/reject gate that finalizes or reopens a
// task. "done" is reachable only through this gate.
type ReviewService struct {
	tx          ports.TxManager
	reviews     ports.ReviewRepository
	tasks       ports.TaskRepository
	assignments ports.AssignmentRepository
	members     ports.MembershipRepository
	now         func() time.Time
}

func NewReviewService(
	tx ports.TxManager,
	reviews ports.ReviewRepository,
	tasks ports.TaskRepository,
	assignments ports.AssignmentRepository,
	members ports.MembershipRepository,
) *ReviewService {
	return &ReviewService{
		tx:          tx,
		reviews:     reviews,
		tasks:       tasks,
		assignments: assignments,
		members:     members,
		now:         time.Now,
	}
}

var _ ports.ReviewService = (*ReviewService)(nil)

func (s *ReviewService) SubmitReview(ctx context.Context, reviewerID, taskID uint64, decision domain.ReviewDecision, notes *string) (domain.ReviewOutcome, error) {
	role, err := s.members.RoleForTask(ctx, reviewerID, taskID)
	if err != nil {
		return domain.ReviewOutcome{}, err
	}
	if !role.CanReview() {
		return domain.ReviewOutcome{}, domain.ErrForbidden
	}

	var outcome domain.ReviewOutcome
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		task, err := s.tasks.GetTaskForUpdate(ctx, taskID)
		if err != nil {
			return err
		}

		// The audit record is written regardless of whether the decision
		// changes anything.
		review, err := s.reviews.InsertReview(ctx, domain.Review{
			TaskID:     taskID,
			ReviewerID: reviewerID,
			Decision:   decision,
			Notes:      notes,
			CreatedAt:  s.now(),
		})
		if err != nil {
			return err
		}

		completed := 0
		switch decision {
		case domain.ReviewDecisionApproved:
			if task.Status.CanTransitionTo(domain.TaskStatusDone) {
				if err := s.tasks.UpdateTaskStatus(ctx, taskID, domain.TaskStatusDone); err != nil {
					return err
				}
				task.Status = domain.TaskStatusDone
				completed, err = s.assignments.CompleteOpenAssignments(ctx, taskID, s.now())
				if err != nil {
					return err
				}
			}
		case domain.ReviewDecisionRejected:
			if task.Status != domain.TaskStatusTodo && task.Status.CanTransitionTo(domain.TaskStatusTodo) {
				if err := s.tasks.UpdateTaskStatus(ctx, taskID, domain.TaskStatusTodo); err != nil {
					return err
				}
				task.Status = domain.TaskStatusTodo
			}
		}

		zap.L().Info("review recorded",
			zap.Uint64("task_id", taskID),
			zap.Uint64("reviewer_id", reviewerID),
			zap.String("decision", string(decision)),
			zap.Int("completed_assignments", completed),
		)

		outcome = domain.ReviewOutcome{Review: review, Task: task, CompletedAssignments: completed}
		return nil
	})
	if err != nil {
		return domain.ReviewOutcome{}, err
	}
	return outcome, nil
}
