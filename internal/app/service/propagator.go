package service

import (
	"context"

	"go.uber.org/zap"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

// StatusPropagator moves a task into review once every one of its
// subtasks is done. Tasks without subtasks never transition
// automatically.
type StatusPropagator struct {
	tx       ports.TxManager
	tasks    ports.TaskRepository
	subtasks ports.SubtaskRepository
}

func NewStatusPropagator(tx ports.TxManager, tasks ports.TaskRepository, subtasks ports.SubtaskRepository) *StatusPropagator {
	return &StatusPropagator{tx: tx, tasks: tasks, subtasks: subtasks}
}

var _ ports.StatusPropagator = (*StatusPropagator)(nil)

func (p *StatusPropagator) EvaluateTask(ctx context.Context, taskID uint64) (bool, error) {
	changed := false
	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		task, err := p.tasks.GetTaskForUpdate(ctx, taskID)
		if err != nil {
			return err
		}

		total, done, err := p.subtasks.CountSubtasks(ctx, taskID)
		if err != nil {
			return err
		}
		if total == 0 || done < total {
			return nil
		}
		if !task.Status.CanTransitionTo(domain.TaskStatusReview) {
			// Already in review or done; evaluating again is a no-op.
			return nil
		}

		if err := p.tasks.UpdateTaskStatus(ctx, taskID, domain.TaskStatusReview); err != nil {
			return err
		}
		changed = true
		zap.L().Info("task moved to review",
			zap.Uint64("task_id", taskID),
			zap.Int("subtasks", total),
		)
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}
