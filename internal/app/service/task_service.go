package service

import (
	"context"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

// TaskService exposes the read model the presentation layer needs plus
// the subtask status update path, which is what triggers automatic
// task-status propagation.
type TaskService struct {
	tx         ports.TxManager
	tasks      ports.TaskRepository
	subtasks   ports.SubtaskRepository
	members    ports.MembershipRepository
	propagator ports.StatusPropagator
}

func NewTaskService(
	tx ports.TxManager,
	tasks ports.TaskRepository,
	subtasks ports.SubtaskRepository,
	members ports.MembershipRepository,
	propagator ports.StatusPropagator,
) *TaskService {
	return &TaskService{tx: tx, tasks: tasks, subtasks: subtasks, members: members, propagator: propagator}
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.ListTasks(ctx)
}

func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (domain.Task, error) {
	return s.tasks.GetTask(ctx, taskID)
}

func (s *TaskService) ListSubtasks(ctx context.Context, taskID uint64) ([]domain.Subtask, error) {
	if _, err := s.tasks.GetTask(ctx, taskID); err != nil {
		return nil, err
	}
	return s.subtasks.ListSubtasks(ctx, taskID)
}

func (s *TaskService) UpdateSubtaskStatus(ctx context.Context, userID, subtaskID uint64, status domain.SubtaskStatus) (domain.Subtask, domain.TaskStatus, error) {
	if !status.Valid() {
		return domain.Subtask{}, "", domain.ErrInvalidSubtaskStatus
	}

	subtask, err := s.subtasks.GetSubtask(ctx, subtaskID)
	if err != nil {
		return domain.Subtask{}, "", err
	}

	role, err := s.members.RoleForTask(ctx, userID, subtask.TaskID)
	if err != nil {
		return domain.Subtask{}, "", err
	}
	if !role.CanTrack() {
		return domain.Subtask{}, "", domain.ErrForbidden
	}

	var taskStatus domain.TaskStatus
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.subtasks.UpdateSubtaskStatus(ctx, subtaskID, status); err != nil {
			return err
		}
		subtask.Status = status

		if _, err := s.propagator.EvaluateTask(ctx, subtask.TaskID); err != nil {
			return err
		}

		task, err := s.tasks.GetTask(ctx, subtask.TaskID)
		if err != nil {
			return err
		}
		taskStatus = task.Status
		return nil
	})
	if err != nil {
		return domain.Subtask{}, "", err
	}
	return subtask, taskStatus, nil
}
