package service

import (
	"context"
	"time"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

// TrackingService coordinates start/stop of work timers. Every mutation
// runs inside one transaction so concurrent requests cannot leave the
// ledger with conflicting open entries.
type TrackingService struct {
	tx          ports.TxManager
	entries     ports.TimeLogRepository
	tasks       ports.TaskRepository
	subtasks    ports.SubtaskRepository
	assignments ports.AssignmentRepository
	members     ports.MembershipRepository
	now         func() time.Time
}

func NewTrackingService(
	tx ports.TxManager,
	entries ports.TimeLogRepository,
	tasks ports.TaskRepository,
	subtasks ports.SubtaskRepository,
	assignments ports.AssignmentRepository,
	members ports.MembershipRepository,
) *TrackingService {
	return &TrackingService{
		tx:          tx,
		entries:     entries,
		tasks:       tasks,
		subtasks:    subtasks,
		assignments: assignments,
		members:     members,
		now:         time.Now,
	}
}

var _ ports.TrackingService = (*TrackingService)(nil)

func (s *TrackingService) StartSession(ctx context.Context, userID, taskID uint64, subtaskID *uint64) (domain.TimeLogEntry, error) {
	role, err := s.members.RoleForTask(ctx, userID, taskID)
	if err != nil {
		return domain.TimeLogEntry{}, err
	}
	if !role.CanTrack() {
		return domain.TimeLogEntry{}, domain.ErrForbidden
	}

	var created domain.TimeLogEntry
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		task, err := s.tasks.GetTaskForUpdate(ctx, taskID)
		if err != nil {
			return err
		}

		var subtask domain.Subtask
		if subtaskID != nil {
			subtask, err = s.subtasks.GetSubtask(ctx, *subtaskID)
			if err != nil {
				return err
			}
			if subtask.TaskID != taskID {
				return domain.ErrSubtaskNotFound
			}
		}

		// Same scope already being tracked.
		open, err := s.entries.FindOpenEntry(ctx, userID, taskID, subtaskID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrDuplicateSession
		}

		if subtaskID == nil {
			// One task-level timer per user, globally.
			other, err := s.entries.FindOpenTaskEntry(ctx, userID)
			if err != nil {
				return err
			}
			if other != nil {
				return domain.ConflictingSessionError{TaskID: other.TaskID}
			}
		} else {
			// Subtask timers only run under an open task-level timer on
			// the same task.
			parent, err := s.entries.FindOpenEntry(ctx, userID, taskID, nil)
			if err != nil {
				return err
			}
			if parent == nil {
				return domain.ErrNoTaskSession
			}
		}

		startedAt := s.now()
		created, err = s.entries.InsertEntry(ctx, domain.TimeLogEntry{
			UserID:    userID,
			TaskID:    taskID,
			SubtaskID: subtaskID,
			StartedAt: startedAt,
		})
		if err != nil {
			return err
		}

		if subtaskID == nil {
			if task.Status == domain.TaskStatusTodo && task.Status.CanTransitionTo(domain.TaskStatusInProgress) {
				if err := s.tasks.UpdateTaskStatus(ctx, taskID, domain.TaskStatusInProgress); err != nil {
					return err
				}
			}
		} else if subtask.Status != domain.SubtaskStatusDone {
			if err := s.subtasks.UpdateSubtaskStatus(ctx, *subtaskID, domain.SubtaskStatusInProgress); err != nil {
				return err
			}
		}

		assignment, err := s.assignments.GetAssignmentForUpdate(ctx, taskID, userID)
		if err != nil {
			return err
		}
		if assignment != nil && assignment.StartedAt == nil {
			if err := s.assignments.MarkAssignmentStarted(ctx, assignment.ID, startedAt); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return domain.TimeLogEntry{}, err
	}
	return created, nil
}

func (s *TrackingService) StopSession(ctx context.Context, userID, entryID uint64, note *string) (domain.StopResult, error) {
	var result domain.StopResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		entry, err := s.entries.GetEntryForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.UserID != userID {
			return domain.ErrForbidden
		}
		if !entry.Open() {
			return domain.ErrSessionAlreadyStopped
		}

		endedAt := s.now()

		// Stopping the task-level timer drags every open subtask timer
		// under the same task down with it, all sealed at the same
		// instant.
		cascaded := 0
		if entry.TaskLevel() {
			children, err := s.entries.ListOpenSubtaskEntries(ctx, userID, entry.TaskID)
			if err != nil {
				return err
			}
			for _, child := range children {
				duration := domain.DurationMinutes(child.StartedAt, endedAt)
				if err := s.entries.SealEntry(ctx, child.ID, endedAt, duration, nil); err != nil {
					return err
				}
				if child.SubtaskID != nil {
					if err := s.recomputeSubtaskHours(ctx, *child.SubtaskID); err != nil {
						return err
					}
				}
			}
			cascaded = len(children)
		}

		duration := domain.DurationMinutes(entry.StartedAt, endedAt)
		if err := s.entries.SealEntry(ctx, entry.ID, endedAt, duration, note); err != nil {
			return err
		}
		if entry.SubtaskID != nil {
			if err := s.recomputeSubtaskHours(ctx, *entry.SubtaskID); err != nil {
				return err
			}
		}

		summary, err := s.entries.SumSealedByTask(ctx, entry.TaskID)
		if err != nil {
			return err
		}
		if err := s.tasks.UpdateTaskActualHours(ctx, entry.TaskID, domain.HoursFromMinutes(summary.TotalMinutes)); err != nil {
			return err
		}

		// The assignment is completed on every stop, even when the task
		// is far from done; the review gate converges the rest later.
		assignment, err := s.assignments.GetAssignmentForUpdate(ctx, entry.TaskID, userID)
		if err != nil {
			return err
		}
		if assignment != nil && assignment.Status != domain.AssignmentStatusCompleted {
			if err := s.assignments.CompleteAssignment(ctx, assignment.ID, endedAt); err != nil {
				return err
			}
		}

		result = domain.StopResult{DurationMinutes: duration, CascadedCount: cascaded}
		return nil
	})
	if err != nil {
		return domain.StopResult{}, err
	}
	return result, nil
}

func (s *TrackingService) recomputeSubtaskHours(ctx context.Context, subtaskID uint64) error {
	summary, err := s.entries.SumSealedBySubtask(ctx, subtaskID)
	if err != nil {
		return err
	}
	return s.subtasks.UpdateSubtaskActualHours(ctx, subtaskID, domain.HoursFromMinutes(summary.TotalMinutes))
}

func (s *TrackingService) OpenSessions(ctx context.Context, userID uint64) ([]domain.TimeLogEntry, error) {
	return s.entries.ListOpenEntriesByUser(ctx, userID)
}

func (s *TrackingService) TaskHours(ctx context.Context, taskID uint64) (domain.HoursSummary, error) {
	if _, err := s.tasks.GetTask(ctx, taskID); err != nil {
		return domain.HoursSummary{}, err
	}
	return s.entries.SumSealedByTask(ctx, taskID)
}

func (s *TrackingService) SubtaskHours(ctx context.Context, subtaskID uint64) (domain.HoursSummary, error) {
	if _, err := s.subtasks.GetSubtask(ctx, subtaskID); err != nil {
		return domain.HoursSummary{}, err
	}
	return s.entries.SumSealedBySubtask(ctx, subtaskID)
}
