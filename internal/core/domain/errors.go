package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
	ErrEntryNotFound   = errors.New("time log entry not found")
	ErrForbidden       = errors.New("forbidden")

	// ErrDuplicateSession: an open entry for the exact same scope
	// (user, task, optional subtask) already exists.
	ErrDuplicateSession = errors.New("session already running for this scope")

	// ErrNoTaskSession: a subtask session requires an open task-level
	// session on the same task by the same user.
	ErrNoTaskSession = errors.New("no open task-level session for this task")

	ErrSessionAlreadyStopped = errors.New("session already stopped")
	ErrInvalidSubtaskStatus  = errors.New("invalid subtask status")
)

// ConflictingSessionError rejects a task-level start while the user has an
// open task-level session on a different task, naming that task.
type ConflictingSessionError struct {
	TaskID uint64
}

func (e ConflictingSessionError) Error() string {
	return fmt.Sprintf("open task-level session already exists on task %d", e.TaskID)
}
