package domain

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// taskTransitions is the only source of truth for task status changes.
// Callers must go through CanTransitionTo instead of assigning statuses
// directly, so "done" stays reachable only from "review".
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusTodo:       {TaskStatusInProgress, TaskStatusReview},
	TaskStatusInProgress: {TaskStatusReview},
	TaskStatusReview:     {TaskStatusDone, TaskStatusTodo},
	TaskStatusDone:       {},
}

func (s TaskStatus) Valid() bool {
	_, ok := taskTransitions[s]
	return ok
}

func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range taskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type SubtaskStatus string

const (
	SubtaskStatusTodo       SubtaskStatus = "todo"
	SubtaskStatusInProgress SubtaskStatus = "in_progress"
	SubtaskStatusDone       SubtaskStatus = "done"
)

func (s SubtaskStatus) Valid() bool {
	switch s {
	case SubtaskStatusTodo, SubtaskStatusInProgress, SubtaskStatusDone:
		return true
	}
	return false
}

type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "assigned"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
)

type ReviewDecision string

const (
	ReviewDecisionApproved ReviewDecision = "approved"
	ReviewDecisionRejected ReviewDecision = "rejected"
)

func (d ReviewDecision) Valid() bool {
	return d == ReviewDecisionApproved || d == ReviewDecisionRejected
}
