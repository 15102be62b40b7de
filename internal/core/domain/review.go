package domain

import "time"

// Review is an append-only audit record of one approve/reject decision.
type Review struct {
	ID         uint64
	TaskID     uint64
	ReviewerID uint64
	Decision   ReviewDecision
	Notes      *string
	CreatedAt  time.Time
}

// ReviewOutcome carries the recorded review together with the task state
// after the decision was applied.
type ReviewOutcome struct {
	Review               Review
	Task                 Task
	CompletedAssignments int
}
