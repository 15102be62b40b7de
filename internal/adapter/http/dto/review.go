package dto

type SubmitReviewRequest struct {
	Decision string  `json:"decision" binding:"required,oneof=approved rejected"`
	Notes    *string `json:"notes" binding:"omitempty,max=65535"`
}

type ReviewItem struct {
	ID         uint64  `json:"id"`
	TaskID     uint64  `json:"task_id"`
	ReviewerID uint64  `json:"reviewer_id"`
	Decision   string  `json:"decision"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type ReviewOutcomeResponse struct {
	Review               ReviewItem `json:"review"`
	Task                 TaskItem   `json:"task"`
	CompletedAssignments int        `json:"completed_assignments"`
}
