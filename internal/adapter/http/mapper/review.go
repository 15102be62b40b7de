package mapper

import (
	"time"

	"taskpulse/internal/adapter/http/dto"
	"taskpulse/internal/core/domain"
)

func ToReviewItem(review domain.Review) dto.ReviewItem {
	return dto.ReviewItem{
		ID:         review.ID,
		TaskID:     review.TaskID,
		ReviewerID: review.ReviewerID,
		Decision:   string(review.Decision),
		Notes:      review.Notes,
		CreatedAt:  review.CreatedAt.Format(time.RFC3339),
	}
}

func ToReviewOutcomeResponse(outcome domain.ReviewOutcome) dto.ReviewOutcomeResponse {
	return dto.ReviewOutcomeResponse{
		Review:               ToReviewItem(outcome.Review),
		Task:                 ToTaskItem(outcome.Task),
		CompletedAssignments: outcome.CompletedAssignments,
	}
}
