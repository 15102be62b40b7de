package validation

import (
	"encoding/json"
	"strings"

	"taskpulse/internal/adapter/http/dto"
	"taskpulse/internal/core/domain"
)

// ReviewInput is the validated shape of a review submission.
type ReviewInput struct {
	Decision domain.ReviewDecision
	Notes    *string
}

func BuildReviewInput(req dto.SubmitReviewRequest, raw map[string]json.RawMessage) (ReviewInput, error) {
	decision := domain.ReviewDecision(req.Decision)
	if !decision.Valid() {
		return ReviewInput{}, ErrInvalidReviewPayload
	}

	if hasJSONField(raw, "notes") && !isJSONNull(raw["notes"]) && req.Notes == nil {
		return ReviewInput{}, ErrInvalidReviewPayload
	}

	var notes *string
	if req.Notes != nil {
		value := strings.TrimSpace(*req.Notes)
		if value != "" {
			notes = &value
		}
	}

	return ReviewInput{Decision: decision, Notes: notes}, nil
}
