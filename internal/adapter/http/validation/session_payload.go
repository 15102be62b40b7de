package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"taskpulse/internal/adapter/http/dto"
)

var (
	ErrInvalidSessionPayload = errors.New("invalid session payload")
	ErrInvalidReviewPayload  = errors.New("invalid review payload")
)

// StartSessionInput is the validated shape of a start request.
type StartSessionInput struct {
	TaskID    uint64
	SubtaskID *uint64
}

func BuildStartSessionInput(req dto.StartSessionRequest, raw map[string]json.RawMessage) (StartSessionInput, error) {
	if !hasJSONField(raw, "task_id") || req.TaskID == 0 {
		return StartSessionInput{}, ErrInvalidSessionPayload
	}

	if hasJSONField(raw, "subtask_id") && !isJSONNull(raw["subtask_id"]) {
		if req.SubtaskID == nil || *req.SubtaskID == 0 {
			return StartSessionInput{}, ErrInvalidSessionPayload
		}
	}

	return StartSessionInput{TaskID: req.TaskID, SubtaskID: req.SubtaskID}, nil
}

// BuildStopSessionNote validates the optional note; a blank note is
// treated as absent.
func BuildStopSessionNote(req dto.StopSessionRequest, raw map[string]json.RawMessage) (*string, error) {
	if hasJSONField(raw, "note") && !isJSONNull(raw["note"]) && req.Note == nil {
		return nil, ErrInvalidSessionPayload
	}

	if req.Note == nil {
		return nil, nil
	}

	note := strings.TrimSpace(*req.Note)
	if note == "" {
		return nil, nil
	}
	if len(note) > 1024 {
		return nil, ErrInvalidSessionPayload
	}
	return &note, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
