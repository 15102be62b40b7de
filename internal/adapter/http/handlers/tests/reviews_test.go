package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskpulse/internal/adapter/http/dto"
	"taskpulse/internal/adapter/http/handlers"
	"taskpulse/internal/adapter/http/middleware"
	"taskpulse/internal/core/domain"
	"taskpulse/pkg/apierrors"
	"taskpulse/pkg/translator"
)

type reviewServiceMock struct {
	mock.Mock
}

func (m *reviewServiceMock) SubmitReview(ctx context.Context, reviewerID, taskID uint64, decision domain.ReviewDecision, notes *string) (domain.ReviewOutcome, error) {
	args := m.Called(ctx, reviewerID, taskID, decision, notes)
	return args.Get(0).(domain.ReviewOutcome), args.Error(1)
}

func newReviewRouter(serviceMock *reviewServiceMock) *gin.Engine {
	handler := handlers.NewReviewHandler(serviceMock)

	router := gin.New()
	authed := router.Group("/api", middleware.LanguageMiddleware(), middleware.IdentityMiddleware())
	authed.POST("/tasks/:id/reviews", handler.SubmitReview)
	return router
}

func doReviewRequest(router *gin.Engine, target, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func approvedOutcome() domain.ReviewOutcome {
	createdAt := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	return domain.ReviewOutcome{
		Review: domain.Review{
			ID:         5,
			TaskID:     1,
			ReviewerID: 9,
			Decision:   domain.ReviewDecisionApproved,
			CreatedAt:  createdAt,
		},
		Task:                 domain.Task{ID: 1, BoardID: 1, Title: "Ship onboarding flow", Status: domain.TaskStatusDone},
		CompletedAssignments: 2,
	}
}

func TestReviewHandler_SubmitReview_Approved(t *testing.T) {
	serviceMock := new(reviewServiceMock)
	serviceMock.On("SubmitReview", mock.Anything, uint64(9), uint64(1), domain.ReviewDecisionApproved, (*string)(nil)).Return(
		approvedOutcome(), nil,
	).Once()
	router := newReviewRouter(serviceMock)

	rec := doReviewRequest(router, "/api/tasks/1/reviews", `{"decision":"approved"}`, "9")

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.ReviewOutcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, uint64(5), got.Review.ID)
	require.Equal(t, "approved", got.Review.Decision)
	require.Equal(t, "done", got.Task.Status)
	require.Equal(t, 2, got.CompletedAssignments)
	serviceMock.AssertExpectations(t)
}

func TestReviewHandler_SubmitReview_RejectedWithNotes(t *testing.T) {
	notes := "duration rounding is off on the summary screen"
	outcome := approvedOutcome()
	outcome.Review.Decision = domain.ReviewDecisionRejected
	outcome.Review.Notes = &notes
	outcome.Task.Status = domain.TaskStatusTodo
	outcome.CompletedAssignments = 0

	serviceMock := new(reviewServiceMock)
	serviceMock.On("SubmitReview", mock.Anything, uint64(9), uint64(1), domain.ReviewDecisionRejected, &notes).Return(
		outcome, nil,
	).Once()
	router := newReviewRouter(serviceMock)

	rec := doReviewRequest(router, "/api/tasks/1/reviews",
		`{"decision":"rejected","notes":"duration rounding is off on the summary screen"}`, "9")

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.ReviewOutcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "rejected", got.Review.Decision)
	require.Equal(t, "todo", got.Task.Status)
	require.Equal(t, 0, got.CompletedAssignments)
	serviceMock.AssertExpectations(t)
}

func TestReviewHandler_SubmitReview_MissingIdentity(t *testing.T) {
	serviceMock := new(reviewServiceMock)
	router := newReviewRouter(serviceMock)

	rec := doReviewRequest(router, "/api/tasks/1/reviews", `{"decision":"approved"}`, "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewHandler_SubmitReview_InvalidTaskID(t *testing.T) {
	serviceMock := new(reviewServiceMock)
	router := newReviewRouter(serviceMock)

	rec := doReviewRequest(router, "/api/tasks/abc/reviews", `{"decision":"approved"}`, "9")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid id", got.ErrDetails.Message)
}

func TestReviewHandler_SubmitReview_InvalidPayload(t *testing.T) {
	serviceMock := new(reviewServiceMock)
	router := newReviewRouter(serviceMock)

	for _, body := range []string{``, `{}`, `{"decision":"maybe"}`, `{"decision":null}`, `not json`} {
		rec := doReviewRequest(router, "/api/tasks/1/reviews", body, "9")
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestReviewHandler_SubmitReview_TaskNotFound(t *testing.T) {
	serviceMock := new(reviewServiceMock)
	serviceMock.On("SubmitReview", mock.Anything, uint64(9), uint64(99), domain.ReviewDecisionApproved, (*string)(nil)).Return(
		domain.ReviewOutcome{}, domain.ErrTaskNotFound,
	).Once()
	router := newReviewRouter(serviceMock)

	rec := doReviewRequest(router, "/api/tasks/99/reviews", `{"decision":"approved"}`, "9")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Task not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestReviewHandler_SubmitReview_Forbidden(t *testing.T) {
	serviceMock := new(reviewServiceMock)
	serviceMock.On("SubmitReview", mock.Anything, uint64(9), uint64(1), domain.ReviewDecisionApproved, (*string)(nil)).Return(
		domain.ReviewOutcome{}, domain.ErrForbidden,
	).Once()
	router := newReviewRouter(serviceMock)

	rec := doReviewRequest(router, "/api/tasks/1/reviews", `{"decision":"approved"}`, "9")

	require.Equal(t, http.StatusForbidden, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestReviewHandler_SubmitReview_InternalError(t *testing.T) {
	serviceMock := new(reviewServiceMock)
	serviceMock.On("SubmitReview", mock.Anything, uint64(9), uint64(1), domain.ReviewDecisionApproved, (*string)(nil)).Return(
		domain.ReviewOutcome{}, errors.New("db is down"),
	).Once()
	router := newReviewRouter(serviceMock)

	rec := doReviewRequest(router, "/api/tasks/1/reviews", `{"decision":"approved"}`, "9")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Could not submit the review", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}
