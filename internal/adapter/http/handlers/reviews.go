package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskpulse/internal/adapter/http/dto"
	"taskpulse/internal/adapter/http/mapper"
	"taskpulse/internal/adapter/http/middleware"
	"taskpulse/internal/adapter/http/validation"
	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
	"taskpulse/pkg/apierrors"
)

type ReviewHandler struct {
	reviewService ports.ReviewService
}

func NewReviewHandler(reviewService ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	lang := middleware.GetLang(c)
	reviewerID := middleware.GetUserID(c)

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang),
		)
		return
	}

	var req dto.SubmitReviewRequest
	var raw map[string]json.RawMessage
	body, err := c.GetRawData()
	if err != nil || json.Unmarshal(body, &req) != nil || json.Unmarshal(body, &raw) != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidReviewPayload, lang),
		)
		return
	}

	input, err := validation.BuildReviewInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidReviewPayload, lang),
		)
		return
	}

	outcome, err := h.reviewService.SubmitReview(c.Request.Context(), reviewerID, taskID, input.Decision, input.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
		case errors.Is(err, domain.ErrForbidden):
			c.JSON(
				http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang),
			)
		default:
			zap.L().Error("failed to submit review", zap.Uint64("task_id", taskID), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailSubmitReview, lang),
			)
		}
		return
	}

	c.JSON(http.StatusCreated, mapper.ToReviewOutcomeResponse(outcome))
}
