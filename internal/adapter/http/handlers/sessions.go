package handlers

import (
	"bytes"
	"context"
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

type SessionHandler struct {
	trackingService ports.TrackingService
}

func NewSessionHandler(trackingService ports.TrackingService) *SessionHandler {
	return &SessionHandler{trackingService: trackingService}
}

func (h *SessionHandler) StartSession(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	var req dto.StartSessionRequest
	var raw map[string]json.RawMessage
	body, err := c.GetRawData()
	if err != nil || json.Unmarshal(body, &req) != nil || json.Unmarshal(body, &raw) != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidSessionPayload, lang),
		)
		return
	}

	input, err := validation.BuildStartSessionInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidSessionPayload, lang),
		)
		return
	}

	entry, err := h.trackingService.StartSession(c.Request.Context(), userID, input.TaskID, input.SubtaskID)
	if err != nil {
		h.renderStartError(c, lang, input.TaskID, err)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToSessionItem(entry))
}

func (h *SessionHandler) renderStartError(c *gin.Context, lang string, taskID uint64, err error) {
	var conflict domain.ConflictingSessionError

	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrSubtaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgSubtaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang),
		)
	case errors.Is(err, domain.ErrDuplicateSession):
		c.JSON(
			http.StatusConflict,
			apierrors.CreateError(http.StatusConflict, apierrors.MsgDuplicateSession, lang),
		)
	case errors.As(err, &conflict):
		c.JSON(
			http.StatusConflict,
			apierrors.CreateErrorWithData(http.StatusConflict, apierrors.MsgConflictingSession, lang,
				map[string]interface{}{"TaskID": conflict.TaskID}),
		)
	case errors.Is(err, domain.ErrNoTaskSession):
		c.JSON(
			http.StatusUnprocessableEntity,
			apierrors.CreateError(http.StatusUnprocessableEntity, apierrors.MsgNoTaskSession, lang),
		)
	default:
		zap.L().Error("failed to start session", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailStartSession, lang),
		)
	}
}

func (h *SessionHandler) StopSession(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || entryID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang),
		)
		return
	}

	// The stop body is optional; an empty body means no note.
	var note *string
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidSessionPayload, lang),
		)
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		var req dto.StopSessionRequest
		var raw map[string]json.RawMessage
		if json.Unmarshal(body, &req) != nil || json.Unmarshal(body, &raw) != nil {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidSessionPayload, lang),
			)
			return
		}
		note, err = validation.BuildStopSessionNote(req, raw)
		if err != nil {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidSessionPayload, lang),
			)
			return
		}
	}

	result, err := h.trackingService.StopSession(c.Request.Context(), userID, entryID, note)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntryNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgEntryNotFound, lang),
			)
		case errors.Is(err, domain.ErrForbidden):
			c.JSON(
				http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang),
			)
		case errors.Is(err, domain.ErrSessionAlreadyStopped):
			c.JSON(
				http.StatusConflict,
				apierrors.CreateError(http.StatusConflict, apierrors.MsgSessionAlreadyStopped, lang),
			)
		default:
			zap.L().Error("failed to stop session", zap.Uint64("entry_id", entryID), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailStopSession, lang),
			)
		}
		return
	}

	c.JSON(http.StatusOK, mapper.ToStopSessionResponse(result))
}

func (h *SessionHandler) ListOpenSessions(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	entries, err := h.trackingService.OpenSessions(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to list open sessions", zap.Uint64("user_id", userID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListSessions, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToSessionItems(entries))
}

func (h *SessionHandler) GetTaskHours(c *gin.Context) {
	h.renderHours(c, apierrors.MsgTaskNotFound, domain.ErrTaskNotFound, h.trackingService.TaskHours)
}

func (h *SessionHandler) GetSubtaskHours(c *gin.Context) {
	h.renderHours(c, apierrors.MsgSubtaskNotFound, domain.ErrSubtaskNotFound, h.trackingService.SubtaskHours)
}

func (h *SessionHandler) renderHours(
	c *gin.Context,
	notFoundMsg string,
	notFoundErr error,
	fetch func(ctx context.Context, id uint64) (domain.HoursSummary, error),
) {
	lang := middleware.GetLang(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang),
		)
		return
	}

	summary, err := fetch(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, notFoundErr) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, notFoundMsg, lang),
			)
			return
		}

		zap.L().Error("failed to compute tracked hours", zap.Uint64("id", id), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailGetHours, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToHoursSummary(summary))
}
