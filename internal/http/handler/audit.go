package handler

import (
	"net/http"
	"strconv"
	"time"

	"sfss/internal/audit"
	"sfss/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

type AuditHandler struct {
	querier AuditQuerier
}

func NewAuditHandler(querier AuditQuerier) *AuditHandler {
	return &AuditHandler{querier: querier}
}

type AuditEventResponse struct {
	EventType    string         `json:"event_type"`
	ResourceType string         `json:"resource_type"`
	ResourceID   *uuid.UUID     `json:"resource_id,omitempty"`
	Action       string         `json:"action"`
	Status       string         `json:"status"`
	RequestID    string         `json:"request_id,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ListEvents returns the requester's own audit trail, newest first. The
// filter is always scoped to the authenticated user; action and status
// narrow it further.
func (h *AuditHandler) ListEvents(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	filter := audit.QueryFilter{
		ActorID: &userID,
		Limit:   auditDefaultLimit,
	}

	if action := c.QueryParam("action"); action != "" {
		a := audit.Action(action)
		filter.Action = &a
	}
	if status := c.QueryParam("status"); status != "" {
		s := audit.Status(status)
		filter.Status = &s
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 || limit > auditMaxLimit {
			return respondError(c, http.StatusBadRequest, msgInvalidAuditLimit)
		}
		filter.Limit = limit
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		offset, err := strconv.Atoi(offsetParam)
		if err != nil || offset < 0 {
			return respondError(c, http.StatusBadRequest, msgInvalidAuditOffset)
		}
		filter.Offset = offset
	}

	events, err := h.querier.Query(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	resp := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, AuditEventResponse{
			EventType:    e.EventType,
			ResourceType: string(e.ResourceType),
			ResourceID:   e.ResourceID,
			Action:       string(e.Action),
			Status:       string(e.Status),
			RequestID:    e.RequestID,
			Metadata:     e.Metadata,
			ErrorMessage: e.ErrorMessage,
			CreatedAt:    e.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, resp)
}
