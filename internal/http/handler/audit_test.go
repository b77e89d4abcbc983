package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"sfss/internal/audit"
	"sfss/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditQuerier struct {
	events    []*audit.Event
	queryErr  error
	gotFilter audit.QueryFilter
}

func (q *fakeAuditQuerier) Query(_ context.Context, filter audit.QueryFilter) ([]*audit.Event, error) {
	q.gotFilter = filter
	return q.events, q.queryErr
}

func serveAudit(t *testing.T, querier AuditQuerier, c echo.Context, e *echo.Echo) {
	t.Helper()
	h := NewAuditHandler(querier)
	if err := h.ListEvents(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func TestAuditHandler_ListEvents(t *testing.T) {
	created := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	querier := &fakeAuditQuerier{
		events: []*audit.Event{
			{
				EventType:    "download_grant",
				ResourceType: audit.ResourceTypeGrant,
				Action:       audit.ActionDownload,
				Status:       audit.StatusSuccess,
				RequestID:    "req-1",
				Metadata:     map[string]any{"key": "uploads/a"},
				CreatedAt:    created,
			},
		},
	}

	c, rec, e := newGrantTestContext(t, http.MethodGet, "/api/audit", "")
	serveAudit(t, querier, c, e)

	require.Equal(t, http.StatusOK, rec.Code)

	// The filter is always scoped to the requester
	require.NotNil(t, querier.gotFilter.ActorID)
	assert.Equal(t, c.Get(auth.ContextKeyUserID), *querier.gotFilter.ActorID)
	assert.Equal(t, auditDefaultLimit, querier.gotFilter.Limit)

	var resp []AuditEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "download_grant", resp[0].EventType)
	assert.Equal(t, "success", resp[0].Status)
	assert.Equal(t, "uploads/a", resp[0].Metadata["key"])
	assert.True(t, resp[0].CreatedAt.Equal(created))
}

func TestAuditHandler_ListEvents_Filters(t *testing.T) {
	querier := &fakeAuditQuerier{}

	c, rec, e := newGrantTestContext(t, http.MethodGet, "/api/audit?action=download&status=denied&limit=10&offset=20", "")
	serveAudit(t, querier, c, e)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, querier.gotFilter.Action)
	assert.Equal(t, audit.ActionDownload, *querier.gotFilter.Action)
	require.NotNil(t, querier.gotFilter.Status)
	assert.Equal(t, audit.StatusDenied, *querier.gotFilter.Status)
	assert.Equal(t, 10, querier.gotFilter.Limit)
	assert.Equal(t, 20, querier.gotFilter.Offset)
}

func TestAuditHandler_ListEvents_InvalidPagination(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"limit not a number", "limit=abc"},
		{"limit zero", "limit=0"},
		{"limit above cap", "limit=1000"},
		{"negative offset", "offset=-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			querier := &fakeAuditQuerier{}
			c, rec, e := newGrantTestContext(t, http.MethodGet, "/api/audit?"+tc.query, "")
			serveAudit(t, querier, c, e)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
