package handler

import (
	"errors"
	"net/http"
	"time"

	"sfss/internal/audit"
	"sfss/internal/auth"
	"sfss/internal/domain/grant"
	"sfss/internal/grants"
	"sfss/internal/types"
	apperrors "sfss/pkg/errors"

	"github.com/labstack/echo/v4"
)

type GrantHandler struct {
	service     GrantService
	auditLogger types.AuditLogger
}

func NewGrantHandler(service GrantService, auditLogger types.AuditLogger) *GrantHandler {
	return &GrantHandler{
		service:     service,
		auditLogger: auditLogger,
	}
}

type CreateGrantRequest struct {
	FileName      string   `json:"file_name"`
	ContentType   string   `json:"content_type"`
	Folder        string   `json:"folder"`
	Recipients    []string `json:"recipients"`
	ExpiryMinutes int      `json:"expiry_minutes"`
}

type CreateGrantResponse struct {
	Key           string   `json:"key"`
	UploadURL     string   `json:"upload_url"`
	FileURL       string   `json:"file_url"`
	AccessCode    string   `json:"access_code"`
	Recipients    []string `json:"recipients"`
	ExpiryMinutes int      `json:"expiry_minutes"`
	Status        string   `json:"status"`
}

type ConfirmUploadRequest struct {
	Key string `json:"key"`
}

type ConfirmUploadResponse struct {
	Key    string `json:"key"`
	Status string `json:"status"`
}

type DownloadRequest struct {
	Key        string `json:"key"`
	AccessCode string `json:"access_code"`
}

type DownloadResponse struct {
	DownloadURL      string    `json:"download_url"`
	FileName         string    `json:"file_name"`
	ContentType      string    `json:"content_type"`
	ExpiresAt        time.Time `json:"expires_at"`
	MinutesRemaining int       `json:"minutes_remaining"`
}

// GrantSummary is the owner's view of a grant, access code included: the
// listing is owner-only, and the owner already holds the code.
type GrantSummary struct {
	Key             string     `json:"key"`
	FileName        string     `json:"file_name"`
	ContentType     string     `json:"content_type"`
	Status          string     `json:"status"`
	Recipients      []string   `json:"recipients"`
	AccessCode      string     `json:"access_code"`
	ExpiryMinutes   int        `json:"expiry_minutes"`
	FirstAccessedAt *time.Time `json:"first_accessed_at,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type GrantDetailsResponse struct {
	FileName        string     `json:"file_name"`
	ContentType     string     `json:"content_type"`
	Status          string     `json:"status"`
	Recipients      []string   `json:"recipients"`
	ExpiryMinutes   int        `json:"expiry_minutes"`
	FirstAccessedAt *time.Time `json:"first_accessed_at,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	IsExpired       bool       `json:"is_expired"`
	CreatedAt       time.Time  `json:"created_at"`
}

func requesterIdentity(c echo.Context) (grants.Identity, error) {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return grants.Identity{}, err
	}
	email, err := auth.GetUserEmail(c)
	if err != nil {
		return grants.Identity{}, err
	}
	return grants.Identity{UserID: userID, Email: email}, nil
}

func (h *GrantHandler) CreateGrant(c echo.Context) error {
	identity, err := requesterIdentity(c)
	if err != nil {
		return err
	}

	var req CreateGrantRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	result, err := h.service.CreateGrant(c.Request().Context(), identity, grants.CreateGrantRequest{
		FileName:      req.FileName,
		ContentType:   req.ContentType,
		Folder:        req.Folder,
		Recipients:    req.Recipients,
		ExpiryMinutes: req.ExpiryMinutes,
	})
	if err != nil {
		if h.auditLogger != nil && !errors.Is(err, apperrors.ErrInvalidRequest) {
			h.auditLogger.LogError(c, audit.ResourceTypeGrant, nil, audit.ActionCreate, err)
		}
		return err
	}

	g := result.Grant
	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceTypeGrant, &g.ID, audit.ActionCreate, audit.StatusSuccess, map[string]any{
			"key":       g.S3Key,
			"file_name": g.FileName,
		})
	}

	return c.JSON(http.StatusCreated, CreateGrantResponse{
		Key:           g.S3Key,
		UploadURL:     result.UploadURL,
		FileURL:       g.FileURL,
		AccessCode:    g.AccessCode,
		Recipients:    g.Recipients,
		ExpiryMinutes: g.ExpiryDurationMinutes,
		Status:        string(g.Status),
	})
}

func (h *GrantHandler) ConfirmUpload(c echo.Context) error {
	identity, err := requesterIdentity(c)
	if err != nil {
		return err
	}

	var req ConfirmUploadRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	if req.Key == "" {
		return respondError(c, http.StatusBadRequest, msgFileKeyRequired)
	}

	g, err := h.service.ConfirmUpload(c.Request().Context(), identity, req.Key)
	if err != nil {
		if h.auditLogger != nil {
			h.auditLogger.LogError(c, audit.ResourceTypeGrant, nil, audit.ActionConfirm, err)
		}
		return err
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceTypeGrant, &g.ID, audit.ActionConfirm, audit.StatusSuccess, map[string]any{
			"key": g.S3Key,
		})
	}

	return c.JSON(http.StatusOK, ConfirmUploadResponse{
		Key:    g.S3Key,
		Status: string(g.Status),
	})
}

func (h *GrantHandler) RequestDownload(c echo.Context) error {
	identity, err := requesterIdentity(c)
	if err != nil {
		return err
	}

	var req DownloadRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	if req.Key == "" {
		return respondError(c, http.StatusBadRequest, msgFileKeyRequired)
	}

	dl, err := h.service.AuthorizeDownload(c.Request().Context(), identity, req.Key, req.AccessCode)
	if err != nil {
		if h.auditLogger != nil {
			if isAccessDenial(err) {
				h.auditLogger.LogFromContext(c, audit.ResourceTypeGrant, nil, audit.ActionDownload, audit.StatusDenied, map[string]any{
					"key": req.Key,
				})
			} else if !errors.Is(err, apperrors.ErrInvalidRequest) {
				h.auditLogger.LogError(c, audit.ResourceTypeGrant, nil, audit.ActionDownload, err)
			}
		}
		return err
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceTypeGrant, nil, audit.ActionDownload, audit.StatusSuccess, map[string]any{
			"key": req.Key,
		})
	}

	return c.JSON(http.StatusOK, DownloadResponse{
		DownloadURL:      dl.DownloadURL,
		FileName:         dl.FileName,
		ContentType:      dl.ContentType,
		ExpiresAt:        dl.ExpiresAt,
		MinutesRemaining: dl.MinutesRemaining,
	})
}

func (h *GrantHandler) ListGrants(c echo.Context) error {
	identity, err := requesterIdentity(c)
	if err != nil {
		return err
	}

	list, err := h.service.ListByOwner(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	summaries := make([]GrantSummary, 0, len(list))
	for _, g := range list {
		summaries = append(summaries, grantSummary(g))
	}

	return c.JSON(http.StatusOK, summaries)
}

func (h *GrantHandler) GetGrantDetails(c echo.Context) error {
	identity, err := requesterIdentity(c)
	if err != nil {
		return err
	}

	key := c.Param("*")
	if key == "" {
		return respondError(c, http.StatusBadRequest, msgFileKeyRequired)
	}

	details, err := h.service.Details(c.Request().Context(), identity, key)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, GrantDetailsResponse{
		FileName:        details.FileName,
		ContentType:     details.ContentType,
		Status:          string(details.Status),
		Recipients:      details.Recipients,
		ExpiryMinutes:   details.ExpiryMinutes,
		FirstAccessedAt: details.FirstAccessedAt,
		ExpiresAt:       details.ExpiresAt,
		IsExpired:       details.IsExpired,
		CreatedAt:       details.CreatedAt,
	})
}

func isAccessDenial(err error) bool {
	return errors.Is(err, apperrors.ErrForbidden) ||
		errors.Is(err, apperrors.ErrInvalidCode) ||
		errors.Is(err, apperrors.ErrExpired)
}

func grantSummary(g *grant.AccessGrant) GrantSummary {
	return GrantSummary{
		Key:             g.S3Key,
		FileName:        g.FileName,
		ContentType:     g.ContentType,
		Status:          string(g.Status),
		Recipients:      g.Recipients,
		AccessCode:      g.AccessCode,
		ExpiryMinutes:   g.ExpiryDurationMinutes,
		FirstAccessedAt: g.FirstAccessedAt,
		ExpiresAt:       g.ExpiresAt,
		CreatedAt:       g.CreatedAt,
	}
}
