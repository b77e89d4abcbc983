package types

import (
	"sfss/internal/audit"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuditLogger defines audit logging operations
type AuditLogger interface {
	LogFromContext(c echo.Context, resourceType audit.ResourceType, resourceID *uuid.UUID, action audit.Action, status audit.Status, metadata map[string]any) error
	LogError(c echo.Context, resourceType audit.ResourceType, resourceID *uuid.UUID, action audit.Action, err error) error
}
