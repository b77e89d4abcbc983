package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
)

// RequestID tags every request with an ID so log lines and audit rows for
// one request can be correlated. A caller-supplied X-Request-ID is trusted
// as-is; otherwise a fresh UUID is minted.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}

			c.Set(requestIDContextKey, id)
			c.Response().Header().Set(requestIDHeader, id)

			return next(c)
		}
	}
}

// GetRequestID returns the request ID set by RequestID, or "" when the
// middleware did not run.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(requestIDContextKey).(string)
	return id
}
