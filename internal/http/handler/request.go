package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON = "application/json"

	// Keep the parser bound aligned with the server-level body limit.
	maxStrictBodyBytes int64 = 1 << 20
)

// bindStrictJSON decodes the request body into dst, rejecting non-JSON
// content types, unknown fields, and trailing data after the document.
func bindStrictJSON(c echo.Context, dst interface{}) error {
	contentType := strings.ToLower(c.Request().Header.Get(echo.HeaderContentType))
	if !strings.HasPrefix(contentType, contentTypeJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	dec := json.NewDecoder(io.LimitReader(c.Request().Body, maxStrictBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}
	if dec.More() {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}
