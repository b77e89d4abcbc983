package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sfss/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, 2) // 2 req/sec, burst of 2

	// First two requests should succeed
	assert.True(t, rl.Allow("test-key"))
	assert.True(t, rl.Allow("test-key"))

	// Third request should be rate limited
	assert.False(t, rl.Allow("test-key"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(2, 2)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	middleware := rl.Middleware()

	// First request should succeed
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := middleware(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))

	// Second request should succeed
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	err = middleware(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Third request should be rate limited
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	err = middleware(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_PerUserKey(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	middleware := rl.Middleware()

	// Two different authenticated users share an IP but get separate buckets.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(auth.ContextKeyUserID, uuid.New())

		assert.NoError(t, middleware(handler)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestAPIRateLimiter_BehindJWTKeysPerUser(t *testing.T) {
	e := echo.New()
	jwtService := auth.NewJWTService("0123456789abcdef0123456789abcdef", time.Hour)
	authMw := auth.NewMiddleware(jwtService).RequireJWT()
	rl := NewRateLimiter(1, 1)

	handler := authMw(rl.Middleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}))

	serve := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		assert.NoError(t, handler(e.NewContext(req, rec)))
		return rec.Code
	}

	aliceToken, err := jwtService.Generate(uuid.New(), "alice@example.com")
	assert.NoError(t, err)
	bobToken, err := jwtService.Generate(uuid.New(), "bob@example.com")
	assert.NoError(t, err)

	// Same IP, different users: each gets a fresh bucket
	assert.Equal(t, http.StatusOK, serve(aliceToken))
	assert.Equal(t, http.StatusOK, serve(bobToken))

	// Alice's bucket is drained
	assert.Equal(t, http.StatusTooManyRequests, serve(aliceToken))
}

func TestRateLimiter_DifferentKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	// Different keys should have independent rate limits
	assert.True(t, rl.Allow("key1"))
	assert.True(t, rl.Allow("key2"))

	// Both keys should now be rate limited
	assert.False(t, rl.Allow("key1"))
	assert.False(t, rl.Allow("key2"))
}
