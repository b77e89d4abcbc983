package http

import (
	"context"
	stdhttp "net/http"

	"sfss/internal/auth"
	"sfss/internal/config"
	"sfss/internal/http/handler"
	"sfss/internal/http/middleware"
	"sfss/internal/types"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config         *config.Config
	UserRepo       handler.UserRepository
	GrantService   handler.GrantService
	JWTService     *auth.JWTService
	AuthMiddleware *auth.Middleware
	AuditLogger    types.AuditLogger
	AuditQuerier   handler.AuditQuerier
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware first, so all logs have request ID
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Strict rate limiting for auth endpoints
	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.UserRepo, deps.JWTService, deps.AuditLogger)
	grantHandler := handler.NewGrantHandler(deps.GrantService, deps.AuditLogger)
	auditHandler := handler.NewAuditHandler(deps.AuditQuerier)

	e.POST("/auth/signup", authHandler.Signup, strictRateLimiter.Middleware())
	e.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())
	e.GET("/health", healthCheck)

	api := e.Group("/api")
	api.Use(deps.AuthMiddleware.RequireJWT())

	// Per-user buckets need the JWT middleware to have run first
	apiRateLimiter := middleware.NewAPIRateLimiter()
	api.Use(apiRateLimiter.Middleware())

	api.POST("/files/upload-url", grantHandler.CreateGrant)
	api.POST("/files/confirm", grantHandler.ConfirmUpload)
	api.POST("/files/download-url", grantHandler.RequestDownload)
	api.GET("/files", grantHandler.ListGrants)
	api.GET("/files/details/*", grantHandler.GetGrantDetails)
	api.GET("/audit", auditHandler.ListEvents)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
