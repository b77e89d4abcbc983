package app

import (
	"context"
	"log"
	"time"

	"sfss/internal/config"
	httpserver "sfss/internal/http"
)

// Service represents the file sharing application
type Service struct {
	config *config.Config
	server *httpserver.Server
	closer func()
}

// NewService creates and initializes a new Service instance
func NewService() (*Service, error) {
	return InitializeService()
}

// Start starts the HTTP server
func (s *Service) Start() error {
	log.Printf("Starting file sharing service on port %s", s.config.Server.Port)
	return s.server.Start(":" + s.config.Server.Port)
}

// Shutdown gracefully shuts down the service and releases resources
func (s *Service) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if s.closer != nil {
		s.closer()
	}
	return err
}

// ShutdownTimeout exposes the configured graceful shutdown window
func (s *Service) ShutdownTimeout() time.Duration {
	return s.config.Server.ShutdownTimeout
}
