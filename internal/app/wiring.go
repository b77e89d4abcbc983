package app

import (
	"fmt"

	"sfss/internal/audit"
	"sfss/internal/auth"
	"sfss/internal/config"
	"sfss/internal/grants"
	httpserver "sfss/internal/http"
	"sfss/internal/notify"
	"sfss/internal/repository/postgres"
	"sfss/internal/storage/s3"
	"sfss/pkg/mailer"
)

// InitializeService wires up all dependencies and returns a configured Service
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s3Client, err := s3.NewClient(&cfg.AWS, cfg.App.UploadURLExpiry)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	userRepo := postgres.NewUserRepository(db)
	grantRepo := postgres.NewGrantRepository(db)

	// Access-code emails are optional: without an API key the grant flow
	// still works, recipients just get the code out-of-band.
	var notifier grants.Notifier
	if cfg.Mail.SendGridAPIKey != "" {
		provider := mailer.NewSendGridProvider(mailer.SendGridConfig{APIKey: cfg.Mail.SendGridAPIKey})
		notifier = notify.NewEmailNotifier(provider, cfg.Mail.From)
	}

	grantService := grants.NewService(grantRepo, s3Client, notifier, cfg.App.DownloadURLExpiry)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	authMiddleware := auth.NewMiddleware(jwtService)
	auditLogger := audit.NewLogger(db.Pool)

	server := httpserver.NewServer(&httpserver.ServerDependencies{
		Config:         cfg,
		UserRepo:       userRepo,
		GrantService:   grantService,
		JWTService:     jwtService,
		AuthMiddleware: authMiddleware,
		AuditLogger:    auditLogger,
		AuditQuerier:   auditLogger,
	})

	return &Service{
		config: cfg,
		server: server,
		closer: db.Close,
	}, nil
}
