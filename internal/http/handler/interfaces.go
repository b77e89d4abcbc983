package handler

import (
	"context"

	"sfss/internal/audit"
	"sfss/internal/domain/grant"
	"sfss/internal/domain/user"
	"sfss/internal/grants"

	"github.com/google/uuid"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

// AuthHandler interfaces
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
}

type TokenGenerator interface {
	Generate(userID uuid.UUID, email string) (string, error)
}

// AuditHandler interface
type AuditQuerier interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]*audit.Event, error)
}

// GrantHandler interface
type GrantService interface {
	CreateGrant(ctx context.Context, owner grants.Identity, req grants.CreateGrantRequest) (*grants.CreateGrantResult, error)
	ConfirmUpload(ctx context.Context, owner grants.Identity, s3Key string) (*grant.AccessGrant, error)
	AuthorizeDownload(ctx context.Context, requester grants.Identity, s3Key, accessCode string) (*grants.DownloadGrant, error)
	ListByOwner(ctx context.Context, owner grants.Identity) ([]*grant.AccessGrant, error)
	Details(ctx context.Context, requester grants.Identity, s3Key string) (*grants.GrantDetails, error)
}
