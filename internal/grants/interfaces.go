package grants

import (
	"context"
	"time"

	"sfss/internal/domain/grant"

	"github.com/google/uuid"
)

// Consumer-side interfaces: the service names only the operations it needs,
// implemented by the postgres repository and the S3 client in production.

type GrantRepository interface {
	Create(ctx context.Context, input grant.CreateGrantInput) (*grant.AccessGrant, error)
	GetByKey(ctx context.Context, s3Key string) (*grant.AccessGrant, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*grant.AccessGrant, error)
	ConfirmUpload(ctx context.Context, s3Key string, ownerID uuid.UUID) (*grant.AccessGrant, error)
	// Activate must write first_accessed_at only if it is still unset, as a
	// single atomic conditional update in the store, and must return the
	// winning timestamps either way.
	Activate(ctx context.Context, s3Key string, at time.Time) (*grant.AccessGrant, error)
	MarkExpired(ctx context.Context, s3Key string) error
}

type ObjectStore interface {
	PresignUpload(ctx context.Context, objectKey, contentType string) (string, error)
	PresignDownload(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
	ObjectExists(ctx context.Context, objectKey string) (bool, error)
	ObjectURL(objectKey string) string
}

// Notifier delivers access codes to recipients out-of-band. Delivery is
// best effort and never blocks or fails grant issuance.
type Notifier interface {
	SendAccessCode(ctx context.Context, g *grant.AccessGrant, ownerEmail string) error
}
