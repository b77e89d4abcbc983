package grant

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle stage of an access grant. Transitions only ever
// move forward: pending -> uploaded -> active -> expired.
type Status string

const (
	StatusPending  Status = "pending"
	StatusUploaded Status = "uploaded"
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
)

// AccessGrant binds one stored object to its owner, the recipient set
// allowed to download it, the shared access code, and the first-access
// expiry window.
type AccessGrant struct {
	ID                    uuid.UUID
	OwnerID               uuid.UUID
	FileName              string
	ContentType           string
	Folder                string
	S3Key                 string
	FileURL               string
	Recipients            []string
	AccessCode            string
	Status                Status
	ExpiryDurationMinutes int
	FirstAccessedAt       *time.Time
	ExpiresAt             *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type CreateGrantInput struct {
	OwnerID               uuid.UUID
	FileName              string
	ContentType           string
	Folder                string
	S3Key                 string
	FileURL               string
	Recipients            []string
	AccessCode            string
	ExpiryDurationMinutes int
}

// IsRecipient reports whether email is in the grant's recipient set.
// Recipient emails are stored lowercased; comparison is case-insensitive.
func (g *AccessGrant) IsRecipient(email string) bool {
	email = strings.ToLower(email)
	for _, r := range g.Recipients {
		if strings.ToLower(r) == email {
			return true
		}
	}
	return false
}

// IsOwner reports whether userID owns the grant.
func (g *AccessGrant) IsOwner(userID uuid.UUID) bool {
	return g.OwnerID == userID
}

// ExpiryDuration returns the configured window as a duration.
func (g *AccessGrant) ExpiryDuration() time.Duration {
	return time.Duration(g.ExpiryDurationMinutes) * time.Minute
}

// IsExpired evaluates the expiry predicate at the given instant. A grant
// that has never been accessed cannot be expired; once accessed, the window
// is closed on the expired side (now == expiresAt counts as expired).
func (g *AccessGrant) IsExpired(now time.Time) bool {
	if g.FirstAccessedAt == nil {
		return false
	}
	return !now.Before(g.FirstAccessedAt.Add(g.ExpiryDuration()))
}

// DeadlineAt returns when the grant expires, derived from the first access.
// The second return is false before first access, when no deadline exists.
func (g *AccessGrant) DeadlineAt() (time.Time, bool) {
	if g.FirstAccessedAt == nil {
		return time.Time{}, false
	}
	if g.ExpiresAt != nil {
		return *g.ExpiresAt, true
	}
	return g.FirstAccessedAt.Add(g.ExpiryDuration()), true
}

// MinutesRemaining projects whole minutes left in the window, rounded up,
// never negative. Returns 0, false before first access.
func (g *AccessGrant) MinutesRemaining(now time.Time) (int, bool) {
	deadline, ok := g.DeadlineAt()
	if !ok {
		return 0, false
	}

	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0, true
	}

	minutes := int((remaining + time.Minute - 1) / time.Minute)
	return minutes, true
}
