package grants

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"strings"
	"time"

	"sfss/internal/domain/grant"
	apperrors "sfss/pkg/errors"
	"sfss/pkg/token"
	"sfss/pkg/validator"

	"github.com/google/uuid"
)

const (
	defaultExpiryMinutes = 5

	msgFileNotFound        = "file not found"
	msgNotAvailable        = "file is not available for download"
	msgNotAuthorized       = "you are not authorized to access this file"
	msgInvalidAccessCode   = "invalid access code"
	msgFileExpired         = "file has expired"
	msgAlreadyConfirmed    = "upload already confirmed"
	msgObjectNotInStorage  = "object has not been uploaded to storage"
	msgPresignUploadFail   = "storage backend could not issue an upload URL"
	msgPresignDownloadFail = "storage backend could not issue a download URL"
	msgObjectCheckFail     = "storage backend could not verify the object"
)

// Identity is the verified caller identity attached to every request by the
// auth layer. The service trusts it without re-verifying credentials.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

type CreateGrantRequest struct {
	FileName      string
	ContentType   string
	Folder        string
	Recipients    []string
	ExpiryMinutes int
}

type CreateGrantResult struct {
	Grant     *grant.AccessGrant
	UploadURL string
}

type DownloadGrant struct {
	DownloadURL      string
	FileName         string
	ContentType      string
	ExpiresAt        time.Time
	MinutesRemaining int
}

type GrantDetails struct {
	FileName        string
	ContentType     string
	Status          grant.Status
	Recipients      []string
	ExpiryMinutes   int
	FirstAccessedAt *time.Time
	ExpiresAt       *time.Time
	IsExpired       bool
	CreatedAt       time.Time
}

// Service owns the access-grant lifecycle: issuing upload grants,
// confirming uploads, and gating downloads behind the recipient set, the
// access code, and the first-access expiry window.
type Service struct {
	grants      GrantRepository
	store       ObjectStore
	notifier    Notifier
	downloadTTL time.Duration

	// Overridable for tests.
	now          func() time.Time
	generateCode func() (string, error)
}

func NewService(grants GrantRepository, store ObjectStore, notifier Notifier, downloadTTL time.Duration) *Service {
	return &Service{
		grants:       grants,
		store:        store,
		notifier:     notifier,
		downloadTTL:  downloadTTL,
		now:          time.Now,
		generateCode: token.GenerateAccessCode,
	}
}

// CreateGrant issues a presigned upload URL and persists a pending grant
// with a fresh access code. Nothing is persisted if the storage backend
// cannot presign the upload.
func (s *Service) CreateGrant(ctx context.Context, owner Identity, req CreateGrantRequest) (*CreateGrantResult, error) {
	req.FileName = strings.TrimSpace(req.FileName)
	req.Folder = strings.Trim(strings.TrimSpace(req.Folder), "/")
	if req.ExpiryMinutes == 0 {
		req.ExpiryMinutes = defaultExpiryMinutes
	}

	if err := validator.FileName(req.FileName); err != nil {
		return nil, apperrors.InvalidRequest(err.Error())
	}

	contentType, err := validator.SanitizeContentType(req.ContentType)
	if err != nil {
		return nil, apperrors.InvalidRequest(err.Error())
	}

	if err := validator.FolderPath(req.Folder); err != nil {
		return nil, apperrors.InvalidRequest(err.Error())
	}

	if err := validator.Recipients(req.Recipients); err != nil {
		return nil, apperrors.InvalidRequest(err.Error())
	}

	if err := validator.ExpiryMinutes(req.ExpiryMinutes); err != nil {
		return nil, apperrors.InvalidRequest(err.Error())
	}

	recipients := make([]string, len(req.Recipients))
	for i, r := range req.Recipients {
		recipients[i] = strings.ToLower(strings.TrimSpace(r))
	}

	accessCode, err := s.generateCode()
	if err != nil {
		return nil, apperrors.InternalServer("failed to generate access code", err)
	}

	s3Key := buildObjectKey(req.Folder, req.FileName)

	uploadURL, err := s.store.PresignUpload(ctx, s3Key, contentType)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable(msgPresignUploadFail, err)
	}

	g, err := s.grants.Create(ctx, grant.CreateGrantInput{
		OwnerID:               owner.UserID,
		FileName:              req.FileName,
		ContentType:           contentType,
		Folder:                req.Folder,
		S3Key:                 s3Key,
		FileURL:               s.store.ObjectURL(s3Key),
		Recipients:            recipients,
		AccessCode:            accessCode,
		ExpiryDurationMinutes: req.ExpiryMinutes,
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go func(g *grant.AccessGrant, ownerEmail string) {
			if err := s.notifier.SendAccessCode(context.Background(), g, ownerEmail); err != nil {
				log.Printf("failed to send access code notification for %s: %v", g.S3Key, err)
			}
		}(g, owner.Email)
	}

	return &CreateGrantResult{Grant: g, UploadURL: uploadURL}, nil
}

// ConfirmUpload transitions a pending grant to uploaded after verifying the
// object actually landed in storage. Confirming twice is an InvalidState
// error, not an idempotent success.
func (s *Service) ConfirmUpload(ctx context.Context, owner Identity, s3Key string) (*grant.AccessGrant, error) {
	g, err := s.grants.GetByKey(ctx, s3Key)
	if err != nil {
		return nil, err
	}

	// Non-owners learn nothing about the grant, not even that it exists.
	if !g.IsOwner(owner.UserID) {
		return nil, apperrors.NotFound(msgFileNotFound)
	}

	if g.Status != grant.StatusPending {
		return nil, apperrors.InvalidState(msgAlreadyConfirmed)
	}

	exists, err := s.store.ObjectExists(ctx, s3Key)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable(msgObjectCheckFail, err)
	}
	if !exists {
		return nil, apperrors.InvalidState(msgObjectNotInStorage)
	}

	confirmed, err := s.grants.ConfirmUpload(ctx, s3Key, owner.UserID)
	if err != nil {
		// The conditional update found no pending row: a concurrent
		// confirm got there first.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidState(msgAlreadyConfirmed)
		}
		return nil, err
	}

	return confirmed, nil
}

// AuthorizeDownload is the download gate. Checks run in strict order and
// short-circuit: existence, lifecycle state, recipient identity, access
// code, then expiry. Only a request that passes every authorization check
// may start the expiry clock; the first such request activates the grant
// via an atomic conditional write, and everyone later observes the same
// deadline.
func (s *Service) AuthorizeDownload(ctx context.Context, requester Identity, s3Key, accessCode string) (*DownloadGrant, error) {
	g, err := s.grants.GetByKey(ctx, s3Key)
	if err != nil {
		return nil, err
	}

	if g.Status == grant.StatusPending {
		return nil, apperrors.InvalidState(msgNotAvailable)
	}

	isOwner := g.IsOwner(requester.UserID)
	if !isOwner && !g.IsRecipient(requester.Email) {
		return nil, apperrors.Forbidden(msgNotAuthorized)
	}

	// Owners may always retrieve their own file; everyone else must
	// present the exact code.
	if !isOwner && subtle.ConstantTimeCompare([]byte(accessCode), []byte(g.AccessCode)) != 1 {
		return nil, apperrors.InvalidCode(msgInvalidAccessCode)
	}

	if g.FirstAccessedAt == nil {
		g, err = s.grants.Activate(ctx, s3Key, s.now().UTC())
		if err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	if g.IsExpired(now) {
		// The stored status is only a cache of the computed predicate;
		// failing to advance it changes nothing for correctness.
		if err := s.grants.MarkExpired(ctx, s3Key); err != nil {
			log.Printf("failed to mark grant %s expired: %v", s3Key, err)
		}
		return nil, apperrors.Expired(msgFileExpired)
	}

	deadline, _ := g.DeadlineAt()

	// The presigned URL must not outlive the grant window.
	ttl := s.downloadTTL
	if remaining := deadline.Sub(now); remaining < ttl {
		ttl = remaining
	}

	downloadURL, err := s.store.PresignDownload(ctx, s3Key, ttl)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable(msgPresignDownloadFail, err)
	}

	minutes, _ := g.MinutesRemaining(now)

	return &DownloadGrant{
		DownloadURL:      downloadURL,
		FileName:         g.FileName,
		ContentType:      g.ContentType,
		ExpiresAt:        deadline,
		MinutesRemaining: minutes,
	}, nil
}

// ListByOwner returns the owner's grants, newest first.
func (s *Service) ListByOwner(ctx context.Context, owner Identity) ([]*grant.AccessGrant, error) {
	return s.grants.ListByOwner(ctx, owner.UserID)
}

// Details is a read-only projection of a grant's lifecycle state for the
// owner and recipients. It never mutates anything: in particular, reading
// metadata does not start the expiry clock.
func (s *Service) Details(ctx context.Context, requester Identity, s3Key string) (*GrantDetails, error) {
	g, err := s.grants.GetByKey(ctx, s3Key)
	if err != nil {
		return nil, err
	}

	if !g.IsOwner(requester.UserID) && !g.IsRecipient(requester.Email) {
		return nil, apperrors.Forbidden(msgNotAuthorized)
	}

	now := s.now().UTC()
	isExpired := g.IsExpired(now)

	status := g.Status
	if isExpired {
		status = grant.StatusExpired
	}

	return &GrantDetails{
		FileName:        g.FileName,
		ContentType:     g.ContentType,
		Status:          status,
		Recipients:      g.Recipients,
		ExpiryMinutes:   g.ExpiryDurationMinutes,
		FirstAccessedAt: g.FirstAccessedAt,
		ExpiresAt:       g.ExpiresAt,
		IsExpired:       isExpired,
		CreatedAt:       g.CreatedAt,
	}, nil
}

func buildObjectKey(folderPath, fileName string) string {
	name := uuid.New().String() + "-" + fileName
	if folderPath == "" {
		return name
	}
	return folderPath + "/" + name
}
