package postgres

import (
	"context"
	"time"

	"sfss/internal/domain/grant"
	apperrors "sfss/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const grantColumns = `
	id, owner_id, file_name, content_type, folder, s3_key, file_url,
	recipients, access_code, status, expiry_duration_minutes,
	first_accessed_at, expires_at, created_at, updated_at`

type GrantRepository struct {
	db *DB
}

func NewGrantRepository(db *DB) *GrantRepository {
	return &GrantRepository{db: db}
}

type grantRow interface {
	Scan(dest ...any) error
}

func scanGrant(row grantRow) (*grant.AccessGrant, error) {
	g := &grant.AccessGrant{}
	err := row.Scan(
		&g.ID,
		&g.OwnerID,
		&g.FileName,
		&g.ContentType,
		&g.Folder,
		&g.S3Key,
		&g.FileURL,
		&g.Recipients,
		&g.AccessCode,
		&g.Status,
		&g.ExpiryDurationMinutes,
		&g.FirstAccessedAt,
		&g.ExpiresAt,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GrantRepository) Create(ctx context.Context, input grant.CreateGrantInput) (*grant.AccessGrant, error) {
	query := `
		INSERT INTO access_grants (
			owner_id, file_name, content_type, folder, s3_key, file_url,
			recipients, access_code, status, expiry_duration_minutes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING` + grantColumns

	g, err := scanGrant(r.db.Pool.QueryRow(ctx, query,
		input.OwnerID,
		input.FileName,
		input.ContentType,
		input.Folder,
		input.S3Key,
		input.FileURL,
		input.Recipients,
		input.AccessCode,
		grant.StatusPending,
		input.ExpiryDurationMinutes,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("grant already exists for this object key")
		}
		return nil, errFailedCreateGrant(err)
	}

	return g, nil
}

func (r *GrantRepository) GetByKey(ctx context.Context, s3Key string) (*grant.AccessGrant, error) {
	query := `SELECT` + grantColumns + ` FROM access_grants WHERE s3_key = $1`

	g, err := scanGrant(r.db.Pool.QueryRow(ctx, query, s3Key))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errGrantNotFound)
		}
		return nil, errFailedGetGrant(err)
	}

	return g, nil
}

func (r *GrantRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*grant.AccessGrant, error) {
	query := `SELECT` + grantColumns + `
		FROM access_grants
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, errFailedListGrants(err)
	}
	defer rows.Close()

	grants := make([]*grant.AccessGrant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, errFailedScanGrant(err)
		}
		grants = append(grants, g)
	}

	return grants, rows.Err()
}

// ConfirmUpload transitions a pending grant to uploaded. The status check is
// part of the WHERE clause, so a grant that is missing or already past
// pending yields no rows; callers that need to tell those cases apart
// re-read the grant.
func (r *GrantRepository) ConfirmUpload(ctx context.Context, s3Key string, ownerID uuid.UUID) (*grant.AccessGrant, error) {
	query := `
		UPDATE access_grants
		SET status = $3, updated_at = NOW()
		WHERE s3_key = $1 AND owner_id = $2 AND status = $4
		RETURNING` + grantColumns

	g, err := scanGrant(r.db.Pool.QueryRow(ctx, query, s3Key, ownerID, grant.StatusUploaded, grant.StatusPending))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errGrantNotFound)
		}
		return nil, errFailedConfirmGrant(err)
	}

	return g, nil
}

// Activate performs the one-time first-access transition as an atomic
// conditional update: first_accessed_at is written only if still NULL, so
// exactly one caller wins no matter how many service instances race. Losers
// re-read the row and observe the winner's timestamps. The returned grant
// always carries the winning first_accessed_at/expires_at.
func (r *GrantRepository) Activate(ctx context.Context, s3Key string, at time.Time) (*grant.AccessGrant, error) {
	query := `
		UPDATE access_grants
		SET first_accessed_at = $2,
		    expires_at = $2 + make_interval(mins => expiry_duration_minutes),
		    status = $3,
		    updated_at = NOW()
		WHERE s3_key = $1 AND first_accessed_at IS NULL
		RETURNING` + grantColumns

	g, err := scanGrant(r.db.Pool.QueryRow(ctx, query, s3Key, at, grant.StatusActive))
	if err == nil {
		return g, nil
	}
	if err != pgx.ErrNoRows {
		return nil, errFailedActivate(err)
	}

	// Lost the race (or the grant was already active): the stored
	// timestamps are authoritative.
	return r.GetByKey(ctx, s3Key)
}

// MarkExpired advances an active grant to expired. Expiry is recomputed
// from timestamps on every read, so this is only a cache of the derived
// state; racing writers are harmless and zero rows affected is fine.
func (r *GrantRepository) MarkExpired(ctx context.Context, s3Key string) error {
	query := `
		UPDATE access_grants
		SET status = $2, updated_at = NOW()
		WHERE s3_key = $1 AND status = $3
	`

	if _, err := r.db.Pool.Exec(ctx, query, s3Key, grant.StatusExpired, grant.StatusActive); err != nil {
		return errFailedMarkExpired(err)
	}

	return nil
}
