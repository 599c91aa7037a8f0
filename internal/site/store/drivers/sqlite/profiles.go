package sqlite

import (
	"context"
	"database/sql"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
)

type profilesRepo struct {
	q querier
}

const profileColumns = `id, user_id, email_verified, newsletter, phone, last_login_ip, failed_attempts, lockout_until, created_at, updated_at`

func (r *profilesRepo) GetProfileByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	var (
		p       domain.Profile
		phone   sql.NullString
		lockout sql.NullTime
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID,
	).Scan(
		&p.ID, &p.UserID, &p.EmailVerified, &p.Newsletter, &phone,
		&p.LastLoginIP, &p.FailedAttempts, &lockout, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	p.Phone = mapNullString(phone)
	p.LockoutUntil = mapNullTimePtr(lockout)
	p.CreatedAt = utc(p.CreatedAt)
	p.UpdatedAt = utc(p.UpdatedAt)
	return p, nil
}

// GetProfileByUserIDForUpdate relies on the store's IMMEDIATE transactions:
// the writer lock is already held, so a plain read is serialised.
func (r *profilesRepo) GetProfileByUserIDForUpdate(ctx context.Context, userID string) (domain.Profile, error) {
	return r.GetProfileByUserID(ctx, userID)
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.EmailVerified, p.Newsletter, mapStringNull(p.Phone),
		p.LastLoginIP, p.FailedAttempts, mapOptionalTime(p.LockoutUntil),
		utc(p.CreatedAt), utc(p.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *profilesRepo) UpdateProfile(ctx context.Context, p domain.Profile) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE profiles
		SET email_verified = ?, newsletter = ?, phone = ?, last_login_ip = ?,
		    failed_attempts = ?, lockout_until = ?, updated_at = ?
		WHERE id = ?`,
		p.EmailVerified, p.Newsletter, mapStringNull(p.Phone), p.LastLoginIP,
		p.FailedAttempts, mapOptionalTime(p.LockoutUntil), utc(p.UpdatedAt),
		p.ID,
	)
	return requireAffected(res, err)
}
