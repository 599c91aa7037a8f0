package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
)

type sessionsRepo struct {
	q querier
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, ip, user_agent, created_at, expires_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.IP, s.UserAgent,
		utc(s.CreatedAt), utc(s.ExpiresAt), mapOptionalTime(s.RevokedAt),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.Session, error) {
	var (
		s       domain.Session
		revoked sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, user_id, ip, user_agent, created_at, expires_at, revoked_at
		FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.UserID, &s.IP, &s.UserAgent, &s.CreatedAt, &s.ExpiresAt, &revoked)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.CreatedAt = utc(s.CreatedAt)
	s.ExpiresAt = utc(s.ExpiresAt)
	s.RevokedAt = mapNullTimePtr(revoked)
	return s, nil
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, id string, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = COALESCE(revoked_at, ?) WHERE id = ?`,
		utc(at), id,
	)
	return requireAffected(res, err)
}

func (r *sessionsRepo) DeleteInactiveSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)`,
		utc(cutoff), utc(cutoff),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
