package sqlite

import (
	"context"
	"database/sql"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
)

type securityEventsRepo struct {
	q querier
}

const securityEventColumns = `id, user_id, email, ip, user_agent, success, reason, created_at`

func (r *securityEventsRepo) CreateSecurityEvent(ctx context.Context, e domain.SecurityEvent) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO security_events (`+securityEventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, mapOptionalString(e.UserID), e.Email, e.IP, e.UserAgent,
		e.Success, e.Reason, utc(e.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *securityEventsRepo) ListSecurityEventsByUser(ctx context.Context, userID string, limit int) ([]domain.SecurityEvent, error) {
	return r.list(ctx, `WHERE user_id = ?`, userID, limit)
}

func (r *securityEventsRepo) ListSecurityEventsByEmail(ctx context.Context, email string, limit int) ([]domain.SecurityEvent, error) {
	return r.list(ctx, `WHERE email = ?`, email, limit)
}

// list orders by created_at then id; ids are ULIDs so ties keep insert order.
func (r *securityEventsRepo) list(ctx context.Context, where string, arg any, limit int) ([]domain.SecurityEvent, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+securityEventColumns+` FROM security_events `+where+
			` ORDER BY created_at DESC, id DESC LIMIT ?`,
		arg, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SecurityEvent
	for rows.Next() {
		var (
			e      domain.SecurityEvent
			userID sql.NullString
		)
		if err := rows.Scan(&e.ID, &userID, &e.Email, &e.IP, &e.UserAgent, &e.Success, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.UserID = mapNullStringPtr(userID)
		e.CreatedAt = utc(e.CreatedAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
