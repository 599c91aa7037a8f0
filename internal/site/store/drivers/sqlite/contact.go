package sqlite

import (
	"context"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
)

type contactMessagesRepo struct {
	q querier
}

func (r *contactMessagesRepo) CreateContactMessage(ctx context.Context, m domain.ContactMessage) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, message, responded, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Message, m.Responded, utc(m.CreatedAt),
	)
	return mapConstraint(err)
}

type conversationsRepo struct {
	q querier
}

func (r *conversationsRepo) CreateConversation(ctx context.Context, c domain.Conversation) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO conversations (id, session_id, user_id, message, response, ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.SessionID, mapOptionalString(c.UserID), c.Message, c.Response, c.IP, utc(c.CreatedAt),
	)
	return mapConstraint(err)
}
