package postgres

import (
	"context"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type usersRepo struct {
	db *gorm.DB
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return domain.User{}, mapError(err)
	}
	return m.toDomain(), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&m).Error; err != nil {
		return domain.User{}, mapError(err)
	}
	return m.toDomain(), nil
}

func (r *usersRepo) HandleExists(ctx context.Context, handle string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Where("handle = ?", handle).Count(&n).Error
	return n > 0, err
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	m := fromUser(u)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	m := fromUser(u)
	return requireAffected(r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", u.ID).Updates(map[string]any{
		"email":         m.Email,
		"first_name":    m.FirstName,
		"last_name":     m.LastName,
		"is_active":     m.IsActive,
		"last_login_at": m.LastLoginAt,
		"updated_at":    m.UpdatedAt,
	}))
}

type profilesRepo struct {
	db *gorm.DB
}

func (r *profilesRepo) get(db *gorm.DB, userID string) (domain.Profile, error) {
	var m profileModel
	if err := db.Where("user_id = ?", userID).Take(&m).Error; err != nil {
		return domain.Profile{}, mapError(err)
	}
	return m.toDomain(), nil
}

func (r *profilesRepo) GetProfileByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	return r.get(r.db.WithContext(ctx), userID)
}

func (r *profilesRepo) GetProfileByUserIDForUpdate(ctx context.Context, userID string) (domain.Profile, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	m := fromProfile(p)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *profilesRepo) UpdateProfile(ctx context.Context, p domain.Profile) error {
	m := fromProfile(p)
	return requireAffected(r.db.WithContext(ctx).Model(&profileModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"email_verified":  m.EmailVerified,
		"newsletter":      m.Newsletter,
		"phone":           m.Phone,
		"last_login_ip":   m.LastLoginIP,
		"failed_attempts": m.FailedAttempts,
		"lockout_until":   m.LockoutUntil,
		"updated_at":      m.UpdatedAt,
	}))
}

type securityEventsRepo struct {
	db *gorm.DB
}

func (r *securityEventsRepo) CreateSecurityEvent(ctx context.Context, e domain.SecurityEvent) error {
	m := fromSecurityEvent(e)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *securityEventsRepo) list(ctx context.Context, limit int, query string, arg any) ([]domain.SecurityEvent, error) {
	var ms []securityEventModel
	err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	events := make([]domain.SecurityEvent, 0, len(ms))
	for _, m := range ms {
		events = append(events, m.toDomain())
	}
	return events, nil
}

func (r *securityEventsRepo) ListSecurityEventsByUser(ctx context.Context, userID string, limit int) ([]domain.SecurityEvent, error) {
	return r.list(ctx, limit, "user_id = ?", userID)
}

func (r *securityEventsRepo) ListSecurityEventsByEmail(ctx context.Context, email string, limit int) ([]domain.SecurityEvent, error) {
	return r.list(ctx, limit, "email = ?", email)
}

type sessionsRepo struct {
	db *gorm.DB
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	m := fromSession(s)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.Session, error) {
	var m sessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return domain.Session{}, mapError(err)
	}
	return m.toDomain(), nil
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, id string, at time.Time) error {
	return requireAffected(r.db.WithContext(ctx).Model(&sessionModel{}).Where("id = ?", id).
		Update("revoked_at", gorm.Expr("COALESCE(revoked_at, ?)", at.UTC())))
}

func (r *sessionsRepo) DeleteInactiveSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at < ?", cutoff.UTC(), cutoff.UTC()).
		Delete(&sessionModel{})
	return res.RowsAffected, res.Error
}

type contactMessagesRepo struct {
	db *gorm.DB
}

func (r *contactMessagesRepo) CreateContactMessage(ctx context.Context, msg domain.ContactMessage) error {
	m := contactMessageModel{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		Responded: msg.Responded,
		CreatedAt: msg.CreatedAt.UTC(),
	}
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

type conversationsRepo struct {
	db *gorm.DB
}

func (r *conversationsRepo) CreateConversation(ctx context.Context, c domain.Conversation) error {
	m := conversationModel{
		ID:        c.ID,
		SessionID: c.SessionID,
		UserID:    nullString(c.UserID),
		Message:   c.Message,
		Response:  c.Response,
		IP:        c.IP,
		CreatedAt: c.CreatedAt.UTC(),
	}
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}
