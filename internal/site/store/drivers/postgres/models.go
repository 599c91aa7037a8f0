package postgres

import (
	"database/sql"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
)

// The row models mirror the sqlite schema. Boolean columns carry no GORM
// default because GORM would substitute the default for a false value on insert.

type userModel struct {
	ID           string `gorm:"primaryKey;size:26"`
	Handle       string `gorm:"not null;uniqueIndex"`
	Email        string `gorm:"not null;uniqueIndex;size:254"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	IsActive     bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

func (userModel) TableName() string { return "users" }

type profileModel struct {
	ID             string     `gorm:"primaryKey;size:26"`
	UserID         string     `gorm:"not null;uniqueIndex;size:26"`
	User           *userModel `gorm:"constraint:OnDelete:CASCADE"`
	EmailVerified  bool       `gorm:"not null"`
	Newsletter     bool       `gorm:"not null"`
	Phone          sql.NullString
	LastLoginIP    string `gorm:"column:last_login_ip;not null"`
	FailedAttempts int    `gorm:"not null;check:failed_attempts >= 0"`
	LockoutUntil   sql.NullTime
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (profileModel) TableName() string { return "profiles" }

type securityEventModel struct {
	ID        string         `gorm:"primaryKey;size:26"`
	UserID    sql.NullString `gorm:"size:26;index:idx_security_events_user,priority:1"`
	User      *userModel     `gorm:"constraint:OnDelete:SET NULL"`
	Email     string         `gorm:"not null;index:idx_security_events_email,priority:1"`
	IP        string         `gorm:"column:ip;not null"`
	UserAgent string         `gorm:"not null"`
	Success   bool           `gorm:"not null"`
	Reason    string         `gorm:"not null"`
	CreatedAt time.Time      `gorm:"index:idx_security_events_email,priority:2;index:idx_security_events_user,priority:2"`
}

func (securityEventModel) TableName() string { return "security_events" }

type sessionModel struct {
	ID        string     `gorm:"primaryKey;size:26"`
	UserID    string     `gorm:"not null;index;size:26"`
	User      *userModel `gorm:"constraint:OnDelete:CASCADE"`
	IP        string     `gorm:"column:ip;not null"`
	UserAgent string     `gorm:"not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"not null;index"`
	RevokedAt sql.NullTime
}

func (sessionModel) TableName() string { return "sessions" }

type contactMessageModel struct {
	ID        string `gorm:"primaryKey;size:26"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Message   string `gorm:"not null"`
	Responded bool   `gorm:"not null"`
	CreatedAt time.Time
}

func (contactMessageModel) TableName() string { return "contact_messages" }

type conversationModel struct {
	ID        string         `gorm:"primaryKey;size:26"`
	SessionID string         `gorm:"not null;uniqueIndex;size:36"`
	UserID    sql.NullString `gorm:"size:26"`
	User      *userModel     `gorm:"constraint:OnDelete:SET NULL"`
	Message   string         `gorm:"not null"`
	Response  string         `gorm:"not null"`
	IP        string         `gorm:"column:ip;not null"`
	CreatedAt time.Time
}

func (conversationModel) TableName() string { return "conversations" }

func allModels() []any {
	return []any{
		&userModel{},
		&profileModel{},
		&securityEventModel{},
		&sessionModel{},
		&contactMessageModel{},
		&conversationModel{},
	}
}

func fromUser(u domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Handle:       u.Handle,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
		LastLoginAt:  nullTime(u.LastLoginAt),
	}
}

func (m userModel) toDomain() domain.User {
	return domain.User{
		ID:           m.ID,
		Handle:       m.Handle,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
		LastLoginAt:  timePtr(m.LastLoginAt),
	}
}

func fromProfile(p domain.Profile) profileModel {
	return profileModel{
		ID:             p.ID,
		UserID:         p.UserID,
		EmailVerified:  p.EmailVerified,
		Newsletter:     p.Newsletter,
		Phone:          sql.NullString{String: p.Phone, Valid: p.Phone != ""},
		LastLoginIP:    p.LastLoginIP,
		FailedAttempts: p.FailedAttempts,
		LockoutUntil:   nullTime(p.LockoutUntil),
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
}

func (m profileModel) toDomain() domain.Profile {
	return domain.Profile{
		ID:             m.ID,
		UserID:         m.UserID,
		EmailVerified:  m.EmailVerified,
		Newsletter:     m.Newsletter,
		Phone:          m.Phone.String,
		LastLoginIP:    m.LastLoginIP,
		FailedAttempts: m.FailedAttempts,
		LockoutUntil:   timePtr(m.LockoutUntil),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

func fromSecurityEvent(e domain.SecurityEvent) securityEventModel {
	return securityEventModel{
		ID:        e.ID,
		UserID:    nullString(e.UserID),
		Email:     e.Email,
		IP:        e.IP,
		UserAgent: e.UserAgent,
		Success:   e.Success,
		Reason:    e.Reason,
		CreatedAt: e.CreatedAt.UTC(),
	}
}

func (m securityEventModel) toDomain() domain.SecurityEvent {
	return domain.SecurityEvent{
		ID:        m.ID,
		UserID:    stringPtr(m.UserID),
		Email:     m.Email,
		IP:        m.IP,
		UserAgent: m.UserAgent,
		Success:   m.Success,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func fromSession(s domain.Session) sessionModel {
	return sessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		IP:        s.IP,
		UserAgent: s.UserAgent,
		CreatedAt: s.CreatedAt.UTC(),
		ExpiresAt: s.ExpiresAt.UTC(),
		RevokedAt: nullTime(s.RevokedAt),
	}
}

func (m sessionModel) toDomain() domain.Session {
	return domain.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		IP:        m.IP,
		UserAgent: m.UserAgent,
		CreatedAt: m.CreatedAt.UTC(),
		ExpiresAt: m.ExpiresAt.UTC(),
		RevokedAt: timePtr(m.RevokedAt),
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
