package store

import (
	"context"
	"errors"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories are reached through methods so a Tx can hand
// out the same repositories bound to its transaction, and nested
// transactions are refused by construction.
type Store interface {
	Users() Users
	Profiles() Profiles
	SecurityEvents() SecurityEvents
	Sessions() Sessions
	ContactMessages() ContactMessages
	Conversations() Conversations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Prefer it over Tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up by the case-folded email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	HandleExists(ctx context.Context, handle string) (bool, error)

	// CreateUser returns ErrAlreadyExists when the handle or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser writes the mutable columns (email, names, active flag,
	// last login) and bumps updated_at. Returns ErrAlreadyExists when the new
	// email collides with another account.
	UpdateUser(ctx context.Context, u domain.User) error
}

type Profiles interface {
	GetProfileByUserID(ctx context.Context, userID string) (domain.Profile, error)

	// GetProfileByUserIDForUpdate is GetProfileByUserID that also locks the row
	// until the surrounding transaction ends, where the driver supports it.
	GetProfileByUserIDForUpdate(ctx context.Context, userID string) (domain.Profile, error)

	CreateProfile(ctx context.Context, p domain.Profile) error

	// UpdateProfile writes every mutable column and bumps updated_at.
	UpdateProfile(ctx context.Context, p domain.Profile) error
}

type SecurityEvents interface {
	CreateSecurityEvent(ctx context.Context, e domain.SecurityEvent) error

	// ListSecurityEventsByUser returns newest first.
	ListSecurityEventsByUser(ctx context.Context, userID string, limit int) ([]domain.SecurityEvent, error)

	// ListSecurityEventsByEmail returns newest first, including events with no user.
	ListSecurityEventsByEmail(ctx context.Context, email string, limit int) ([]domain.SecurityEvent, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// RevokeSession sets revoked_at if not already set. Unknown ids return ErrNotFound.
	RevokeSession(ctx context.Context, id string, at time.Time) error

	// DeleteInactiveSessions removes sessions expired or revoked before cutoff.
	DeleteInactiveSessions(ctx context.Context, cutoff time.Time) (int64, error)
}

type ContactMessages interface {
	CreateContactMessage(ctx context.Context, m domain.ContactMessage) error
}

type Conversations interface {
	CreateConversation(ctx context.Context, c domain.Conversation) error
}
