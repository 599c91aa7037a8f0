package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
	"github.com/AkshatMishra0/Derivity-ai/pkg/idx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/jwtx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
)

// SessionService issues and resolves login sessions. The sessions row is
// authoritative; the signed token only carries its id.
type SessionService struct {
	Store      store.Store
	KeyManager *jwtx.KeyManager
	Issuer     string
	TTL        time.Duration
	Now        func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TTL
}

// Issue inserts a session row through st, which is normally the caller's
// transaction so the session lands or rolls back with the login.
func (s *SessionService) Issue(ctx context.Context, st store.Store, userID string, meta domain.RequestMeta, now time.Time) (domain.Session, error) {
	sess := domain.Session{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	}
	if err := st.Sessions().CreateSession(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// Token signs the session cookie value for sess.
func (s *SessionService) Token(sess domain.Session) (string, error) {
	claims := jwtx.NewSessionClaims(sess.UserID, sess.ID, s.Issuer, sess.CreatedAt, sess.ExpiresAt)
	return s.KeyManager.Signer.Sign(claims)
}

// Resolve maps a session token to the acting identity. An invalid token, a
// revoked or expired session and a deactivated user all resolve to ok=false;
// only store failures are errors.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Identity, bool, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.KeyManager.Verifier.Verify(token)
	if err != nil {
		l.Debug("session token rejected", slog.Any("error", err))
		return domain.Identity{}, false, nil
	}

	sess, err := s.Store.Sessions().GetSessionByID(ctx, claims.SID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, false, nil
	}
	if err != nil {
		return domain.Identity{}, false, persistence("load session", err)
	}
	if sess.UserID != claims.Subject || !sess.Active(s.now()) {
		return domain.Identity{}, false, nil
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, false, nil
	}
	if err != nil {
		return domain.Identity{}, false, persistence("load session user", err)
	}
	if !user.IsActive {
		return domain.Identity{}, false, nil
	}

	return domain.Identity{UserID: user.ID, SessionID: sess.ID}, true, nil
}

// ResolveSession adapts Resolve to httpx.SessionResolver.
func (s *SessionService) ResolveSession(ctx context.Context, token string) (string, string, bool, error) {
	id, ok, err := s.Resolve(ctx, token)
	return id.UserID, id.SessionID, ok, err
}

// Revoke ends a session. Revoking an unknown or already revoked session succeeds.
func (s *SessionService) Revoke(ctx context.Context, sessionID string) error {
	err := s.Store.Sessions().RevokeSession(ctx, sessionID, s.now())
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return persistence("revoke session", err)
	}
	return nil
}
