package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/validate"
	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
)

// PasswordHasher hashes and verifies password credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
}

// AuthResult is the outcome of a successful login or registration.
type AuthResult struct {
	User    domain.User
	Profile domain.Profile
	Session domain.Session
	Token   string
}

type AuthService struct {
	Store    store.Store
	Hasher   PasswordHasher
	Sessions *SessionService
	Audit    *SecurityLog
	Lockout  LockoutPolicy
	Metrics  *Metrics
	Now      func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Authenticate checks an email/password pair and, on success, opens a
// session. Expected failures are returned as *RejectedError; each attempt is
// written to the security event log.
//
// Checks run in a fixed order: both fields present, email well formed,
// account exists, account not locked, password matches an active account.
// A locked account is rejected before the password is looked at, and only a
// wrong password counts toward the lockout.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, meta domain.RequestMeta) (AuthResult, error) {
	res, err := s.authenticate(ctx, email, password, meta, s.now())
	s.Metrics.observeAuth(err)
	return res, err
}

func (s *AuthService) authenticate(ctx context.Context, email, password string, meta domain.RequestMeta, now time.Time) (AuthResult, error) {
	l := slogx.FromContext(ctx)
	email = strings.TrimSpace(email)

	rejectAttempt := func(userID *string, r Reason) (AuthResult, error) {
		s.Audit.Record(ctx, Attempt{UserID: userID, Email: email, Meta: meta, Reason: r.EventText()}, now)
		l.Info("login rejected", slog.String("email", email), slog.String("reason", string(r)))
		return AuthResult{}, reject(r)
	}

	if email == "" || password == "" {
		return rejectAttempt(nil, ReasonMissingCredentials)
	}
	if err := validate.Email(email); err != nil {
		return rejectAttempt(nil, ReasonInvalidEmailFormat)
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, validate.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return rejectAttempt(nil, ReasonAccountNotFound)
	}
	if err != nil {
		l.Error("failed to look up account", slog.Any("error", err))
		return AuthResult{}, persistence("look up account", err)
	}

	var (
		rejected *RejectedError
		result   AuthResult
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		prof, err := tx.Profiles().GetProfileByUserIDForUpdate(ctx, user.ID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrProfileMissing
		}
		if err != nil {
			return err
		}

		if s.Lockout.IsLocked(prof, now) {
			rejected = reject(ReasonAccountLocked)
			return nil
		}

		if !user.IsActive || s.Hasher.Verify(password, user.PasswordHash) != nil {
			if s.Lockout.RecordFailure(&prof, now) {
				l.Warn("account locked after repeated failures",
					slog.String("user_id", user.ID),
					slog.Int("failed_attempts", prof.FailedAttempts),
					slog.Time("lockout_until", *prof.LockoutUntil),
				)
			}
			prof.UpdatedAt = now
			if err := tx.Profiles().UpdateProfile(ctx, prof); err != nil {
				return err
			}
			rejected = reject(ReasonInvalidPassword)
			return nil
		}

		s.Lockout.RecordSuccess(&prof)
		prof.LastLoginIP = meta.IP
		prof.UpdatedAt = now
		if err := tx.Profiles().UpdateProfile(ctx, prof); err != nil {
			return err
		}

		user.LastLoginAt = &now
		user.UpdatedAt = now
		if err := tx.Users().UpdateUser(ctx, user); err != nil {
			return err
		}

		sess, err := s.Sessions.Issue(ctx, tx, user.ID, meta, now)
		if err != nil {
			return err
		}

		result = AuthResult{User: user, Profile: prof, Session: sess}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProfileMissing) {
			l.Error("data integrity: user has no profile", slog.String("user_id", user.ID))
		} else {
			l.Error("login transaction failed", slog.String("user_id", user.ID), slog.Any("error", err))
		}
		return AuthResult{}, persistence("authenticate", err)
	}
	if rejected != nil {
		return rejectAttempt(&user.ID, rejected.Reason)
	}

	s.Audit.Record(ctx, Attempt{UserID: &user.ID, Email: email, Meta: meta, Success: true}, now)

	token, err := s.Sessions.Token(result.Session)
	if err != nil {
		l.Error("failed to sign session token", slog.Any("error", err))
		return AuthResult{}, persistence("sign session", err)
	}
	result.Token = token

	l.Info("login succeeded", slog.String("user_id", user.ID), slog.String("session_id", result.Session.ID))
	return result, nil
}
