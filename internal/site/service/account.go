package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/validate"
	"github.com/AkshatMishra0/Derivity-ai/pkg/cryptox"
	"github.com/AkshatMishra0/Derivity-ai/pkg/idx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
)

const (
	// maxHandleSuffix bounds the numeric suffixes tried before a random one.
	maxHandleSuffix = 100

	DefaultEventLimit = 20
	MaxEventLimit     = 100
)

type AccountService struct {
	Store    store.Store
	Hasher   PasswordHasher
	Sessions *SessionService
	Audit    *SecurityLog
	Metrics  *Metrics
	Now      func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Registration is the signup form.
type Registration struct {
	FullName   string
	Email      string
	Password   string
	Newsletter bool
}

// ProfileView is a user together with its profile.
type ProfileView struct {
	User    domain.User
	Profile domain.Profile
}

// Register creates an account and signs it in. Name, email and password are
// validated in that order and the first failure is returned. The user,
// profile, success event and session are written in one transaction.
func (s *AccountService) Register(ctx context.Context, reg Registration, meta domain.RequestMeta) (AuthResult, error) {
	res, err := s.register(ctx, reg, meta, s.now())
	s.Metrics.observeSignup(err)
	return res, err
}

func (s *AccountService) register(ctx context.Context, reg Registration, meta domain.RequestMeta, now time.Time) (AuthResult, error) {
	l := slogx.FromContext(ctx)
	submitted := strings.TrimSpace(reg.Email)

	fail := func(reason string, err error) (AuthResult, error) {
		s.Audit.Record(ctx, Attempt{Email: submitted, Meta: meta, Reason: reason}, now)
		l.Info("signup rejected", slog.String("email", submitted), slog.String("reason", reason))
		return AuthResult{}, err
	}

	fullName := strings.TrimSpace(reg.FullName)
	if err := validate.Name(fullName); err != nil {
		return fail("invalid name", err)
	}
	if err := validate.Email(submitted); err != nil {
		return fail("invalid email", err)
	}
	if err := validate.Password(reg.Password); err != nil {
		return fail("invalid password", err)
	}

	email := validate.NormalizeEmail(submitted)
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return fail("email already exists", ErrEmailTaken)
	case !errors.Is(err, store.ErrNotFound):
		l.Error("failed to check email availability", slog.Any("error", err))
		return AuthResult{}, persistence("check email", err)
	}

	hash, err := s.Hasher.Hash(reg.Password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return AuthResult{}, persistence("hash password", err)
	}

	handle, err := s.uniqueHandle(ctx, validate.LocalPart(email))
	if err != nil {
		l.Error("failed to derive handle", slog.Any("error", err))
		return AuthResult{}, persistence("derive handle", err)
	}

	first, last := validate.SplitName(fullName)
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Handle:       handle,
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastLoginAt:  &now,
	}
	prof := domain.Profile{
		ID:            idx.NewAt(now).String(),
		UserID:        user.ID,
		EmailVerified: true,
		Newsletter:    reg.Newsletter,
		LastLoginIP:   meta.IP,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var sess domain.Session
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		if err := tx.Profiles().CreateProfile(ctx, prof); err != nil {
			return err
		}
		if err := s.Audit.recordTx(ctx, tx, Attempt{UserID: &user.ID, Email: submitted, Meta: meta, Success: true}, now); err != nil {
			return err
		}
		var err error
		sess, err = s.Sessions.Issue(ctx, tx, user.ID, meta, now)
		return err
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race with a concurrent signup for the same email or handle.
		if _, lookupErr := s.Store.Users().GetUserByEmail(ctx, email); lookupErr == nil {
			return fail("email already exists", ErrEmailTaken)
		}
		return fail("handle already exists", ErrHandleTaken)
	}
	if err != nil {
		l.Error("signup transaction failed", slog.Any("error", err))
		return AuthResult{}, persistence("register", err)
	}

	token, err := s.Sessions.Token(sess)
	if err != nil {
		l.Error("failed to sign session token", slog.Any("error", err))
		return AuthResult{}, persistence("sign session", err)
	}

	l.Info("account created", slog.String("user_id", user.ID), slog.String("handle", handle))
	return AuthResult{User: user, Profile: prof, Session: sess, Token: token}, nil
}

// uniqueHandle returns base if free, else base1..base100, else base plus six
// random digits.
func (s *AccountService) uniqueHandle(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 0; i <= maxHandleSuffix; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s%d", base, i)
		}
		exists, err := s.Store.Users().HandleExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	digits, err := cryptox.RandomDigits(6)
	if err != nil {
		return "", err
	}
	return base + digits, nil
}

// ProfilePatch holds the fields a user may change. Nil fields are left alone.
type ProfilePatch struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Newsletter *bool
	Phone      *string
}

// Empty reports whether the patch touches nothing.
func (p ProfilePatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Newsletter == nil && p.Phone == nil
}

// validate checks every provided field before anything is written. Empty
// name parts are ignored; an empty phone clears the number.
func (p ProfilePatch) validate() error {
	for _, name := range []*string{p.FirstName, p.LastName} {
		if name == nil || strings.TrimSpace(*name) == "" {
			continue
		}
		if err := validate.Name(*name); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if err := validate.Email(*p.Email); err != nil {
			return err
		}
	}
	if p.Phone != nil {
		if err := validate.Phone(*p.Phone); err != nil {
			return err
		}
	}
	return nil
}

// UpdateProfile applies patch to the user's account in one transaction. A
// changed email must not belong to anyone else and clears email_verified.
// An empty patch writes nothing.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (ProfileView, error) {
	l := slogx.FromContext(ctx)

	if err := patch.validate(); err != nil {
		return ProfileView{}, err
	}
	if patch.Empty() {
		return s.Profile(ctx, userID)
	}

	now := s.now()
	var view ProfileView
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownUser
		}
		if err != nil {
			return err
		}
		prof, err := tx.Profiles().GetProfileByUserIDForUpdate(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrProfileMissing
		}
		if err != nil {
			return err
		}

		userChanged, profChanged := false, false

		if patch.FirstName != nil {
			if v := strings.TrimSpace(*patch.FirstName); v != "" && v != user.FirstName {
				user.FirstName, userChanged = v, true
			}
		}
		if patch.LastName != nil {
			if v := strings.TrimSpace(*patch.LastName); v != "" && v != user.LastName {
				user.LastName, userChanged = v, true
			}
		}
		if patch.Email != nil {
			if email := validate.NormalizeEmail(*patch.Email); email != user.Email {
				other, err := tx.Users().GetUserByEmail(ctx, email)
				switch {
				case err == nil && other.ID != user.ID:
					return ErrEmailTaken
				case err != nil && !errors.Is(err, store.ErrNotFound):
					return err
				}
				user.Email, userChanged = email, true
				prof.EmailVerified, profChanged = false, true
			}
		}
		if patch.Newsletter != nil && *patch.Newsletter != prof.Newsletter {
			prof.Newsletter, profChanged = *patch.Newsletter, true
		}
		if patch.Phone != nil {
			if v := strings.TrimSpace(*patch.Phone); v != prof.Phone {
				prof.Phone, profChanged = v, true
			}
		}

		if userChanged {
			user.UpdatedAt = now
			if err := tx.Users().UpdateUser(ctx, user); err != nil {
				if errors.Is(err, store.ErrAlreadyExists) {
					return ErrEmailTaken
				}
				return err
			}
		}
		if profChanged {
			prof.UpdatedAt = now
			if err := tx.Profiles().UpdateProfile(ctx, prof); err != nil {
				return err
			}
		}

		view = ProfileView{User: user, Profile: prof}
		return nil
	})
	switch {
	case err == nil:
		l.Info("profile updated", slog.String("user_id", userID))
		return view, nil
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUnknownUser):
		return ProfileView{}, err
	case errors.Is(err, ErrProfileMissing):
		l.Error("data integrity: user has no profile", slog.String("user_id", userID))
	default:
		l.Error("profile update failed", slog.String("user_id", userID), slog.Any("error", err))
	}
	return ProfileView{}, persistence("update profile", err)
}

// Profile returns the user's account view.
func (s *AccountService) Profile(ctx context.Context, userID string) (ProfileView, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ProfileView{}, ErrUnknownUser
	}
	if err != nil {
		return ProfileView{}, persistence("load user", err)
	}

	prof, err := s.Store.Profiles().GetProfileByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Error("data integrity: user has no profile", slog.String("user_id", userID))
		return ProfileView{}, persistence("load profile", ErrProfileMissing)
	}
	if err != nil {
		return ProfileView{}, persistence("load profile", err)
	}

	return ProfileView{User: user, Profile: prof}, nil
}

// RecentSecurityEvents lists the user's events newest first. limit falls back
// to DefaultEventLimit and is capped at MaxEventLimit.
func (s *AccountService) RecentSecurityEvents(ctx context.Context, userID string, limit int) ([]domain.SecurityEvent, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	limit = min(limit, MaxEventLimit)

	events, err := s.Store.SecurityEvents().ListSecurityEventsByUser(ctx, userID, limit)
	if err != nil {
		return nil, persistence("list security events", err)
	}
	return events, nil
}
