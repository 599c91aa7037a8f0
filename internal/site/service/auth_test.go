package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func requireRejected(t *testing.T, err error, reason Reason) {
	t.Helper()
	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected), "expected rejection, got %v", err)
	require.Equal(t, reason, rejected.Reason)
}

func TestAuthenticateSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reg := env.register(t, "Jane Doe", "jane@example.com")
	env.setFailedAttempts(t, reg.User.ID, 3)

	env.clock.Advance(time.Hour)
	meta := domain.RequestMeta{IP: "198.51.100.9", UserAgent: "browser"}
	res, err := env.auth.Authenticate(ctx, "  JANE@example.com ", testPassword, meta)
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, res.User.ID)
	require.NotEmpty(t, res.Token)

	prof := env.profile(t, reg.User.ID)
	require.Zero(t, prof.FailedAttempts)
	require.Nil(t, prof.LockoutUntil)
	require.Equal(t, "198.51.100.9", prof.LastLoginIP)

	user, err := env.store.Users().GetUserByID(ctx, reg.User.ID)
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)
	require.True(t, user.LastLoginAt.Equal(env.clock.Now()))

	sess, err := env.store.Sessions().GetSessionByID(ctx, res.Session.ID)
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, sess.UserID)
	require.Equal(t, "browser", sess.UserAgent)

	events, err := env.store.SecurityEvents().ListSecurityEventsByUser(ctx, reg.User.ID, 1)
	require.NoError(t, err)
	require.True(t, events[0].Success)
	require.Empty(t, events[0].Reason)

	require.Equal(t, 1.0, testutil.ToFloat64(env.metrics.AuthAttempts.WithLabelValues("success")))
}

func TestAuthenticateRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "Jane Doe", "jane@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		reason   Reason
		message  string
		event    string
	}{
		{"missing email", "", testPassword, ReasonMissingCredentials, "Email and password are required", "missing credentials"},
		{"missing password", "jane@example.com", "", ReasonMissingCredentials, "Email and password are required", "missing credentials"},
		{"malformed email", "jane-at-example", testPassword, ReasonInvalidEmailFormat, "Please enter a valid email address", "invalid email format"},
		{"unknown account", "nobody@example.com", testPassword, ReasonAccountNotFound, "Invalid email or password", "account not found"},
		{"wrong password", "jane@example.com", "Wrongpass1", ReasonInvalidPassword, "Invalid email or password", "invalid password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Authenticate(ctx, tt.email, tt.password, testMeta)
			requireRejected(t, err, tt.reason)

			var rejected *RejectedError
			require.ErrorAs(t, err, &rejected)
			require.Equal(t, tt.message, rejected.Message())

			events, err := env.store.SecurityEvents().ListSecurityEventsByEmail(ctx, tt.email, 1)
			require.NoError(t, err)
			require.Len(t, events, 1)
			require.False(t, events[0].Success)
			require.Equal(t, tt.event, events[0].Reason)
			require.Equal(t, testMeta.IP, events[0].IP)
		})
	}

	t.Run("unknown account event has no user", func(t *testing.T) {
		events, err := env.store.SecurityEvents().ListSecurityEventsByEmail(ctx, "nobody@example.com", 1)
		require.NoError(t, err)
		require.Nil(t, events[0].UserID)
	})

	require.Equal(t, 2.0, testutil.ToFloat64(env.metrics.AuthAttempts.WithLabelValues(string(ReasonMissingCredentials))))
}

func TestAuthenticateThreeFailuresDoNotLock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reg := env.register(t, "Jane Doe", "jane@example.com")

	for range 3 {
		_, err := env.auth.Authenticate(ctx, "jane@example.com", "wrongpass", testMeta)
		requireRejected(t, err, ReasonInvalidPassword)
	}

	prof := env.profile(t, reg.User.ID)
	require.Equal(t, 3, prof.FailedAttempts)
	require.Nil(t, prof.LockoutUntil)

	events, err := env.store.SecurityEvents().ListSecurityEventsByUser(ctx, reg.User.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 4) // three failures and the signup
	for _, e := range events[:3] {
		require.Equal(t, "invalid password", e.Reason)
	}

	_, err = env.auth.Authenticate(ctx, "jane@example.com", testPassword, testMeta)
	require.NoError(t, err)
}

func TestAuthenticateLockout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reg := env.register(t, "Jane Doe", "jane@example.com")
	env.setFailedAttempts(t, reg.User.ID, 4)

	_, err := env.auth.Authenticate(ctx, "jane@example.com", "Wrongpass1", testMeta)
	requireRejected(t, err, ReasonInvalidPassword)

	prof := env.profile(t, reg.User.ID)
	require.Equal(t, 5, prof.FailedAttempts)
	require.NotNil(t, prof.LockoutUntil)
	lockedUntil := t0.Add(30 * time.Minute)
	require.True(t, prof.LockoutUntil.Equal(lockedUntil))

	// Even the right password is refused while locked, and the window does not move.
	env.clock.Advance(10 * time.Minute)
	_, err = env.auth.Authenticate(ctx, "jane@example.com", testPassword, testMeta)
	requireRejected(t, err, ReasonAccountLocked)

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, "Account temporarily locked due to too many failed login attempts. Please try again later.", rejected.Message())

	_, err = env.auth.Authenticate(ctx, "jane@example.com", "Wrongpass1", testMeta)
	requireRejected(t, err, ReasonAccountLocked)

	prof = env.profile(t, reg.User.ID)
	require.Equal(t, 5, prof.FailedAttempts)
	require.True(t, prof.LockoutUntil.Equal(lockedUntil))

	events, err := env.store.SecurityEvents().ListSecurityEventsByUser(ctx, reg.User.ID, 1)
	require.NoError(t, err)
	require.Equal(t, "account locked", events[0].Reason)

	// Once the window has passed the right password succeeds and resets the counter.
	env.clock.Advance(21 * time.Minute)
	_, err = env.auth.Authenticate(ctx, "jane@example.com", testPassword, testMeta)
	require.NoError(t, err)

	prof = env.profile(t, reg.User.ID)
	require.Zero(t, prof.FailedAttempts)
	require.Nil(t, prof.LockoutUntil)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reg := env.register(t, "Jane Doe", "jane@example.com")

	user := reg.User
	user.IsActive = false
	require.NoError(t, env.store.Users().UpdateUser(ctx, user))

	_, err := env.auth.Authenticate(ctx, "jane@example.com", testPassword, testMeta)
	requireRejected(t, err, ReasonInvalidPassword)
	require.Equal(t, 1, env.profile(t, reg.User.ID).FailedAttempts)
}

func TestAuthenticateProfileMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "Jane Doe", "jane@example.com")

	env.auth.Store = noProfileStore{Store: env.store}

	_, err := env.auth.Authenticate(ctx, "jane@example.com", testPassword, testMeta)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	require.ErrorIs(t, err, ErrProfileMissing)
}

func TestRegisterThenAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	reg := env.register(t, "Jane Doe", "jane@example.com")

	res, err := env.auth.Authenticate(context.Background(), "jane@example.com", testPassword, testMeta)
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, res.User.ID)
}

func TestAuthenticateSurvivesAuditFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reg := env.register(t, "Jane Doe", "jane@example.com")
	env.auth.Audit = &SecurityLog{Store: failingEvents{Store: env.store}}

	res, err := env.auth.Authenticate(ctx, "jane@example.com", testPassword, testMeta)
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, res.User.ID)
	require.NotEmpty(t, res.Token)

	_, err = env.auth.Authenticate(ctx, "jane@example.com", "Wrongpass1", testMeta)
	requireRejected(t, err, ReasonInvalidPassword)
	require.Equal(t, 1, env.profile(t, reg.User.ID).FailedAttempts)
}

func TestAuthenticateConcurrentFailuresAllCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reg := env.register(t, "Jane Doe", "jane@example.com")

	const attempts = 5
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.auth.Authenticate(ctx, "jane@example.com", "Wrongpass1", testMeta)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		requireRejected(t, err, ReasonInvalidPassword)
	}

	prof := env.profile(t, reg.User.ID)
	require.Equal(t, attempts, prof.FailedAttempts)
	require.NotNil(t, prof.LockoutUntil)
	require.True(t, prof.LockoutUntil.Equal(t0.Add(30*time.Minute)))
}
