package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionResolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reg := env.register(t, "Jane Doe", "jane@example.com")

	t.Run("valid token", func(t *testing.T) {
		id, ok, err := env.sessions.Resolve(ctx, reg.Token)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, reg.User.ID, id.UserID)
		require.Equal(t, reg.Session.ID, id.SessionID)

		userID, sessionID, ok, err := env.sessions.ResolveSession(ctx, reg.Token)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, reg.User.ID, userID)
		require.Equal(t, reg.Session.ID, sessionID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, ok, err := env.sessions.Resolve(ctx, "not-a-jwt")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("deactivated user", func(t *testing.T) {
		user := reg.User
		user.IsActive = false
		require.NoError(t, env.store.Users().UpdateUser(ctx, user))
		t.Cleanup(func() {
			user.IsActive = true
			require.NoError(t, env.store.Users().UpdateUser(ctx, user))
		})

		_, ok, err := env.sessions.Resolve(ctx, reg.Token)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestSessionRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reg := env.register(t, "Jane Doe", "jane@example.com")

	require.NoError(t, env.sessions.Revoke(ctx, reg.Session.ID))
	require.NoError(t, env.sessions.Revoke(ctx, reg.Session.ID))
	require.NoError(t, env.sessions.Revoke(ctx, "unknown"))

	_, ok, err := env.sessions.Resolve(ctx, reg.Token)
	require.NoError(t, err)
	require.False(t, ok)

	// A fresh login is unaffected by the revoked session.
	res, err := env.auth.Authenticate(ctx, "jane@example.com", testPassword, testMeta)
	require.NoError(t, err)
	_, ok, err = env.sessions.Resolve(ctx, res.Token)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reg := env.register(t, "Jane Doe", "jane@example.com")
	require.True(t, reg.Session.ExpiresAt.Equal(t0.Add(24*time.Hour)))

	env.clock.Advance(25 * time.Hour)
	_, ok, err := env.sessions.Resolve(ctx, reg.Token)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHousekeepingCleanup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reg := env.register(t, "Jane Doe", "jane@example.com")
	require.NoError(t, env.sessions.Revoke(ctx, reg.Session.ID))

	env.clock.Advance(time.Hour)
	live, err := env.auth.Authenticate(ctx, "jane@example.com", testPassword, testMeta)
	require.NoError(t, err)

	hk := NewHousekeepingService(env.store, discardLogger(), 0)
	require.Equal(t, time.Hour, hk.Interval)
	hk.Now = env.clock.Now

	require.Equal(t, int64(1), hk.Cleanup(ctx))

	_, ok, err := env.sessions.Resolve(ctx, live.Token)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestHousekeepingStartStop(t *testing.T) {
	env := newTestEnv(t)
	hk := NewHousekeepingService(env.store, discardLogger(), time.Hour)
	hk.Start()
	hk.Stop()
}
