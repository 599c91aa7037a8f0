package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store/drivers/sqlite"
	"github.com/AkshatMishra0/Derivity-ai/pkg/cryptox"
	"github.com/AkshatMishra0/Derivity-ai/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

var testMeta = domain.RequestMeta{IP: "203.0.113.7", UserAgent: "go-test"}

const testPassword = "Abcdefg1"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	store    *sqlite.Store
	clock    *fakeClock
	metrics  *Metrics
	sessions *SessionService
	auth     *AuthService
	accounts *AccountService
	contact  *ContactService
	chat     *ChatService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "site.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clock := &fakeClock{now: t0}

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Issuer: "https://derivity.example",
		Now:    clock.Now,
	})
	require.NoError(t, err)

	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	hasher := cryptox.NewPasswordHasher("test-pepper", cryptox.Argon2Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16,
	})

	sessions := &SessionService{
		Store:      st,
		KeyManager: km,
		Issuer:     "https://derivity.example",
		TTL:        24 * time.Hour,
		Now:        clock.Now,
	}
	audit := &SecurityLog{Store: st}

	return &testEnv{
		store:    st,
		clock:    clock,
		metrics:  metrics,
		sessions: sessions,
		auth: &AuthService{
			Store:    st,
			Hasher:   hasher,
			Sessions: sessions,
			Audit:    audit,
			Lockout:  DefaultLockoutPolicy,
			Metrics:  metrics,
			Now:      clock.Now,
		},
		accounts: &AccountService{
			Store:    st,
			Hasher:   hasher,
			Sessions: sessions,
			Audit:    audit,
			Metrics:  metrics,
			Now:      clock.Now,
		},
		contact: &ContactService{Store: st, Now: clock.Now},
		chat:    &ChatService{Store: st, Now: clock.Now},
	}
}

// register creates an account with testPassword.
func (e *testEnv) register(t *testing.T, name, email string) AuthResult {
	t.Helper()
	res, err := e.accounts.Register(context.Background(), Registration{
		FullName: name,
		Email:    email,
		Password: testPassword,
	}, testMeta)
	require.NoError(t, err)
	return res
}

func (e *testEnv) profile(t *testing.T, userID string) domain.Profile {
	t.Helper()
	p, err := e.store.Profiles().GetProfileByUserID(context.Background(), userID)
	require.NoError(t, err)
	return p
}

func (e *testEnv) setFailedAttempts(t *testing.T, userID string, n int) {
	t.Helper()
	p := e.profile(t, userID)
	p.FailedAttempts = n
	require.NoError(t, e.store.Profiles().UpdateProfile(context.Background(), p))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// noProfileStore hides every profile inside transactions, simulating a user
// whose profile row was lost.
type noProfileStore struct {
	store.Store
}

func (s noProfileStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(noProfileTx{wrappedTx: tx})
	})
}

// wrappedTx is embedded under its own name so the Tx method stays promoted.
type wrappedTx = store.Tx

type noProfileTx struct {
	wrappedTx
}

func (t noProfileTx) Profiles() store.Profiles { return missingProfiles{Profiles: t.wrappedTx.Profiles()} }

type missingProfiles struct {
	store.Profiles
}

func (missingProfiles) GetProfileByUserIDForUpdate(context.Context, string) (domain.Profile, error) {
	return domain.Profile{}, store.ErrNotFound
}

// takenHandles reports every handle as taken and counts the checks.
type takenHandles struct {
	store.Store
	checks int
}

func (s *takenHandles) Users() store.Users { return takenUsers{Users: s.Store.Users(), s: s} }

type takenUsers struct {
	store.Users
	s *takenHandles
}

func (u takenUsers) HandleExists(context.Context, string) (bool, error) {
	u.s.checks++
	return true, nil
}

// failingSessions fails every session insert inside transactions.
type failingSessions struct {
	store.Store
}

func (s failingSessions) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(failingSessionsTx{wrappedTx: tx})
	})
}

type failingSessionsTx struct {
	wrappedTx
}

func (t failingSessionsTx) Sessions() store.Sessions { return brokenSessions{Sessions: t.wrappedTx.Sessions()} }

type brokenSessions struct {
	store.Sessions
}

func (brokenSessions) CreateSession(context.Context, domain.Session) error {
	return errors.New("disk full")
}

// failingEvents rejects every security event write.
type failingEvents struct {
	store.Store
}

func (s failingEvents) SecurityEvents() store.SecurityEvents {
	return brokenEvents{SecurityEvents: s.Store.SecurityEvents()}
}

type brokenEvents struct {
	store.SecurityEvents
}

func (brokenEvents) CreateSecurityEvent(context.Context, domain.SecurityEvent) error {
	return errors.New("audit table unavailable")
}

// recordingConversations keeps every conversation written through it.
type recordingConversations struct {
	store.Store
	mu    sync.Mutex
	saved []domain.Conversation
}

func (s *recordingConversations) Conversations() store.Conversations { return s }

func (s *recordingConversations) CreateConversation(ctx context.Context, c domain.Conversation) error {
	s.mu.Lock()
	s.saved = append(s.saved, c)
	s.mu.Unlock()
	return s.Store.Conversations().CreateConversation(ctx, c)
}
