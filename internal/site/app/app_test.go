package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/pkg/sitesdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		DatabaseDriver:       DriverSQLite,
		DatabaseFile:         filepath.Join(dir, "site.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		SigningKeyFile:       filepath.Join(dir, "keys", "session.key"),
		Issuer:               "derivity-test",
		SessionTTL:           time.Hour,
		CookieName:           "derivity_session",
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 8080,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestNew_WiresService(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	require.FileExists(t, cfg.PepperFile)
	require.FileExists(t, cfg.SigningKeyFile)

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	body := bytes.NewBufferString(`{"fullName":"Jane Doe","email":"jane@example.com","password":"Abcdefg1"}`)
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/signup", body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `site_signups_total{outcome="success"} 1`)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNew_ReusesKeyMaterial(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	pepper, err := os.ReadFile(cfg.PepperFile)
	require.NoError(t, err)
	key, err := os.ReadFile(cfg.SigningKeyFile)
	require.NoError(t, err)
	require.NoError(t, first.Shutdown())

	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Shutdown() })

	pepper2, err := os.ReadFile(cfg.PepperFile)
	require.NoError(t, err)
	key2, err := os.ReadFile(cfg.SigningKeyFile)
	require.NoError(t, err)
	require.Equal(t, pepper, pepper2)
	require.Equal(t, key, key2)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "mysql"

	_, err := New(cfg)
	require.ErrorContains(t, err, "invalid configuration")
}

func TestOpenStore_AppliesMigrations(t *testing.T) {
	cfg := testConfig(t)

	db, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, db.Ping(context.Background()))
	require.NoError(t, db.Close())

	// Re-opening an already migrated database is a no-op.
	db, err = OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

// TestEndToEnd drives the wired application over real HTTP with the Go client.
func TestEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)
	ctx := context.Background()

	client, err := sitesdk.NewClient(srv.URL)
	require.NoError(t, err)

	health, err := client.Readiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)

	user, err := client.Signup(ctx, sitesdk.SignupRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "Abcdefg1",
	})
	require.NoError(t, err)
	require.Equal(t, "jane", user.Handle)

	ck, ok := client.SessionCookie(cfg.CookieName)
	require.True(t, ok)
	require.NotEmpty(t, ck.Value)

	phone := "+14155550100"
	_, err = client.UpdateProfile(ctx, sitesdk.ProfileUpdate{Phone: &phone})
	require.NoError(t, err)
	_, profile, err := client.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, phone, profile.Phone)

	require.NoError(t, client.Logout(ctx))
	status, err := client.AuthStatus(ctx)
	require.NoError(t, err)
	require.False(t, status.Authenticated)

	_, err = client.Login(ctx, "jane@example.com", "Wrong1234")
	var apiErr *sitesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid email or password", apiErr.Message)

	_, err = client.Login(ctx, "JANE@example.com", "Abcdefg1")
	require.NoError(t, err)

	events, err := client.SecurityEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.True(t, events[0].Success)
	require.Equal(t, "invalid password", events[1].Reason)

	reply, err := client.Chat(ctx, "hello")
	require.NoError(t, err)
	require.NotEmpty(t, reply)

	msg, err := client.Contact(ctx, sitesdk.ContactRequest{Name: "Jane Doe", Email: "jane@example.com", Message: "Hi"})
	require.NoError(t, err)
	require.Equal(t, "Thank you for your message! We'll get back to you soon.", msg)
}
