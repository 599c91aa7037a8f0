package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/service"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store/drivers/sqlite"
	"github.com/AkshatMishra0/Derivity-ai/pkg/cryptox"
	"github.com/AkshatMishra0/Derivity-ai/pkg/httpx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "Abcdefg1"
	cookieName   = "test_session"
)

type testServer struct {
	router *Router
	store  *sqlite.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "site.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "https://derivity.example"})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metrics, err := service.NewMetrics(reg)
	require.NoError(t, err)
	httpMetrics, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: reg})
	require.NoError(t, err)

	hasher := cryptox.NewPasswordHasher("test-pepper", cryptox.Argon2Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16,
	})
	sessions := &service.SessionService{
		Store:      st,
		KeyManager: km,
		Issuer:     "https://derivity.example",
		TTL:        time.Hour,
	}
	audit := &service.SecurityLog{Store: st}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(km, "test", st, logger)
	r.SessionService = sessions
	r.AuthService = &service.AuthService{
		Store: st, Hasher: hasher, Sessions: sessions, Audit: audit,
		Lockout: service.DefaultLockoutPolicy, Metrics: metrics,
	}
	r.AccountService = &service.AccountService{
		Store: st, Hasher: hasher, Sessions: sessions, Audit: audit, Metrics: metrics,
	}
	r.ContactService = &service.ContactService{Store: st}
	r.ChatService = &service.ChatService{Store: st}
	r.Cookie = CookieConfig{Name: cookieName}
	r.Metrics = httpMetrics
	r.Gatherer = reg
	r.ApplyRoutes()

	return &testServer{router: r, store: st}
}

type reqOpt func(*http.Request)

func withCookie(c *http.Cookie) reqOpt {
	return func(r *http.Request) { r.AddCookie(c) }
}

// fromIP makes the request arrive directly from ip.
func fromIP(ip string) reqOpt {
	return func(r *http.Request) { r.RemoteAddr = ip + ":1234" }
}

func withHeader(key, value string) reqOpt {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

func (s *testServer) do(t *testing.T, method, path string, body any, opts ...reqOpt) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", cookieName)
	return nil
}

func (s *testServer) signup(t *testing.T, fullName, email string) *http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/signup", SignupRequest{
		FullName: fullName,
		Email:    email,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func requireEnvelope(t *testing.T, rec *httptest.ResponseRecorder, code int, status, message string) map[string]any {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	body := decode(t, rec)
	require.Equal(t, status, body["status"])
	require.Equal(t, message, body["message"])
	return body
}
