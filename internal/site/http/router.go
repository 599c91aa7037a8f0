package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/service"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
	"github.com/AkshatMishra0/Derivity-ai/pkg/httpx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/jwtx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/AkshatMishra0/Derivity-ai/api/site" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux     *http.ServeMux
	handler http.Handler

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService    *service.AuthService
	AccountService *service.AccountService
	SessionService *service.SessionService
	ContactService *service.ContactService
	ChatService    *service.ChatService

	Cookie CookieConfig

	// Optional: request metrics and the /metrics endpoint.
	Metrics  *httpx.HTTPMetrics
	Gatherer prometheus.Gatherer
}

func NewRouter(keys *jwtx.KeyManager, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}
}

// ApplyRoutes registers every route and builds the global middleware chain.
// Call it once, after the services are set.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerSite()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// The metrics middleware sits directly on the mux so it sees the matched pattern.
	r.handler = httpx.Chain(r.Metrics.Middleware(r.Mux),
		slogx.HTTPMiddleware(r.logger),
		httpx.SessionMiddleware(r.Cookie.name(), r.SessionService),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Derivity AI Site API
//	@version		0.1.0
//	@description	Account, session and contact endpoints behind the Derivity AI website.
//	@description
//	@description	Sessions are carried in an HttpOnly cookie holding an EdDSA-signed token.
//
//	@contact.name	Derivity AI
//	@contact.url	https://github.com/AkshatMishra0/Derivity-ai
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.handler == nil {
		http.Error(w, "routes not applied", http.StatusInternalServerError)
		return
	}
	r.handler.ServeHTTP(w, req)
}

// handle registers h under pattern and under the same path with a trailing
// slash, which the site's existing clients send.
func (r *Router) handle(pattern string, h http.Handler) {
	r.Mux.Handle(pattern, h)
	if !strings.HasSuffix(pattern, "/") {
		r.Mux.Handle(pattern+"/{$}", h)
	}
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:    r.AuthService,
		AccountService: r.AccountService,
		SessionService: r.SessionService,
		Cookie:         r.Cookie,
	}

	// POST /api/login - moderate limit by IP, strict limit by IP + submitted email
	r.handle("POST /api/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.ModerateLimit),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// POST /api/signup - strict limit by IP
	r.handle("POST /api/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.handle("POST /api/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /api/auth-status - polled by every page load
	r.handle("GET /api/auth-status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{AccountService: r.AccountService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RequireSession,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.handle("GET /api/profile", secured(h.HandleGet))
	r.handle("GET /api/profile/security-events", secured(h.HandleEvents))
	r.handle("POST /api/profile/update", secured(h.HandleUpdate))
}

func (r *Router) registerSite() {
	// Public write endpoints - moderate limit by IP
	r.handle("POST /api/contact",
		httpx.Chain(&ContactHandler{ContactService: r.ContactService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.handle("POST /api/ai-chat",
		httpx.Chain(&ChatHandler{ChatService: r.ChatService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.Gatherer != nil {
		r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.Gatherer, promhttp.HandlerOpts{}))
	}
}
