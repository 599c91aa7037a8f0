package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/AkshatMishra0/Derivity-ai/internal/site/http"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/service"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store/drivers/postgres"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store/drivers/sqlite"
	"github.com/AkshatMishra0/Derivity-ai/pkg/cryptox"
	"github.com/AkshatMishra0/Derivity-ai/pkg/httpx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/jwtx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the site service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	hasher     *cryptox.PasswordHasher
	registry   *prometheus.Registry

	// Services
	sessionService      *service.SessionService
	authService         *service.AuthService
	accountService      *service.AccountService
	contactService      *service.ContactService
	chatService         *service.ChatService
	housekeepingService *service.HousekeepingService
	housekeepingRunning bool

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "derivity-site",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCrypto(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()
	app.housekeepingRunning = true

	app.logger.Info("site service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down site service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingRunning {
		app.housekeepingService.Stop()
		app.housekeepingRunning = false
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("site service stopped")
	return nil
}

// OpenStore opens the configured database driver and applies its schema.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.FileDSN(cfg.DatabaseFile))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

func (app *Application) initDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initCrypto loads the password pepper and the session signing key, creating
// both on first start.
func (app *Application) initCrypto() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper, cryptox.DefaultArgon2Params)

	pemKey, err := cryptox.LoadOrCreateEd25519Key(app.cfg.SigningKeyFile)
	if err != nil {
		return fmt.Errorf("failed to load signing key: %w", err)
	}
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Issuer:        app.cfg.Issuer,
		PrivateKeyPEM: pemKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keyManager = km
	return nil
}

func (app *Application) initServices() error {
	metrics, err := service.NewMetrics(app.registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	app.sessionService = &service.SessionService{
		Store:      app.db,
		KeyManager: app.keyManager,
		Issuer:     app.cfg.Issuer,
		TTL:        app.cfg.SessionTTL,
	}
	audit := &service.SecurityLog{Store: app.db}

	app.authService = &service.AuthService{
		Store:    app.db,
		Hasher:   app.hasher,
		Sessions: app.sessionService,
		Audit:    audit,
		Lockout:  service.DefaultLockoutPolicy,
		Metrics:  metrics,
	}
	app.accountService = &service.AccountService{
		Store:    app.db,
		Hasher:   app.hasher,
		Sessions: app.sessionService,
		Audit:    audit,
		Metrics:  metrics,
	}
	app.contactService = &service.ContactService{Store: app.db}
	app.chatService = &service.ChatService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

func (app *Application) initHTTP() error {
	httpMetrics, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: app.registry})
	if err != nil {
		return fmt.Errorf("failed to register http metrics: %w", err)
	}

	proxies, err := httpx.ParseTrustedProxies(app.cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	httpx.SetTrustedProxies(proxies)

	router := httpapi.NewRouter(app.keyManager, BuildVersion, app.db, app.logger)

	router.AuthService = app.authService
	router.AccountService = app.accountService
	router.SessionService = app.sessionService
	router.ContactService = app.contactService
	router.ChatService = app.chatService
	router.Cookie = httpapi.CookieConfig{Name: app.cfg.CookieName, Secure: app.cfg.CookieSecure}
	router.Metrics = httpMetrics
	router.Gatherer = app.registry
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
