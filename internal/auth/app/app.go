package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meusdesafios/auth/internal/auth/domain"
	httpapi "github.com/meusdesafios/auth/internal/auth/http"
	"github.com/meusdesafios/auth/internal/auth/identity"
	"github.com/meusdesafios/auth/internal/auth/service"
	"github.com/meusdesafios/auth/internal/auth/store"
	"github.com/meusdesafios/auth/internal/auth/store/drivers/sqlite"
	"github.com/meusdesafios/auth/pkg/cookiex"
	"github.com/meusdesafios/auth/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	tokenService        *service.TokenService
	sessionService      *service.SessionService
	userService         *service.UserService
	loginService        *service.LoginService
	resolverService     *service.ResolverService
	housekeepingService *service.HousekeepingService

	cookies *cookiex.Manager

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if app.cfg.JWTSecret == "" {
		app.logger.Warn("JWT_SECRET not set, using insecure development fallback")
		app.cfg.JWTSecret = devFallbackSecret
	}
	if app.cfg.CookieSealSecret == "" {
		app.logger.Warn("COOKIE_SEAL_SECRET not set, using insecure development fallback")
		app.cfg.CookieSealSecret = devFallbackSecret
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	tokens, err := service.NewTokenService([]byte(app.cfg.JWTSecret), app.cfg.Issuer, app.cfg.AccessTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	app.tokenService = tokens

	cookies, err := cookiex.New(cookiex.Config{
		Secret: app.cfg.CookieSealSecret,
		Secure: app.cfg.Env != "dev",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize cookie manager: %w", err)
	}
	app.cookies = cookies

	app.sessionService = &service.SessionService{
		Store:      app.db,
		RefreshTTL: app.cfg.RefreshTTL,
	}
	app.userService = &service.UserService{Store: app.db}

	providers := identity.Registry{}
	if app.cfg.GoogleClientID != "" {
		providers[domain.ProviderGoogle] = identity.NewGoogleVerifier(app.cfg.GoogleClientID)
		app.logger.Info("google sign-in enabled")
	}
	if len(providers) == 0 {
		app.logger.Warn("no identity providers configured, logins will fail")
	}

	app.loginService = &service.LoginService{
		Providers: providers,
		Users:     app.userService,
		Sessions:  app.sessionService,
		Tokens:    app.tokenService,
	}
	app.resolverService = &service.ResolverService{
		Tokens:  app.tokenService,
		Cookies: app.cookies,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.LoginService = app.loginService
	router.SessionService = app.sessionService
	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.ResolverService = app.resolverService
	router.Cookies = app.cookies
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
