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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"

	httpapi "github.com/project-nt/auth/internal/auth/http"
	"github.com/project-nt/auth/internal/auth/notify"
	"github.com/project-nt/auth/internal/auth/observability"
	"github.com/project-nt/auth/internal/auth/service"
	"github.com/project-nt/auth/pkg/cryptox"
	"github.com/project-nt/auth/pkg/httpx"
	"github.com/project-nt/auth/pkg/jwtx"
	"github.com/project-nt/auth/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       MigratableStore
	registry *prometheus.Registry
	metrics  *observability.Metrics
	session  *jwtx.HMACSigner
	reset    *jwtx.HMACSigner
	notifier notify.Notifier

	// Services
	sessionService      *service.SessionService
	resetService        *service.ResetService
	userService         *service.UserService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "auth-service",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	// Pepper is loaded eagerly so a bad path fails startup, not the first login.
	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, oops.Code("PEPPER_LOAD_FAILED").With("file", app.cfg.PepperFile).Wrap(err)
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initSigners(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initNotifier(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.registry = observability.NewRegistry()
	app.metrics = observability.NewMetrics(app.registry)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Let in-flight reset emails finish
	app.resetService.Wait()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// Handler exposes the HTTP handler, for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	db, err := OpenStore(ctx, app.cfg, app.logger)
	if err != nil {
		return err
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return oops.Code("MIGRATION_FAILED").With("driver", app.cfg.DatabaseDriver).Wrap(err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initSigners creates the session and reset token signers. Missing secrets
// are generated for this process only, so tokens do not survive a restart.
func (app *Application) initSigners() error {
	sessionSecret, err := app.secretOrGenerate("AUTH_SESSION_SECRET", app.cfg.SessionSecret)
	if err != nil {
		return err
	}
	resetSecret, err := app.secretOrGenerate("AUTH_RESET_SECRET", app.cfg.ResetSecret)
	if err != nil {
		return err
	}

	app.session, err = jwtx.NewHMACSigner([]byte(sessionSecret), app.cfg.Issuer)
	if err != nil {
		return oops.Code("SIGNER_INIT_FAILED").With("token", "session").Wrap(err)
	}

	app.reset, err = jwtx.NewHMACSigner([]byte(resetSecret), "")
	if err != nil {
		return oops.Code("SIGNER_INIT_FAILED").With("token", "reset").Wrap(err)
	}
	// Reset expiry is decided by the stored row; allow for exp's second precision.
	app.reset.WithLeeway(time.Second)

	return nil
}

func (app *Application) secretOrGenerate(name, secret string) (string, error) {
	if secret != "" {
		return secret, nil
	}
	generated, err := cryptox.GenerateToken(cryptox.TokenSize512)
	if err != nil {
		return "", oops.Code("SIGNER_INIT_FAILED").With("setting", name).Wrap(err)
	}
	app.logger.Warn("signing secret not configured, generated one for this process", "setting", name)
	return generated, nil
}

// initNotifier picks SMTP delivery when a relay is configured and falls
// back to logging the message.
func (app *Application) initNotifier() error {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("SMTP_HOST not set, reset emails will only be logged")
		app.notifier = notify.LogNotifier{Logger: app.logger}
		return nil
	}

	n, err := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	})
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("setting", "SMTP").Wrap(err)
	}
	app.notifier = n
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:      app.db,
		Signer:     app.session,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
		Metrics:    app.metrics,
	}

	app.resetService = &service.ResetService{
		Store:    app.db,
		Signer:   app.reset,
		TTL:      app.cfg.ResetTTL,
		Notifier: app.notifier,
		LinkBase: app.cfg.ResetLinkBase,
		Metrics:  app.metrics,
	}

	app.userService = &service.UserService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.Metrics = app.metrics
	app.housekeepingService.ResetRetention = app.cfg.ResetRetention
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.Cookies = httpx.CookieConfig{Secure: app.cfg.CookieSecure}
	router.LoginURL = app.cfg.LoginURL
	router.Registry = app.registry

	// Wire services to router
	router.SessionService = app.sessionService
	router.ResetService = app.resetService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
