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

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/audit"
	"github.com/simp-lee/sitecms/internal/config"
	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/middleware"
	"github.com/simp-lee/sitecms/internal/module/faq"
	"github.com/simp-lee/sitecms/internal/module/feature"
	"github.com/simp-lee/sitecms/internal/module/featurepage"
	"github.com/simp-lee/sitecms/internal/module/industry"
	"github.com/simp-lee/sitecms/internal/module/jobposting"
	"github.com/simp-lee/sitecms/internal/module/partner"
	"github.com/simp-lee/sitecms/internal/module/pricingplan"
	"github.com/simp-lee/sitecms/internal/module/siteconfig"
)

const (
	defaultWriteTimeout = 60 * time.Second
	shutdownTimeout     = 5 * time.Second
	auditBufferSize     = 512
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	audit  *audit.AsyncRecorder
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, writeTimeout time.Duration) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// models lists every table of the content API in migration order.
var models = []any{
	&domain.FAQ{}, &domain.FAQTranslation{},
	&domain.Feature{}, &domain.FeatureTranslation{},
	&domain.PricingPlan{}, &domain.PricingPlanTranslation{}, &domain.PlanFeature{},
	&domain.Industry{}, &domain.IndustryTranslation{},
	&domain.IndustryItem{}, &domain.IndustryItemTranslation{},
	&domain.JobPosting{}, &domain.JobPostingTranslation{},
	&domain.JobPostingItem{}, &domain.JobPostingItemTranslation{},
	&domain.FeaturePage{}, &domain.FeaturePageTranslation{},
	&domain.Partner{}, &domain.PartnerTranslation{},
	&domain.SiteConfig{}, &domain.SiteConfigTranslation{},
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the database, the audit trail, every content module
// and the middleware chain.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	if !cfg.Auth.Enabled {
		log.Warn("auth is disabled: admin routes are open")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", slog.Any("error", err))
			}
		}
	}()

	if cfg.Server.Mode == gin.DebugMode {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed", slog.Int("tables", len(models)))
	}

	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	corsConfig, err := resolveCORSConfig(cfg.Server.Mode, &cfg.Server.CORS)
	if err != nil {
		return nil, err
	}
	skipPaths := []string{"/health"}
	if cfg.Metrics.Enabled {
		skipPaths = append(skipPaths, cfg.Metrics.Path)
	}

	handlers := []gin.HandlerFunc{
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{TrustUpstream: cfg.Server.TrustRequestID}),
		middleware.LoggerWithConfig(log.Logger, middleware.LoggerConfig{SkipPaths: skipPaths}),
	}
	if cfg.Metrics.Enabled {
		handlers = append(handlers, middleware.Metrics())
	}
	handlers = append(handlers, middleware.CORSWithConfig(corsConfig), middleware.Locale())
	engine.Use(handlers...)

	recorder := audit.NewAsyncRecorder(audit.NewLogSink(log.Logger), auditBufferSize)
	defer func() {
		if !success {
			_ = recorder.Close()
		}
	}()

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules:     newModules(db, recorder),
		DB:          db,
		AdminGuards: adminGuards(&cfg.Auth),
		MetricsPath: metricsPath(&cfg.Metrics),
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		audit:  recorder,
		cfg:    cfg,
	}, nil
}

// newModules builds every content module: repository, service, handler.
func newModules(db *gorm.DB, rec audit.Recorder) []Module {
	return []Module{
		faq.NewModule(faq.NewHandler(faq.NewService(faq.NewRepository(db), rec))),
		feature.NewModule(feature.NewHandler(feature.NewService(feature.NewRepository(db), rec))),
		pricingplan.NewModule(pricingplan.NewHandler(pricingplan.NewService(pricingplan.NewRepository(db), rec))),
		industry.NewModule(industry.NewHandler(industry.NewService(industry.NewRepository(db), rec))),
		jobposting.NewModule(jobposting.NewHandler(jobposting.NewService(jobposting.NewRepository(db), rec))),
		featurepage.NewModule(featurepage.NewHandler(featurepage.NewService(featurepage.NewRepository(db), rec))),
		partner.NewModule(partner.NewHandler(partner.NewService(partner.NewRepository(db), rec))),
		siteconfig.NewModule(siteconfig.NewHandler(siteconfig.NewService(siteconfig.NewRepository(db), rec))),
	}
}

// adminGuards returns the middleware protecting the admin API, or nil when
// auth is disabled.
func adminGuards(cfg *config.AuthConfig) []gin.HandlerFunc {
	if !cfg.Enabled {
		return nil
	}
	return []gin.HandlerFunc{
		middleware.Auth(middleware.AuthConfig{Secret: cfg.JWTSecret}),
		middleware.RequireRole(cfg.AdminRoles...),
	}
}

func metricsPath(cfg *config.MetricsConfig) string {
	if !cfg.Enabled {
		return ""
	}
	return cfg.Path
}

// resolveCORSConfig maps the CORS settings onto the middleware config. In
// release mode an empty allowlist denies every cross-origin request.
func resolveCORSConfig(mode string, cfg *config.CORSConfig) (middleware.CORSConfig, error) {
	corsConfig := middleware.DefaultCORSConfig()

	switch {
	case len(cfg.AllowOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowOrigins
	case mode == gin.ReleaseMode:
		corsConfig.AllowOrigins = []string{}
	}
	if len(cfg.AllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowHeaders
	}
	corsConfig.AllowCredentials = cfg.AllowCredentials

	if cfg.MaxAge != "" {
		d, err := time.ParseDuration(cfg.MaxAge)
		if err != nil {
			return middleware.CORSConfig{}, fmt.Errorf("invalid server.cors.max_age %q: %w", cfg.MaxAge, err)
		}
		corsConfig.MaxAge = d
	}
	return corsConfig, nil
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// writeTimeout returns the configured server timeout, or the default when unset.
func writeTimeout(s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultWriteTimeout
}

// Handler returns the HTTP handler of the app.
func (a *App) Handler() http.Handler {
	return a.engine
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It shuts the server down gracefully, then drains the audit trail and closes
// the database and the logger.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, writeTimeout(a.cfg.Server.Timeout))

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.audit != nil {
		if err := a.audit.Close(); err != nil {
			log.Error("audit close error", slog.Any("error", err))
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error("database close error", slog.Any("error", err))
			} else {
				log.Info("database connection closed")
			}
		}
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}
	return runErr
}
