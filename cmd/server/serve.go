package main

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

	"github.com/dukerupert/vitrina/internal"
	"github.com/dukerupert/vitrina/internal/cache"
	"github.com/dukerupert/vitrina/internal/cookie"
	"github.com/dukerupert/vitrina/internal/email"
	"github.com/dukerupert/vitrina/internal/events"
	"github.com/dukerupert/vitrina/internal/handler"
	"github.com/dukerupert/vitrina/internal/handler/admin"
	"github.com/dukerupert/vitrina/internal/handler/storefront"
	"github.com/dukerupert/vitrina/internal/jobs"
	"github.com/dukerupert/vitrina/internal/middleware"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/dukerupert/vitrina/internal/router"
	"github.com/dukerupert/vitrina/internal/routes"
	"github.com/dukerupert/vitrina/internal/service"
	"github.com/dukerupert/vitrina/internal/storage"
	"github.com/dukerupert/vitrina/internal/telemetry"
	"github.com/dukerupert/vitrina/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	// Error tracking
	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return err
	}
	defer flushSentry()

	// Migrations run through database/sql, the app uses the pgx pool
	logger.Info("Running database migrations...")
	if err := withSQLDB(cfg.DatabaseURL, internal.RunMigrations); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := repository.NewStore(pool)
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Catalog cache
	var catalogCache cache.Cache = cache.Noop{}
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis.URL, "vitrina:")
		if err != nil {
			return err
		}
		defer rc.Close()
		catalogCache = rc
		logger.Info("Redis cache enabled", "ttl", cfg.Redis.TTL)
	}

	// Order events
	var publisher events.Publisher = events.Noop{}
	if cfg.NATS.URL != "" {
		np, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, logger)
		if err != nil {
			return err
		}
		defer np.Close()
		publisher = np
		logger.Info("NATS publisher enabled", "subject_prefix", cfg.NATS.SubjectPrefix)
	}

	// Order emails
	var sender email.Sender = email.NoopSender{}
	if cfg.Email.Host != "" {
		sender = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		}, logger)
	} else {
		logger.Info("SMTP_HOST not set, order emails are disabled")
	}
	mailer, err := email.NewService(sender, cfg.Email.From, cfg.Email.FromName, cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	// Media
	media, err := storage.NewResolver(ctx, storage.Config{
		Provider:    cfg.Storage.Provider,
		LocalPath:   cfg.Storage.LocalPath,
		LocalURL:    cfg.Storage.LocalURL,
		S3Bucket:    cfg.Storage.S3Bucket,
		S3Region:    cfg.Storage.S3Region,
		S3Endpoint:  cfg.Storage.S3Endpoint,
		S3AccessKey: cfg.Storage.S3AccessKey,
		S3SecretKey: cfg.Storage.S3SecretKey,
		S3PublicURL: cfg.Storage.S3PublicURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	businessMetrics := telemetry.NewBusinessMetrics("vitrina", registry)
	httpMetrics := middleware.NewMetrics("vitrina", registry)

	// Background work
	bg := worker.New(worker.Config{}, logger)
	bg.Every(jobs.TaskPruneSessions, time.Hour, jobs.PruneSessionsTask(store, logger))

	// Services
	sessionService := service.NewSessionService(store, cfg.Session.TTL)
	catalogService := service.NewCatalogService(store, catalogCache, cfg.Redis.TTL, businessMetrics)
	catalogAdminService := service.NewCatalogAdminService(store, media, catalogCache)
	cartService := service.NewCartService(store, businessMetrics)
	checkoutService := service.NewCheckoutService(store, mailer, publisher, bg, businessMetrics, logger)
	orderService := service.NewOrderService(store, publisher, bg, businessMetrics, logger)
	reviewService := service.NewReviewService(store, catalogCache, businessMetrics)
	userService := service.NewUserService(store, cfg.Session.TTL, businessMetrics)
	profileService := service.NewProfileService(store, media)

	cookies := cookie.NewConfig(cfg.Session.CookieDomain, !cfg.IsDev(), cfg.Session.TTL)

	// Rate limiting
	defaultLimit := middleware.DefaultRateLimiterConfig()
	defaultLimit.RequestsPerSecond = cfg.RateLimit.RPS
	defaultLimit.BurstSize = cfg.RateLimit.Burst
	defaultLimiter := middleware.NewRateLimiter(defaultLimit)
	defer defaultLimiter.Stop()

	strictLimit := middleware.StrictRateLimiterConfig()
	strictLimit.RequestsPerSecond = cfg.RateLimit.AuthRPS
	strictLimit.BurstSize = cfg.RateLimit.AuthBurst
	strictLimiter := middleware.NewRateLimiter(strictLimit)
	defer strictLimiter.Stop()

	// Security headers
	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.IsDev() {
		securityConfig.HSTSMaxAge = 0
	}

	// ==========================================================================
	// Routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithClientIP(!cfg.IsDev()),
		httpMetrics.Middleware,
		telemetry.SentryMiddleware(),
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySize(),
		middleware.Timeout(),
		defaultLimiter.Middleware,
		router.Logger(logger),
		middleware.WithUser(sessionService),
		middleware.WithRequestLogger(logger),
	)

	r.Get("/health", healthHandler(store))
	r.Handle(http.MethodGet, "/metrics", httpMetrics.Handler())
	if cfg.Storage.Provider == "" || cfg.Storage.Provider == "local" {
		r.Static(cfg.Storage.LocalURL, cfg.Storage.LocalPath)
	}
	r.NotFound(handler.NotFoundResponse)

	api := r.Route("/api")
	routes.RegisterStorefrontRoutes(api, routes.StorefrontDeps{
		CatalogHandler: storefront.NewCatalogHandler(catalogService),
		ReviewHandler:  storefront.NewReviewHandler(reviewService),
		BasketHandler:  storefront.NewBasketHandler(cartService),
		OrderHandler:   storefront.NewOrderHandler(checkoutService, orderService),
		AuthHandler:    storefront.NewAuthHandler(userService, cookies),
		ProfileHandler: storefront.NewProfileHandler(profileService),
		RequireOwner:   middleware.WithOwner(sessionService, cookies),
		StrictLimit:    strictLimiter.Middleware,
	})
	routes.RegisterAdminRoutes(api, routes.AdminDeps{
		ProductHandler: admin.NewProductHandler(catalogAdminService),
		OrderHandler:   admin.NewOrderHandler(orderService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router.CORS(cfg.CORS.AllowedOrigins)(r),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	// ==========================================================================
	// Run
	// ==========================================================================

	workerDone := make(chan error, 1)
	go func() { workerDone <- bg.Start(ctx) }()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	stop()
	if err := <-workerDone; err != nil {
		logger.Error("worker stopped with error", "error", err)
	}
	return nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler reports 200 when the database answers and 503 otherwise.
func healthHandler(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			middleware.GetLogger(r.Context()).Error("health check failed", "error", err)
			handler.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
