// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/dangerclosesec/apmap"
	"github.com/dangerclosesec/apmap/internal/audit"
	"github.com/dangerclosesec/apmap/internal/auth"
	"github.com/dangerclosesec/apmap/internal/cache"
	"github.com/dangerclosesec/apmap/internal/config"
	"github.com/dangerclosesec/apmap/internal/email"
	"github.com/dangerclosesec/apmap/internal/email/mailer"
	"github.com/dangerclosesec/apmap/internal/handler"
	"github.com/dangerclosesec/apmap/internal/metrics"
	"github.com/dangerclosesec/apmap/internal/middleware"
	"github.com/dangerclosesec/apmap/internal/migrate"
	"github.com/dangerclosesec/apmap/internal/realtime"
	"github.com/dangerclosesec/apmap/internal/repository"
	"github.com/dangerclosesec/apmap/internal/service"
	"github.com/dangerclosesec/apmap/internal/wigle"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := migrateDatabase(ctx, db); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	apRepo := repository.NewAccessPointRepository(db)
	passwordRepo := repository.NewPasswordRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	blockRepo := repository.NewServiceBlockRepository(db)
	speedTestRepo := repository.NewSpeedTestRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	auditLogRepo := repository.NewCredentialAuditLogRepository(db)

	// Initialize auth services
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize email service
	emailService, err := email.NewEmailService(cfg, email.ProviderFor(cfg))
	if err != nil {
		return fmt.Errorf("initializing email service: %w", err)
	}
	welcomeMailer := mailer.NewWelcomeMailer(emailService, cfg.BaseURL)

	// Real-time fan-out, relayed through AMQP when several instances run
	hub := realtime.NewHub()
	go hub.Run(ctx)

	var broadcaster realtime.Broadcaster = hub
	if cfg.AMQP.URL != "" {
		relay := realtime.NewAMQPRelay(hub, cfg.AMQP.URL, cfg.AMQP.Exchange)
		go relay.Run(ctx)
		broadcaster = relay
	}

	// Cache, a no-op without Redis
	redisClient := cache.NewRedisClient(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}
	responseCache := cache.New(redisClient, "apmap:")

	wigleSource := wigle.NewCircuitBreakerClient(wigle.NewClient(&wigle.Config{
		BaseURL:  cfg.Wigle.BaseURL,
		APIName:  cfg.Wigle.APIName,
		APIToken: cfg.Wigle.APIToken,
		Timeout:  cfg.Wigle.Timeout,
	}), wigle.DefaultBreakerSettings())

	// Initialize services
	authService := service.NewAuthService(userRepo, orgRepo, passwordHasher, tokenManager, welcomeMailer)
	accessPointService := service.NewAccessPointService(
		userRepo,
		apRepo,
		passwordRepo,
		ratingRepo,
		blockRepo,
		speedTestRepo,
		broadcaster,
		audit.NewRepositoryLogger(auditLogRepo),
	)
	organizationService := service.NewOrganizationService(userRepo, orgRepo, apRepo, auditLogRepo)
	speedTestService := service.NewSpeedTestService(userRepo, apRepo, speedTestRepo, broadcaster)
	wigleService := service.NewWigleService(userRepo, apRepo, wigleSource, responseCache)
	userService := service.NewUserService(userRepo, favoriteRepo)

	// Initialize handlers
	handlers := &handler.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		AccessPoints:  handler.NewAccessPointHandler(accessPointService),
		Organizations: handler.NewOrganizationHandler(organizationService),
		AuditLogs:     handler.NewAuditLogHandler(organizationService),
		SpeedTests:    handler.NewSpeedTestHandler(speedTestService),
		Wigle:         handler.NewWigleHandler(wigleService),
		Users:         handler.NewUserHandler(userService),
	}
	realtimeHandler := handler.NewRealtimeHandler(hub, realtime.NewUpgrader(cfg.Server.CORSOrigins), organizationService)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(audit.Middleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Websocket connections outlive the request timeout
	r.With(middleware.QueryTokenAuth(tokenManager)).Get("/ws", realtimeHandler.Serve)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		r.Use(httprate.Limit(
			cfg.RateLimit.MaxRequests,
			cfg.RateLimit.Window,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(rateLimited),
		))

		handlers.Mount(r, tokenManager)
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "amqp", cfg.AMQP.URL != "", "cache", responseCache.Enabled())
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(shutdownCtx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}

		// Stops the hub, which closes every websocket client
		cancel()
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Database.LogSQL {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func migrateDatabase(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting database instance: %w", err)
	}

	_, err = migrate.NewMigrator(sqlDB, apmap.MigrationsFS, "migrations").Apply(ctx)
	return err
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"error":{"message":"Too many requests from this IP, please try again later.","status":429}}`))
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}

					logger.Error("panic recovered",
						"error", errors.New("panic recovered"),
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error":{"message":"An unexpected error occurred","status":500}}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
