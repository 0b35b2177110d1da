package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/auth"
	"github.com/BradenHooton/heavyprofile/internal/background"
	"github.com/BradenHooton/heavyprofile/internal/config"
	"github.com/BradenHooton/heavyprofile/internal/database"
	"github.com/BradenHooton/heavyprofile/internal/handlers"
	middlewareCustom "github.com/BradenHooton/heavyprofile/internal/middleware"
	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/BradenHooton/heavyprofile/internal/repositories"
	"github.com/BradenHooton/heavyprofile/internal/routes"
	"github.com/BradenHooton/heavyprofile/internal/services"
	"github.com/BradenHooton/heavyprofile/internal/storage"
	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
	pkglogger "github.com/BradenHooton/heavyprofile/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Server.LogLevel)); err == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	}

	logger.Info("configuration loaded",
		slog.String("env", cfg.Server.Env),
		slog.String("attempt_store", cfg.Login.AttemptStore),
		slog.Int("max_attempts", cfg.Login.MaxAttempts),
		slog.Duration("lockout", cfg.Login.LockoutDuration),
	)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.DSN(), logger); err != nil {
			logger.Error("failed to run migrations", slog.Any("error", err))
			os.Exit(1)
		}
	}

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	policy := models.LockoutPolicy{
		MaxAttempts:     cfg.Login.MaxAttempts,
		LockoutDuration: cfg.Login.LockoutDuration,
		AttemptWindow:   cfg.Login.AttemptWindow,
	}

	// Attempt store
	var (
		attemptStore repositories.AttemptStore
		redisClient  *redis.Client
	)
	switch cfg.Login.AttemptStore {
	case config.AttemptStoreRedis:
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Error("invalid REDIS_URL", slog.Any("error", err))
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		attemptStore = repositories.NewRedisAttemptStore(redisClient, policy)
	default:
		attemptStore = repositories.NewMemoryAttemptStore(policy)
	}

	// Repositories
	adminRepo := repositories.NewAdminRepository(db)
	loginAttemptRepo := repositories.NewLoginAttemptRepository(db)
	portfolioRepo := repositories.NewPortfolioRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	faqRepo := repositories.NewFaqRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	documentsRepo := repositories.NewDocumentsRepository(db)

	auditLogger := pkglogger.NewAuditLogger(logger, cfg.Server.Env)
	metrics := middlewareCustom.NewMetrics()

	ipConfig := &pkghttp.IPConfig{
		TrustProxyHeaders: cfg.Login.TrustProxyHeaders,
		TrustedProxies:    cfg.Login.TrustedProxies,
	}

	// Login flow
	sessionManager := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL)
	timingDelay := auth.NewTimingDelay(auth.TimingConfig{
		Base:   time.Duration(cfg.Login.TimingDelayBaseMs) * time.Millisecond,
		Jitter: time.Duration(cfg.Login.TimingDelayRandomMs) * time.Millisecond,
	})
	rateLimitService := services.NewRateLimitService(attemptStore, policy, logger)
	credentialService := services.NewCredentialService(adminRepo, cfg.Login.CredentialLookupTimeout, logger)
	authService := services.NewAuthService(
		rateLimitService,
		credentialService,
		sessionManager,
		loginAttemptRepo,
		metrics,
		timingDelay,
		logger,
		auditLogger,
	)
	adminService := services.NewAdminService(adminRepo, logger, auditLogger)

	// Content
	portfolioService := services.NewPortfolioService(portfolioRepo, logger)
	serviceCatalogService := services.NewServiceCatalogService(serviceRepo, logger)
	faqService := services.NewFaqService(faqRepo, logger)
	siteService := services.NewSiteContentService(settingsRepo, documentsRepo, logger)

	// Uploads
	var objectStorage services.ObjectStorage
	var localUploads *storage.LocalStorage
	switch cfg.Upload.Backend {
	case config.UploadBackendLocal:
		localUploads, err = storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.PublicURL)
		if err != nil {
			logger.Error("failed to prepare upload directory", slog.Any("error", err))
			os.Exit(1)
		}
		objectStorage = localUploads
	case config.UploadBackendS3:
		s3Storage, err := storage.NewS3Storage(context.Background(), cfg.Upload.AWSRegion, cfg.Upload.S3Bucket, cfg.Upload.S3PublicURL)
		if err != nil {
			logger.Error("failed to initialize S3 storage", slog.Any("error", err))
			os.Exit(1)
		}
		objectStorage = s3Storage
	default:
		logger.Warn("uploads disabled, UPLOAD_BACKEND not set")
	}
	uploadService := services.NewUploadService(objectStorage, cfg.Upload.MaxBytes, logger)

	// Lead notifications
	var primaryNotifier, copyNotifier services.LeadNotifier
	if tg := services.NewTelegramNotifier(cfg.Leads.TelegramAPIBase, cfg.Leads.TelegramBotToken, cfg.Leads.TelegramChatID, logger); tg != nil {
		primaryNotifier = tg
	} else {
		logger.Warn("telegram notifier not configured, contact form is disabled")
	}
	if cfg.Leads.EmailTo != "" {
		mailer, err := services.NewSESLeadMailer(context.Background(), cfg.Leads.AWSRegion, cfg.Leads.EmailFrom, cfg.Leads.EmailTo, logger)
		if err != nil {
			logger.Error("failed to initialize SES lead mailer", slog.Any("error", err))
		} else {
			copyNotifier = mailer
		}
	}
	leadService := services.NewLeadService(primaryNotifier, copyNotifier, logger)

	// Handlers
	cookieConfig := auth.CookieConfig{Secure: cfg.Session.CookieSecure, SameSite: "strict"}
	h := routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, sessionManager, ipConfig, cookieConfig, policy),
		Admin:     handlers.NewAdminHandler(adminService, loginAttemptRepo, ipConfig),
		Portfolio: handlers.NewContentHandler[models.PortfolioItem](portfolioService, auditLogger, ipConfig),
		Services:  handlers.NewContentHandler[models.ServiceItem](serviceCatalogService, auditLogger, ipConfig),
		Faq:       handlers.NewContentHandler[models.FaqItem](faqService, auditLogger, ipConfig),
		Site:      handlers.NewSiteHandler(siteService, auditLogger, ipConfig),
		Upload:    handlers.NewUploadHandler(uploadService),
		Lead:      handlers.NewLeadHandler(leadService),
	}

	cleanupManager := background.NewCleanupManager(rateLimitService, loginAttemptRepo, logger, cfg.Login.SweepInterval)

	// Router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(metrics.Middleware)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger, ipConfig))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, h, sessionManager, ipConfig)

	if localUploads != nil && strings.HasPrefix(cfg.Upload.PublicURL, "/") {
		prefix := strings.TrimSuffix(cfg.Upload.PublicURL, "/")
		router.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Upload.Dir))))
	}

	router.Handle("/metrics", metrics.Handler())

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "healthy", "database": "up"}
		code := http.StatusOK

		if err := db.HealthCheck(ctx); err != nil {
			status["status"], status["database"] = "unhealthy", "down"
			code = http.StatusServiceUnavailable
		}
		if redisClient != nil {
			status["redis"] = "up"
			if err := repositories.PingAttemptStore(ctx, attemptStore); err != nil {
				status["status"], status["redis"] = "unhealthy", "down"
				code = http.StatusServiceUnavailable
			}
		}
		pkghttp.WriteJSON(w, code, status)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Let in-flight login audit writes finish before the pool closes
	authService.Drain()

	logger.Info("server stopped gracefully")
}
