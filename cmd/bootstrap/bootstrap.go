package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"online-health-consultation/config"
	deliveryHttp "online-health-consultation/internal/delivery/http"
	"online-health-consultation/internal/delivery/http/handler"
	"online-health-consultation/internal/delivery/http/middleware"
	"online-health-consultation/internal/infrastructure/cache"
	"online-health-consultation/internal/infrastructure/database"
	"online-health-consultation/internal/infrastructure/logger"
	"online-health-consultation/internal/infrastructure/mail"
	"online-health-consultation/internal/infrastructure/storage"
	"online-health-consultation/internal/repository"
	"online-health-consultation/internal/service"
	"online-health-consultation/internal/usecase"
	"online-health-consultation/pkg/jwt"
	"online-health-consultation/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// LoadConfig reads configuration and sets up the logger. The CLI commands
// that only need the database (migrate, backfill) stop here.
func LoadConfig(path string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.Setup(cfg.Log)
	log.Info("Configuration loaded successfully")
	return cfg, log, nil
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context, configPath string) (*App, error) {
	cfg, log, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Log: log}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize object storage
	fileStorage, err := storage.NewS3Storage(ctx, cfg.Storage)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.WithField("bucket", cfg.Storage.Bucket).Info("Object storage initialized")

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Server = initializeServer(cfg, log, db, redisClient, fileStorage, trustedProxies)
	return app, nil
}

func newNotifier(cfg *config.Config, log *logrus.Logger) service.Notifier {
	if !cfg.Mail.Enabled {
		log.Info("Mail notifications disabled")
		return service.NewNoopNotifier()
	}
	return service.NewMailNotifier(mail.NewSMTPMailer(cfg.Mail), cfg.Mail.OnCall, cfg.Mail.Timeout, log)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, fileStorage service.FileStorage, trustedProxies *middleware.TrustedProxies) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator(cfg.App.PhoneRegion)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	recordRepo := repository.NewMedicalRecordRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	articleRepo := repository.NewArticleRepository()
	categoryRepo := repository.NewCategoryRepository()
	questionRepo := repository.NewQuestionRepository()
	answerRepo := repository.NewAnswerRepository()
	tipRepo := repository.NewTipRepository()
	emergencyRepo := repository.NewEmergencyContactRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	tokenStore := service.NewRedisTokenStore(redisClient)
	emergencyLimiter := service.NewRedisRateLimiter(redisClient, "emergency", cfg.RateLimit.EmergencyRequests, cfg.RateLimit.EmergencyWindow)
	notifier := newNotifier(cfg, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, profileRepo, doctorRepo, auditService, jwtService, tokenStore)
	profileUsecase := usecase.NewProfileUsecase(db, log, userRepo, profileRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, userRepo, auditService, notifier)
	recordUsecase := usecase.NewMedicalRecordUsecase(db, log, recordRepo, fileStorage, auditService, cfg.Storage.MaxUploadMB<<20)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, appointmentRepo, userRepo, auditService)
	articleUsecase := usecase.NewArticleUsecase(db, log, articleRepo, categoryRepo)
	consultationUsecase := usecase.NewConsultationUsecase(db, log, questionRepo, answerRepo, tipRepo)
	emergencyUsecase := usecase.NewEmergencyUsecase(db, log, emergencyRepo, auditService, notifier)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, userRepo, doctorRepo, appointmentRepo, recordRepo, prescriptionRepo, questionRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	recordHandler := handler.NewRecordHandler(recordUsecase, customValidator, cfg.Storage.MaxUploadMB<<20)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator)
	articleHandler := handler.NewArticleHandler(articleUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	emergencyHandler := handler.NewEmergencyHandler(emergencyUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(emergencyLimiter, trustedProxies, log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		profileHandler,
		doctorHandler,
		appointmentHandler,
		recordHandler,
		prescriptionHandler,
		articleHandler,
		consultationHandler,
		emergencyHandler,
		dashboardHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
		rateLimitMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

// BackfillProfiles runs the profile repair without starting the server or
// touching Redis and storage.
func BackfillProfiles(ctx context.Context, cfg *config.Config, log *logrus.Logger) (int64, error) {
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())
	profileUsecase := usecase.NewProfileUsecase(db, log, repository.NewUserRepository(), repository.NewProfileRepository(), auditService)
	return profileUsecase.BackfillMissingProfiles(ctx, nil)
}
