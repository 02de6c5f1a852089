package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poliklinik-queue-backend/config"
	deliveryHttp "poliklinik-queue-backend/internal/delivery/http"
	"poliklinik-queue-backend/internal/delivery/http/handler"
	"poliklinik-queue-backend/internal/delivery/http/middleware"
	"poliklinik-queue-backend/internal/infrastructure/cache"
	"poliklinik-queue-backend/internal/infrastructure/database"
	"poliklinik-queue-backend/internal/repository"
	"poliklinik-queue-backend/internal/service"
	"poliklinik-queue-backend/internal/usecase"
	"poliklinik-queue-backend/pkg/jwt"
	"poliklinik-queue-backend/pkg/metrics"
	"poliklinik-queue-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations before opening the pool
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// The clinic's wall-clock zone. Visit dates and practice hours live in
	// it; event timestamps are stored in UTC.
	location, err := time.LoadLocation(cfg.Queue.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid queue timezone %q: %w", cfg.Queue.Timezone, err)
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize metrics collector
	collector := metrics.NewCollector("poliklinik_queue")

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	serviceRepo := repository.NewServiceRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	visitRepo := repository.NewVisitRepository()
	historyRepo := repository.NewVisitHistoryRepository()
	counterRepo := repository.NewQueueCounterRepository()

	// Initialize queue board mirror and seed it from the database
	board := service.NewQueueBoardService(db, redisClient, log, doctorRepo, visitRepo, location)
	if err := board.SyncToday(context.Background()); err != nil {
		log.Warnf("Queue board sync failed, display counters may be stale: %v", err)
	}

	// Initialize usecases
	registrationUsecase := usecase.NewRegistrationUsecase(db, log, serviceRepo, doctorRepo, patientRepo, visitRepo, counterRepo, board, collector, location)
	transitionUsecase := usecase.NewTransitionUsecase(db, log, visitRepo, historyRepo, board, collector)
	analyticsUsecase := usecase.NewAnalyticsUsecase(db, log, historyRepo, location)
	publicQueueUsecase := usecase.NewPublicQueueUsecase(db, log, visitRepo, serviceRepo, doctorRepo, board, location)
	serviceUsecase := usecase.NewServiceUsecase(db, log, serviceRepo)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, serviceRepo, board)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo)

	// Initialize handlers
	queueHandler := handler.NewQueueHandler(registrationUsecase, transitionUsecase, customValidator)
	publicHandler := handler.NewPublicHandler(publicQueueUsecase)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUsecase)
	serviceHandler := handler.NewServiceHandler(serviceUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	metricsMiddleware := middleware.NewMetricsMiddleware(collector)

	// Initialize router
	router := deliveryHttp.NewRouter(
		queueHandler,
		publicHandler,
		analyticsHandler,
		serviceHandler,
		doctorHandler,
		patientHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
		metricsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
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

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
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
