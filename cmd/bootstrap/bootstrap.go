package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-management-system/config"
	deliveryHttp "hospital-management-system/internal/delivery/http"
	"hospital-management-system/internal/delivery/http/handler"
	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/internal/infrastructure/cache"
	"hospital-management-system/internal/infrastructure/database"
	"hospital-management-system/internal/repository"
	"hospital-management-system/internal/service"
	"hospital-management-system/internal/usecase"
	"hospital-management-system/migrations"
	"hospital-management-system/pkg/authz"
	"hospital-management-system/pkg/jwt"
	"hospital-management-system/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
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

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.Log)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db, migrations.FS, log); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	server, err := initializeServer(cfg, log, db, redisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures a JSON logrus logger, mirrored to a rotating
// file when LOG_FILE is set.
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}
	log.SetOutput(out)

	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	departmentRepo := repository.NewDepartmentRepository()
	roomRepo := repository.NewRoomRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	recordRepo := repository.NewMedicalRecordRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	tokens := service.NewRedisTokenStore(redisClient)
	throttle := service.NewRedisLoginThrottle(redisClient)
	settingsStore := service.NewRedisSettingsStore(redisClient)
	auditService := service.NewAuditService(log, auditLogRepo)
	idGenerator := service.NewPatientIdentifierGenerator(patientRepo)

	// Initialize usecases
	settingsUsecase := usecase.NewSettingsUsecase(db, log, settingsStore, auditService, cfg.App.Env)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := settingsUsecase.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, departmentRepo, jwtService, tokens, throttle, settingsUsecase, auditService, cfg.App.AdminKey)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, departmentRepo, auditService, tokens)
	departmentUsecase := usecase.NewDepartmentUsecase(db, log, departmentRepo, userRepo, auditService)
	roomUsecase := usecase.NewRoomUsecase(db, log, roomRepo, departmentRepo, patientRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, userRepo, idGenerator, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, auditService)
	recordUsecase := usecase.NewMedicalRecordUsecase(db, log, recordRepo, patientRepo, appointmentRepo, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, patientRepo, auditService)
	statisticsUsecase := usecase.NewStatisticsUsecase(db, log, userRepo, departmentRepo, patientRepo, roomRepo, appointmentRepo, recordRepo, prescriptionRepo)
	reportUsecase := usecase.NewReportUsecase(db, log, userRepo, departmentRepo, patientRepo, roomRepo, appointmentRepo, recordRepo, prescriptionRepo)
	exportUsecase := usecase.NewExportUsecase(db, log, userRepo, departmentRepo, patientRepo, roomRepo, appointmentRepo, recordRepo, prescriptionRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:          handler.NewAuthHandler(authUsecase, customValidator),
		User:          handler.NewUserHandler(userUsecase, customValidator),
		Department:    handler.NewDepartmentHandler(departmentUsecase, customValidator),
		Room:          handler.NewRoomHandler(roomUsecase, customValidator),
		Patient:       handler.NewPatientHandler(patientUsecase, customValidator),
		Appointment:   handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		MedicalRecord: handler.NewMedicalRecordHandler(recordUsecase, customValidator),
		Prescription:  handler.NewPrescriptionHandler(prescriptionUsecase, customValidator),
		Statistics:    handler.NewStatisticsHandler(statisticsUsecase),
		Report:        handler.NewReportHandler(reportUsecase),
		Settings:      handler.NewSettingsHandler(settingsUsecase, customValidator),
		Export:        handler.NewExportHandler(exportUsecase),
		AuditLog:      handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authorizer, err := authz.NewAuthorizer(authz.DefaultPolicies)
	if err != nil {
		return nil, fmt.Errorf("failed to build authorizer: %w", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokens)
	accessMiddleware := middleware.NewAccessMiddleware(authorizer, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, accessMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
