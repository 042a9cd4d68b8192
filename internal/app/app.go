package app

import (
	"context"
	"fmt"

	"evalyze_backend/database"
	"evalyze_backend/internal/config"
	"evalyze_backend/internal/email"
	"evalyze_backend/internal/handlers"
	"evalyze_backend/internal/logger"
	"evalyze_backend/internal/middleware"
	"evalyze_backend/internal/repositories"
	"evalyze_backend/internal/routes"
	"evalyze_backend/internal/services"
	"evalyze_backend/internal/storage"
	"evalyze_backend/internal/validator"
	"evalyze_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	var gormDB *gorm.DB
	if cfg.MockMode() {
		logger.Warn("DATABASE_URL not set: running in mock mode with in-memory repositories")
	} else {
		var err error
		gormDB, err = database.ConnectGorm()
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
		}
		if err = sqlDB.Ping(); err != nil {
			logger.Fatal("Database unavailable", "error", err)
		}
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Migration failed", "error", err)
		}
		logger.Info("Database connected and migrated")
	}

	ginRouter, serviceContainer := SetupRouter(cfg, gormDB)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	workers.NewCleanupWorker(serviceContainer.UploadService).Start(workerCtx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the fully wired gin engine. gormDB is nil in mock
// mode.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, gormDB, storageInstance)
	appHandlers := initializeHandlers(cfg, gormDB, serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, serviceContainer
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *services.ServiceContainer {
	var (
		userRepo    repositories.UserRepository
		profileRepo repositories.ProfileRepository
		companyRepo repositories.CompanyRepository
		jobRoleRepo repositories.JobRoleRepository
		fileRepo    repositories.FileUploadRepository
	)

	if cfg.MockMode() {
		userRepo = repositories.NewMemoryUserRepository()
		profileRepo = repositories.NewMemoryProfileRepository()
		companyRepo = repositories.NewMemoryCompanyRepository()
		jobRoleRepo = repositories.NewMemoryJobRoleRepository()
		fileRepo = repositories.NewMemoryFileUploadRepository()
	} else {
		userRepo = repositories.NewUserRepository(gormDB)
		profileRepo = repositories.NewProfileRepository(gormDB)
		companyRepo = repositories.NewCompanyRepository(gormDB)
		jobRoleRepo = repositories.NewJobRoleRepository(gormDB)
		fileRepo = repositories.NewFileUploadRepository(gormDB)
	}

	var emailService email.Provider
	if cfg.Email.SMTPHost != "" {
		smtp, err := email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Warn("SMTP configuration invalid, falling back to mock email provider", "error", err)
			emailService = &MockEmailProvider{}
		} else {
			emailService = smtp
		}
	} else {
		logger.Warn("SMTP not configured: invitation emails are logged only")
		emailService = &MockEmailProvider{}
	}

	webhooks := services.NewWebhookDispatcher(cfg)

	return &services.ServiceContainer{
		AuthService:    services.NewAuthService(userRepo, profileRepo, companyRepo, emailService),
		ProfileService: services.NewProfileService(userRepo, profileRepo, companyRepo, jobRoleRepo, webhooks),
		CompanyService: services.NewCompanyService(companyRepo, jobRoleRepo),
		UploadService:  services.NewUploadService(fileRepo, storageInstance, cfg),
		Webhooks:       webhooks,
		EmailService:   emailService,
	}
}

func initializeHandlers(cfg *config.Config, gormDB *gorm.DB, container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, container.AuthService),
		ProfileHandler: handlers.NewProfileHandler(baseHandler, container.ProfileService),
		CompanyHandler: handlers.NewCompanyHandler(baseHandler, container.CompanyService),
		FileHandler:    handlers.NewFileHandler(baseHandler, container.UploadService),
		WebhookHandler: handlers.NewWebhookHandler(baseHandler, container.Webhooks),
		HealthHandler:  handlers.NewHealthHandler(cfg, gormDB),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
