package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetdesk/internal/config"
	"fleetdesk/internal/handlers"
	"fleetdesk/internal/middleware"
	"fleetdesk/internal/repositories/mongodb"
	"fleetdesk/internal/services"
	"fleetdesk/pkg/cache"
	"fleetdesk/pkg/database"
	"fleetdesk/pkg/logger"
	"fleetdesk/pkg/realtime"
	"fleetdesk/pkg/storage"
	"fleetdesk/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		cancelIndex()
		appLogger.Fatalf("Failed to ensure indexes: %v", err)
	}
	cancelIndex()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	storageProvider, err := newStorageProvider(cfg.Storage)
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Caching and locks
	cacheService := services.NewCacheService(redisCache, appLogger)

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database, cacheService)
	bookingRepo := mongodb.NewBookingRepository(db.Database)
	maintenanceRepo := mongodb.NewMaintenanceRepository(db.Database)
	txManager := mongodb.NewTransactionManager(db)

	// Realtime feed
	realtimeHandler := realtime.NewHandler()

	// Services
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, appLogger)
	vehicleService := services.NewVehicleService(vehicleRepo, appLogger)
	bookingService := services.NewBookingService(
		bookingRepo, vehicleRepo, txManager, cacheService,
		realtimeHandler, cfg.Booking.ApprovalPolicy, appLogger,
	)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, vehicleRepo, appLogger)
	reportService := services.NewReportService(bookingRepo, vehicleRepo, appLogger)
	photoService := services.NewPhotoService(storageProvider, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	bookingHandler := handlers.NewBookingHandler(bookingService, appLogger)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService, appLogger)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService, appLogger)
	reportHandler := handlers.NewReportHandler(reportService, appLogger)
	photoHandler := handlers.NewPhotoHandler(photoService, appLogger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, cfg.Security.JWTSecret)
		routes.SetupBookingRoutes(v1, bookingHandler, photoHandler, cfg.Security.JWTSecret)
		routes.SetupVehicleRoutes(v1, vehicleHandler, cfg.Security.JWTSecret)
		routes.SetupMaintenanceRoutes(v1, maintenanceHandler, cfg.Security.JWTSecret)
		routes.SetupReportRoutes(v1, reportHandler, cfg.Security.JWTSecret)
		routes.SetupRealtimeRoutes(v1, realtimeHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"mongodb": "up", "redis": "up"}
		if err := db.Ping(); err != nil {
			checks["mongodb"] = "down"
			status = http.StatusServiceUnavailable
		}
		if err := redisCache.Ping(c.Request.Context()); err != nil {
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":  "ok",
			"version": cfg.App.Version,
			"checks":  checks,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting %s on port %d", cfg.App.Name, cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func newStorageProvider(cfg *config.StorageConfig) (storage.StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return storage.NewAWSS3Storage(cfg.S3Region, cfg.S3Bucket)
	default:
		return storage.NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
	}
}
