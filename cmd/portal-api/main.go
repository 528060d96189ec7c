package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/phANTom2303/smart-india-hackathon-2025/internal/auth"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/config"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/credits"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/database"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/maintenance"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/monitoring"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/notifications"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/organizations"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/projects"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/reports"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/users"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/chain"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/storage"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, closeDB, err := database.Connect(ctx, cfg.Database.URI, cfg.Database.DBName)
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer closeDB()
	logger.Info("Connected to MongoDB", zap.String("db", cfg.Database.DBName))

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = database.EnsureIndexes(ctx, db)
	cancel()
	if err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	// Evidence storage backend
	var blobs storage.BlobStore
	var localStore *storage.LocalStore
	switch cfg.Uploads.Backend {
	case "s3":
		s3Store, err := storage.NewS3Store(context.Background(), cfg.Uploads.S3Bucket, cfg.Uploads.S3Region)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		blobs = s3Store
		logger.Info("Using S3 evidence storage", zap.String("bucket", cfg.Uploads.S3Bucket))
	default:
		localStore, err = storage.NewLocalStore(cfg.Uploads.Dir)
		if err != nil {
			logger.Fatal("Failed to initialize upload directory", zap.Error(err))
		}
		blobs = localStore
		logger.Info("Using local evidence storage", zap.String("dir", cfg.Uploads.Dir))
	}

	// Notifications hub
	hub := notifications.NewHub(logger)
	go hub.Run()
	defer hub.Stop()

	// Module wiring
	orgRepo := organizations.NewRepository(db)
	orgService := organizations.NewService(orgRepo)
	orgHandler := organizations.NewHandler(orgService, logger)

	userRepo := users.NewRepository(db)
	userService := users.NewService(userRepo)
	userHandler := users.NewHandler(userService, logger)

	authService := auth.NewService(userService, cfg.Security.JWTSecret)
	authHandler := auth.NewHandler(authService, logger)

	monitoringRepo := monitoring.NewRepository(db)
	monitoringService := monitoring.NewService(monitoringRepo, blobs, storage.NewIPFSClient(), hub, logger)
	monitoringHandler := monitoring.NewHandler(monitoringService, logger)

	projectRepo := projects.NewRepository(db)
	projectService := projects.NewService(projectRepo, monitoringRepo, orgRepo)
	projectHandler := projects.NewHandler(projectService, logger)

	reportRepo := reports.NewRepository(db)
	reportService := reports.NewService(reportRepo, monitoringRepo, projectRepo, hub, logger)
	reportHandler := reports.NewHandler(reportService, logger)

	creditRepo := credits.NewRepository(db)
	creditService := credits.NewService(creditRepo, chain.NewOffChainClient(cfg.Chain.ContractAddress), logger)
	creditHandler := credits.NewHandler(creditService, logger)

	// Orphaned-upload janitor (local storage only)
	if localStore != nil && cfg.Janitor.Schedule != "" {
		janitor := maintenance.NewJanitor(localStore, monitoringRepo, cfg.Janitor.Schedule, cfg.Janitor.RetentionHrs, logger)
		if err := janitor.Start(); err != nil {
			logger.Fatal("Failed to start upload janitor", zap.Error(err))
		}
		defer janitor.Stop()
	}

	// Setup Router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.Uploads.MaxFileSize

	// CORS Middleware: exact-match single frontend origin
	frontendOrigin := cfg.CORS.FrontendOrigin
	router.Use(func(c *gin.Context) {
		if c.Request.Header.Get("Origin") == frontendOrigin {
			c.Writer.Header().Set("Access-Control-Allow-Origin", frontendOrigin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.Use(authService.Identity())

	// Register Routes
	api := router.Group("/api")
	{
		authHandler.RegisterRoutes(api)
		orgHandler.RegisterRoutes(api)
		userHandler.RegisterRoutes(api)
		projectHandler.RegisterRoutes(api)
		monitoringHandler.RegisterRoutes(api)
		reportHandler.RegisterRoutes(api)
		creditHandler.RegisterRoutes(api)
	}

	// Evidence files are served straight off disk when stored locally
	if localStore != nil {
		router.Static("/uploads/monitoring", localStore.BaseDir())
	}

	// Status event stream
	router.GET("/ws", hub.HandleWS)

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Server.GetServerAddr(),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen: %s\n", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown:", zap.Error(err))
	}

	logger.Info("Server exiting")
}
