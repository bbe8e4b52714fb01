package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-anuragk/assistly/api/audit"
	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/config"
	"github.com/dev-anuragk/assistly/api/controller"
	"github.com/dev-anuragk/assistly/api/db"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/middleware"
	"github.com/dev-anuragk/assistly/api/router"
	"github.com/dev-anuragk/assistly/api/service"
	"github.com/dev-anuragk/assistly/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Neo4j
	if err := db.InitNeo4j(); err != nil {
		logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
	}
	defer db.CloseNeo4j()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	eventBus.Start(ctx)

	// Initialize the audit pipeline: Elasticsearch store behind an async
	// recorder, plus the retention janitor.
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit store", zap.Error(err))
	}
	auditCfg := config.Audit()
	auditRecorder := audit.NewRecorder(auditRepository, auditCfg)
	auditService := audit.NewService(auditRepository, auditRecorder)
	defer auditService.Close()
	audit.StartRetentionJanitor(ctx, auditRepository, auditCfg.RetentionDays)

	// Initialize the token manager
	tokenManager, err := auth.NewTokenManager(config.JWT())
	if err != nil {
		logger.Fatal("Failed to initialize token manager", zap.Error(err))
	}

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	cacheService := util.NewCacheService()
	notificationService := util.NewNotificationService()

	services, err := service.InitializeServices(
		db.Neo4jDriver,
		tokenManager,
		auditService,
		validationUtil,
		cacheService,
		notificationService,
		eventBus,
	)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	// Seed the bootstrap super admin
	if err := db.SeedSuperAdmin(ctx, services.UserDAO, config.Admin()); err != nil {
		logger.Fatal("Failed to seed super admin", zap.Error(err))
	}

	// Initialize controllers and guards
	controllers := controller.InitializeControllers(services, auditService)
	authenticator := middleware.NewAuthenticator(tokenManager, services.UserDAO)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(
		controllers,
		authenticator,
		auditService,
		config.GetInt("rateLimit.requests"),
		config.GetDuration("rateLimit.window"),
	)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The server gets 5 seconds to finish in-flight requests; the deferred
	// audit Close drains queued entries after that.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
