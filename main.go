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

	"github.com/sapictureday/sail/audit"
	"github.com/sapictureday/sail/auth"
	"github.com/sapictureday/sail/config"
	"github.com/sapictureday/sail/controller"
	"github.com/sapictureday/sail/dao"
	"github.com/sapictureday/sail/db"
	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/middleware"
	"github.com/sapictureday/sail/resolver"
	"github.com/sapictureday/sail/router"
	"github.com/sapictureday/sail/service"
	"github.com/sapictureday/sail/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Postgres
	if err := db.InitPostgres(); err != nil {
		logger.Fatal("Failed to initialize Postgres", zap.Error(err))
	}
	defer db.ClosePostgres()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Initialize DAOs
	userDAO := dao.NewUserDAO(db.DB)
	workspaceDAO := dao.NewWorkspaceDAO(db.DB, auditService)
	preferenceDAO := dao.NewPreferenceDAO(db.DB)

	// Session refresh and admin-role oracle for the gatekeeper
	sessionStore := db.NewRedisSessionStore(db.RedisClient)
	sessionManager := auth.NewSessionManager(
		sessionStore,
		config.GetString("auth.jwtSecret"),
		config.GetDuration("auth.accessTTL"),
		config.GetDuration("auth.refreshTTL"),
		config.GetDuration("auth.refreshTimeout"),
	)
	adminOracle := auth.NewAdminOracle(db.AdminDB, config.GetDuration("auth.adminCheckTimeout"))
	gatekeeper := middleware.NewGatekeeper(sessionManager, adminOracle, auditService)

	// Workspace resolution cache and resolver
	resolutionCache := resolver.NewCache(config.GetDuration("resolver.cacheTTL"))
	workspaceResolver := resolver.NewWorkspaceResolver(
		resolutionCache,
		preferenceDAO,
		workspaceDAO,
		config.GetDuration("resolver.storeTimeout"),
	)

	// Initialize services
	workspaceService := service.NewWorkspaceService(workspaceDAO, validationUtil, workspaceResolver, eventBus)
	preferenceService := service.NewPreferenceService(preferenceDAO, workspaceDAO, workspaceResolver)

	// Initialize controllers
	controllers := &controller.Controllers{
		Auth:       controller.NewAuthController(userDAO, sessionManager),
		Page:       controller.NewPageController(preferenceService),
		Workspace:  controller.NewWorkspaceController(workspaceService),
		Preference: controller.NewPreferenceController(preferenceService),
		Webhook:    controller.NewWebhookController(config.GetString("webhooks.secret"), auditService),
	}

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(
		controllers,
		gatekeeper,
		config.GetInt("ratelimit.requests"),
		config.GetDuration("ratelimit.window"),
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

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
