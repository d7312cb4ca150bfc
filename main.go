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

	"github.com/nikhilsag/hrbridge/audit"
	"github.com/nikhilsag/hrbridge/cache"
	"github.com/nikhilsag/hrbridge/client"
	"github.com/nikhilsag/hrbridge/config"
	"github.com/nikhilsag/hrbridge/confirm"
	"github.com/nikhilsag/hrbridge/controller"
	logger "github.com/nikhilsag/hrbridge/logging"
	"github.com/nikhilsag/hrbridge/router"
	"github.com/nikhilsag/hrbridge/service"
	"github.com/nikhilsag/hrbridge/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize the upstream HR platform client
	apiClient, err := client.New(client.Config{
		APIKey:     config.GetString("api.key"),
		BaseURL:    config.GetString("api.baseURL"),
		Version:    config.GetString("api.version"),
		Timeout:    config.GetDuration("api.timeout"),
		MaxRetries: config.GetInt("api.maxRetries"),
		Debug:      config.GetBool("api.debug"),
	})
	if err != nil {
		logger.Fatal("Failed to initialize HR platform client", zap.Error(err))
	}

	// Initialize the read cache and confirmation manager
	store := cache.New(config.GetDuration("cache.cleanupInterval"))
	defer store.Destroy()
	confirmations := confirm.NewManager(config.GetDuration("confirmation.ttl"))

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize the audit trail
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)
	audit.SubscribeToEvents(eventBus, auditService)

	// Initialize services and controllers
	services := service.NewServices(apiClient, store, confirmations, util.NewValidationUtil(), eventBus)
	controllers := controller.NewControllers(services, auditService)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(
		controllers,
		config.GetInt("ratelimit.limit"),
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
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
