package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"guestdesk-backend/config"
	"guestdesk-backend/controllers"
	"guestdesk-backend/routes"
	"guestdesk-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("❌ Config error: %v", err)
	}
	logger.Infof("✅ Upstream API configured: %s", cfg.UpstreamBaseURL)

	if err := config.ConnectDatabase(); err != nil {
		logger.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		logger.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	logger.Info("✅ Database connection established and migrations applied")

	// Session scopes: ephemeral in memory, durable in the database.
	durable := services.NewDBScopeStore(db)
	if err := durable.PurgeExpired(time.Now()); err != nil {
		logger.Warnf("⚠️  Failed to purge expired sessions: %v", err)
	}
	store := services.NewSessionStore(services.NewMemoryScopeStore(), durable, logger)

	// Services
	client := services.NewAPIClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, store, logger)
	authService := services.NewAuthService(client, store, logger)
	guestService := services.NewGuestDetailsService(client, logger)
	imageService := services.NewImageService(client, logger)
	propertyService := services.NewPropertyService(client, logger)
	exportService := services.NewExportService(imageService, db, logger)

	// Controllers
	authController := controllers.NewAuthController(authService)
	guestController := controllers.NewGuestController(guestService)
	exportController := controllers.NewExportController(exportService)
	propertyController := controllers.NewPropertyController(propertyService)

	router := routes.SetupRouter(authController, guestController, exportController, propertyController, store, logger)

	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Infof("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	logger.Info("✅ Server stopped gracefully")
}
