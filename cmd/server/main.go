package main

import (
	"context"   // Context for Redis and shutdown
	"errors"    // Error inspection
	"net/http"  // HTTP server
	"os"        // Process signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM

	"vocab_system/internal/api"     // Custom package for API handlers
	"vocab_system/internal/config"  // Custom package for configuration
	"vocab_system/internal/db"      // Database connection
	"vocab_system/internal/service" // Business logic
	"vocab_system/internal/store"   // Persistence

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/rs/cors"           // CORS handling
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.Load() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	setupLogger(cfg.Log)

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}()

	// Setup Redis client; without an address the API runs uncached
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,     // Redis server address
			Password: cfg.Redis.Password, // Redis password
			DB:       cfg.Redis.DB,       // Redis database number
		})
		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logrus.Warn("REDIS_ADDR not set, response caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	catalogStore := store.NewCatalogStore(gdb)
	ledgerStore := store.NewLedgerStore(gdb)
	userStore := store.NewUserStore(gdb)

	router := api.NewRouter(api.Deps{
		DB:       gdb,
		Redis:    redisClient,
		CacheTTL: cfg.Redis.TTL,
		Catalog:  service.NewCatalogService(catalogStore),
		Study:    service.NewStudyService(ledgerStore, catalogStore),
		Users:    service.NewUserService(userStore, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost),
		Stats:    service.NewStatsService(catalogStore, ledgerStore, userStore),
	})
	// Set trusted proxies for Gin
	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Allow the mobile and web clients
	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: handler,
	}

	go func() {
		logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Wait for an interrupt, then drain in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
}

// setupLogger applies the configured level and format
func setupLogger(cfg config.LogConfig) {
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithField("level", cfg.Level).Warn("Unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
