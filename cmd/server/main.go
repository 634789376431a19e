package main

import (
	"context"                          // Shutdown deadline and Redis ping
	"errors"                           // Error matching
	"leave_system/internal/api"        // Custom package for API handlers
	"leave_system/internal/config"     // Custom package for configuration
	"leave_system/internal/db"         // Custom package for database access
	"leave_system/internal/notify"     // Decision emails
	"leave_system/internal/repository" // GORM repositories
	"leave_system/internal/service"    // Auth and leave workflow
	"leave_system/internal/utils"      // JWT token service
	"net/http"                         // HTTP server
	"os"                               // Process signals
	"os/signal"                        // Signal notification
	"syscall"                          // SIGTERM
	"time"                             // Timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// shutdownTimeout bounds how long in-flight requests get on shutdown
const shutdownTimeout = 15 * time.Second

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Setup logger
	log := logrus.New()
	if cfg.IsProd {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
	}
	logrus.SetFormatter(log.Formatter) // Handlers log through the standard logger
	logrus.SetLevel(log.GetLevel())

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if !cfg.IsProd {
		// Development convenience; production runs cmd/migrate
		if err := db.Migrate(gdb); err != nil {
			log.Fatalf("failed to migrate DB: %v", err)
		}
	}

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.WithError(err).Warn("Redis unreachable, list caching disabled")
			_ = redisClient.Close()
			redisClient = nil
		}
	}

	// Setup mail transport when configured
	var mailer notify.Mailer
	if cfg.SMTPEnabled() {
		smtp, err := notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
		})
		if err != nil {
			log.Fatalf("failed to configure SMTP: %v", err)
		}
		mailer = smtp
	} else {
		log.Warn("SMTP_HOST not set, email notifications are disabled")
	}

	users := repository.NewUserRepository(gdb)
	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	auth := service.NewAuthService(users, tokens, log)
	leaves := service.NewLeaveService(repository.NewLeaveRepository(gdb), notify.NewDispatcher(mailer, log), log).
		WithCache(redisClient, cfg.CacheTTL)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := api.NewRouter(api.Deps{
		DB:          gdb,
		Auth:        auth,
		Leaves:      leaves,
		Tokens:      tokens,
		Users:       users,
		Uploads:     api.Uploader{Dir: cfg.UploadDir, MaxBytes: cfg.MaxUploadBytes()},
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		Log:         log,
	})
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("Server running on %s", cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
	leaves.Wait() // Let pending notifications finish
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := db.Close(gdb); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
	log.Info("Server stopped")
}
