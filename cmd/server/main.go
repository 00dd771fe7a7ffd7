package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()
	ctx := context.Background()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(logging.StdoutHandler(), dbLogHandler)))

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		slog.Error("metrics registration failed", "error", err)
		os.Exit(1)
	}

	// Media host
	relay, err := media.New(ctx, cfg)
	if err != nil {
		slog.Error("media relay setup failed", "driver", cfg.MediaDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("media relay ready", "driver", cfg.MediaDriver)

	// Shared limiter state
	var limiterStorage fiber.Storage
	if cfg.RedisURL != "" {
		rs, err := cache.NewRedisStorage(ctx, cfg.RedisURL, "vidtube:limiter:")
		if err != nil {
			slog.Warn("redis unavailable, rate limits stay per instance", "error", err)
		} else {
			limiterStorage = rs
			defer rs.Close()
		}
	}

	// Services
	userService := services.NewUserService(database.DB, cfg, relay)
	videoService := services.NewVideoService(database.DB, relay)
	commentService := services.NewCommentService(database.DB)
	tweetService := services.NewTweetService(database.DB)
	likeService := services.NewLikeService(database.DB)
	subscriptionService := services.NewSubscriptionService(database.DB)
	playlistService := services.NewPlaylistService(database.DB, relay)
	dashboardService := services.NewDashboardService(database.DB)

	// Handlers
	h := routes.Handlers{
		Health:        handlers.NewHealthHandler(database.DB),
		Users:         handlers.NewUserHandler(userService, cfg),
		Videos:        handlers.NewVideoHandler(videoService, cfg),
		Comments:      handlers.NewCommentHandler(commentService),
		Tweets:        handlers.NewTweetHandler(tweetService),
		Likes:         handlers.NewLikeHandler(likeService),
		Subscriptions: handlers.NewSubscriptionHandler(subscriptionService),
		Playlists:     handlers.NewPlaylistHandler(playlistService, cfg),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit(),
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	if cfg.MediaDriver == "local" {
		app.Static(cfg.LocalMediaBaseURL, cfg.LocalMediaDir)
	}

	// Routes
	routes.Setup(app, cfg, userService, h, limiterStorage)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(database.DB); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		logging.FromContext(c.UserContext()).Error("unhandled server error",
			"op", c.Method()+" "+c.Path(),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Status:  code,
		Message: message,
	})
}
