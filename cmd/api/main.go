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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pulseboard-app/pulseboard/internal/api/handlers"
	"github.com/pulseboard-app/pulseboard/internal/api/middleware"
	"github.com/pulseboard-app/pulseboard/internal/api/routes"
	"github.com/pulseboard-app/pulseboard/internal/domain/billing"
	"github.com/pulseboard-app/pulseboard/internal/domain/category"
	"github.com/pulseboard-app/pulseboard/internal/domain/event"
	"github.com/pulseboard-app/pulseboard/internal/domain/user"
	"github.com/pulseboard-app/pulseboard/internal/infrastructure/cache"
	"github.com/pulseboard-app/pulseboard/internal/infrastructure/persistence/postgres/connection"
	"github.com/pulseboard-app/pulseboard/internal/infrastructure/persistence/postgres/migrations"
	"github.com/pulseboard-app/pulseboard/pkg/config"
	"github.com/pulseboard-app/pulseboard/pkg/logger"
	"github.com/pulseboard-app/pulseboard/pkg/security/auth"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		log.Info("Request started",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
		)

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(middleware.NewMetricsMiddleware().CollectMetrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Encoding",
			"Content-Type",
			"Authorization",
			"X-API-Key",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Encoding",
			"Content-Type",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Add Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize rate limiter with Redis client
	rateLimiter := auth.NewRedisRateLimiter(redisClient.GetClient(), 1*time.Minute, 1000)

	// Create cache middleware
	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, "pulseboard", 5*time.Minute)

	// Initialize logrus logger for the billing service
	billingLogger := logrus.New()
	billingLogger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Server.Mode == "production" {
		billingLogger.SetLevel(logrus.InfoLevel)
	} else {
		billingLogger.SetLevel(logrus.DebugLevel)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	categoryRepo := category.NewRepository(db)
	eventRepo := event.NewRepository(db)

	// Initialize services
	userService := user.NewService(userRepo, log.Logger)
	eventService := event.NewService(eventRepo, redisClient, log.Logger)
	categoryService := category.NewService(categoryRepo, eventRepo, cfg.Report.StatsFanOut, log.Logger)
	billingService := billing.NewService(cfg.Billing, billingLogger)
	jwtService := auth.NewJWTService(cfg)

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService, eventService)
	reportHandler := handlers.NewReportHandler(categoryService, eventService, cfg.Report, log.Logger)
	ingestHandler := handlers.NewIngestHandler(categoryService, eventService)
	billingHandler := handlers.NewBillingHandler(billingService)
	authHandler := handlers.NewAuthHandler(jwtService)

	// Category and report routes (protected)
	categoryRoutes := routes.NewCategoryRoutes(categoryHandler, reportHandler, cfg.Auth.JWTSecret)
	categoryRoutes.RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered category routes at /api/categories")

	// Ingest routes (API key)
	ingestRoutes := routes.NewIngestRoutes(ingestHandler, userService, rateLimiter)
	ingestRoutes.RegisterRoutes(router)
	log.Info("Registered ingest routes at /api/v1/events")

	// Billing routes (protected)
	billingRoutes := routes.NewBillingRoutes(billingHandler, cfg.Auth.JWTSecret)
	billingRoutes.RegisterRoutes(router)
	log.Info("Registered billing routes at /api/billing")

	// Auth routes (protected)
	authRoutes := routes.NewAuthRoutes(authHandler, cfg.Auth.JWTSecret)
	authRoutes.RegisterRoutes(router)
	log.Info("Registered auth routes at /api/auth")

	// Health check routes (no /api prefix as these are system endpoints)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
		})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
		})
	})
	router.GET("/health/cache", func(c *gin.Context) {
		if err := redisClient.HealthCheck(c); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"component": "cache",
				"error":     err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"component": "cache",
			"metrics":   redisClient.GetMetrics(),
		})
	})
	log.Info("Registered health check routes at /health, /health/ready and /health/cache")

	// Relay category activity to local subscribers for as long as the
	// process runs.
	go func() {
		ctx := context.Background()
		err := redisClient.SubscribeToCategoryActivity(ctx, func(activity *event.CategoryActivity) error {
			log.Debug("Category activity observed",
				zap.String("category", activity.CategoryName))
			return nil
		})
		if err != nil && err != context.Canceled {
			log.Error("Category activity listener stopped", zap.Error(err))
		}
	}()

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
