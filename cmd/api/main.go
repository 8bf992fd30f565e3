package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/netslayer67/mws-backend/internal/ai"
	"github.com/netslayer67/mws-backend/internal/api/handlers"
	"github.com/netslayer67/mws-backend/internal/api/middleware"
	"github.com/netslayer67/mws-backend/internal/api/routes"
	"github.com/netslayer67/mws-backend/internal/domain/checkin"
	"github.com/netslayer67/mws-backend/internal/domain/user"
	"github.com/netslayer67/mws-backend/internal/infrastructure/cache"
	"github.com/netslayer67/mws-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/netslayer67/mws-backend/internal/infrastructure/persistence/postgres/migrations"
	"github.com/netslayer67/mws-backend/internal/infrastructure/scheduler"
	"github.com/netslayer67/mws-backend/pkg/config"
	"github.com/netslayer67/mws-backend/pkg/logger"
	"github.com/netslayer67/mws-backend/pkg/security/auth"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

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
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLogger(cfg.Logging.Level)
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
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	metricsMiddleware := middleware.NewMetricsMiddleware()
	router.Use(metricsMiddleware.CollectMetrics())

	allowedOrigins := cfg.CORS.AllowedOrigins
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowAllOrigins:  len(allowedOrigins) == 0,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     append(cfg.CORS.AllowedHeaders, "Content-Type", "Authorization", "Accept-Encoding"),
		ExposeHeaders:    []string{"Content-Length", "Content-Encoding", "Content-Type"},
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

	// Connect to redis
	redisClient, err := cache.NewRedisClient(cache.NewConfigFromEnv(cfg))
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Health endpoints
	routes.SetupHealthRoutes(router, db, redisClient)

	// Services
	userRepo := user.NewRepository(db.DB)
	userService := user.NewService(userRepo, log.Logger)

	checkinRepo := checkin.NewRepository(db.DB)
	checkinService := checkin.NewService(checkinRepo, userService, redisClient, log.Logger)

	detectorClient := ai.NewClient(cfg.Detector, log)

	// Auth
	jwtService := auth.NewJWTService(cfg)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	validation := middleware.NewValidationMiddleware()
	historyCache := middleware.NewCacheMiddleware(redisClient, "history", 2*time.Minute)

	// Handlers and routes
	dashboardHandler := handlers.NewDashboardHandler(checkinService, redisClient, log.Logger)
	checkinHandler := handlers.NewCheckinHandler(checkinService, detectorClient, log.Logger)
	realtimeHandler := handlers.NewRealtimeHandler(redisClient)

	api := router.Group("/api")
	routes.NewDashboardRoutes(dashboardHandler, authMiddleware, log.Logger).Register(api)
	routes.NewCheckinRoutes(checkinHandler, authMiddleware, validation, historyCache.CacheResponse(), log.Logger).Register(api)
	routes.NewRealtimeRoutes(realtimeHandler, authMiddleware).Register(api)

	// Daily roll-over scheduler
	rolloverScheduler := scheduler.NewScheduler(redisClient, log)
	rolloverScheduler.Start()
	log.Info("Dashboard scheduler started successfully")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	// Graceful shutdown
	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
