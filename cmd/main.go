package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"andromeda/internal/cache"
	"andromeda/internal/clients"
	"andromeda/internal/config"
	"andromeda/internal/handlers"
	"andromeda/internal/logger"
	"andromeda/internal/middleware"
	"andromeda/internal/service"
	"andromeda/internal/worker"
	"andromeda/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func main() {
	// Загрузка .env
	if err := godotenv.Load(); err != nil {
		logger.L().Info("No .env file found, using environment variables")
	}

	log := logger.WithComponent("main")
	log.Info("=== Andromeda Space Dashboard Backend Starting ===")

	// Загрузка конфигурации
	cfg := config.Load()

	// Кэш: Redis при наличии, иначе in-memory
	var (
		store       cache.Store
		redisClient *goredis.Client
	)
	if cfg.Redis.Enabled {
		client, err := redis.Connect(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		redisClient = client
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
	} else {
		log.Info("Redis not configured, using in-memory cache")
		store = cache.NewMemoryStore()
	}
	accessor := cache.NewAccessor(store)

	// Каталог для экспортов
	if err := os.MkdirAll(cfg.Export.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create export directory: %v", err)
	}

	// Клиенты внешних API
	readingsClient := clients.NewReadingsClient(clients.ReadingsConfig{
		BaseURL:        cfg.Upstream.BaseURL,
		Timeout:        cfg.Upstream.Timeout,
		CatalogTimeout: cfg.Upstream.CatalogTimeout,
		MaxRetries:     cfg.Upstream.MaxRetries,
		RetryBackoff:   cfg.Upstream.RetryBackoff,
	})
	astroClient := clients.NewAstroClient(clients.AstroConfig{
		AppID:   cfg.Astro.AppID,
		Secret:  cfg.Astro.Secret,
		BaseURL: cfg.Astro.BaseURL,
		Timeout: cfg.Astro.Timeout,
	})
	jwstClient := clients.NewJWSTClient(clients.JWSTConfig{
		Host:    cfg.JWST.Host,
		APIKey:  cfg.JWST.APIKey,
		Email:   cfg.JWST.Email,
		Timeout: cfg.JWST.Timeout,
	})

	// Инициализация сервисов
	readingsService := service.NewReadingsService(accessor, readingsClient)
	catalogService := service.NewCatalogService(accessor, readingsClient, cfg.Export.OutputDir)
	spaceService := service.NewSpaceService(accessor, readingsClient)
	astroService := service.NewAstroService(accessor, astroClient, cfg.HasAstroCredentials())
	jwstService := service.NewJWSTService(accessor, jwstClient)

	if !cfg.HasAstroCredentials() {
		log.Warn("Astronomy API credentials not configured, events will use demo data")
	}

	// Фоновые воркеры
	scheduler := worker.NewScheduler()
	if cfg.Workers.RefreshEnabled {
		scheduler.AddWorker(worker.NewRefreshWorker(readingsService, cfg.Workers.RefreshInterval))
		log.Infof("Refresh worker enabled (interval: %v)", cfg.Workers.RefreshInterval)
	}
	go scheduler.Start()
	defer scheduler.Stop()

	// Инициализация Gin
	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Info("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS для фронтенда
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestIDMiddleware())

	ipLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	r.Use(middleware.IPRateLimitMiddleware(ipLimiter))

	// Хэндлеры
	issHandler := handlers.NewISSHandler(readingsService)
	osdrHandler := handlers.NewOSDRHandler(catalogService)
	spaceHandler := handlers.NewSpaceHandler(spaceService)
	astroHandler := handlers.NewAstroHandler(astroService)
	jwstHandler := handlers.NewJWSTHandler(jwstService)
	systemHandler := handlers.NewSystemHandler(cfg, redisClient)
	dashboardHandler := handlers.NewDashboardHandler(
		readingsService, catalogService, spaceService, astroService, jwstService)

	// Маршруты
	api := r.Group("/api")
	{
		api.GET("/iss/last", issHandler.GetLast)
		api.GET("/iss/trend", issHandler.GetTrend)
		api.POST("/iss/refresh", issHandler.Refresh)

		api.GET("/osdr/list", osdrHandler.List)
		api.POST("/osdr/sync", osdrHandler.Sync)
		api.GET("/osdr/export", osdrHandler.Export)

		api.GET("/space/summary", spaceHandler.GetSummary)
		api.GET("/space/sources", spaceHandler.GetSources)
		api.GET("/space/:source/latest", spaceHandler.GetLatest)
		api.POST("/space/:source/refresh", spaceHandler.Refresh)

		api.GET("/astro/events", astroHandler.GetEvents)
		api.GET("/astro/positions", astroHandler.GetPositions)
		api.GET("/astro/positions/:body", astroHandler.GetBodyPositions)

		api.GET("/jwst/feed", jwstHandler.GetFeed)

		api.GET("/dashboard", dashboardHandler.GetDashboardData)

		api.GET("/health", systemHandler.Health)
		api.GET("/system/stats", systemHandler.Stats)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Server starting on http://localhost:%s", cfg.App.Port)
		log.Infof("Health check: http://localhost:%s/api/health", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited properly")
}
