package main

// @title RangeGuard API
// @version 1.0.0
// @description Сервис безопасности маршрутов: проверка туристических треков против временных охотничьих зон.
// @description
// @description Основные возможности:
// @description - Зоны охоты с окном активности и буфером безопасности (охотничьи ассоциации)
// @description - Загрузка маршрутов и проверка на конфликты: contained / intersects / buffer
// @description - Уведомления владельцам маршрутов и подписчикам избранного о новых зонах
// @description - PDF отчёт о безопасности маршрута
// @description - Публичная статистика сервиса

// @contact.name API Support
// @contact.email support@rangeguard.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/rangeguard-service/docs/swagger"
	"github.com/rangeguard-service/internal/config"
	httpDelivery "github.com/rangeguard-service/internal/delivery/http"
	"github.com/rangeguard-service/internal/delivery/http/handler"
	"github.com/rangeguard-service/internal/pkg/logger"
	"github.com/rangeguard-service/internal/repository/cache"
	"github.com/rangeguard-service/internal/repository/postgres"
	redisRepo "github.com/rangeguard-service/internal/repository/redis"
	"github.com/rangeguard-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting RangeGuard API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	userRepo := postgres.NewUserRepository(db, log)
	zoneRepo := postgres.NewZoneRepository(db, log)
	routeRepo := postgres.NewRouteRepository(db, log)
	notificationRepo := postgres.NewNotificationRepository(db, log)
	favoriteRepo := postgres.NewFavoriteRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	authUC := usecase.NewAuthUsecase(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	zoneUC := usecase.NewZoneUsecase(zoneRepo, userRepo, cacheRepo, streamRepo, cfg.Cache.BufferCacheTTL, log)
	routeUC := usecase.NewRouteUsecase(routeRepo, userRepo, streamRepo, log)
	intersectionUC := usecase.NewIntersectionUsecase(zoneRepo, cacheRepo, cfg.Cache.BufferCacheTTL, log)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, routeRepo, log)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, log)
	statsUC := usecase.NewStatsUsecase(zoneRepo, routeRepo, userRepo, cacheRepo, cfg.Cache.StatsCacheTTL, log)
	reportUC := usecase.NewReportUsecase(intersectionUC, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authUC, log)
	zoneHandler := handler.NewZoneHandler(zoneUC, log)
	routeHandler := handler.NewRouteHandler(routeUC, log)
	intersectionHandler := handler.NewIntersectionHandler(intersectionUC, routeUC, log)
	favoriteHandler := handler.NewFavoriteHandler(favoriteUC, log)
	notificationHandler := handler.NewNotificationHandler(notificationUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)
	reportHandler := handler.NewReportHandler(reportUC, routeUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		db,
		redisClient,
		authHandler,
		zoneHandler,
		routeHandler,
		intersectionHandler,
		favoriteHandler,
		notificationHandler,
		statsHandler,
		reportHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
