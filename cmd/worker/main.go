package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/config"
	"github.com/rangeguard-service/internal/pkg/logger"
	"github.com/rangeguard-service/internal/repository/cache"
	"github.com/rangeguard-service/internal/repository/postgres"
	redisRepo "github.com/rangeguard-service/internal/repository/redis"
	"github.com/rangeguard-service/internal/usecase"
	"github.com/rangeguard-service/internal/worker"
	"github.com/rangeguard-service/internal/worker/conflict"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting RangeGuard Conflict Notification Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

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

	// 4. Connect to Redis (отдельный клиент для стримов)
	streamClient, err := cache.NewRedisStreams(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
	}
	defer func() {
		if err := streamClient.Close(); err != nil {
			log.Error("Failed to close Redis Streams connection", zap.Error(err))
		}
	}()

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	zoneRepo := postgres.NewZoneRepository(db, log)
	routeRepo := postgres.NewRouteRepository(db, log)
	notificationRepo := postgres.NewNotificationRepository(db, log)
	favoriteRepo := postgres.NewFavoriteRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(streamClient, log)

	// 6. Initialize use cases
	intersectionUC := usecase.NewIntersectionUsecase(zoneRepo, cacheRepo, cfg.Cache.BufferCacheTTL, log)

	// 7. Initialize workers
	zoneWorker := conflict.NewZoneCreatedWorker(
		cfg.Worker.ConsumerGroup,
		streamRepo,
		zoneRepo,
		routeRepo,
		favoriteRepo,
		notificationRepo,
		intersectionUC,
		log,
	)
	routeWorker := conflict.NewRouteCreatedWorker(
		cfg.Worker.ConsumerGroup,
		streamRepo,
		zoneRepo,
		routeRepo,
		notificationRepo,
		intersectionUC,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(zoneWorker)
	workerManager.Register(routeWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
