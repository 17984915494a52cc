package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
)

// StatsUsecase - публичная статистика сервиса с коротким кешем
type StatsUsecase interface {
	GetStats(ctx context.Context) (*domain.Statistics, error)
}

type statsUsecase struct {
	zoneRepo  repository.ZoneRepository
	routeRepo repository.RouteRepository
	userRepo  repository.UserRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewStatsUsecase создаёт usecase статистики
func NewStatsUsecase(
	zoneRepo repository.ZoneRepository,
	routeRepo repository.RouteRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) StatsUsecase {
	return &statsUsecase{
		zoneRepo:  zoneRepo,
		routeRepo: routeRepo,
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (u *statsUsecase) GetStats(ctx context.Context) (*domain.Statistics, error) {
	if cached, err := u.cacheRepo.GetStats(ctx); err == nil && cached != nil {
		return cached, nil
	}

	now := time.Now().UTC()

	totalZones, err := u.zoneRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	activeZones, err := u.zoneRepo.CountActiveAt(ctx, now)
	if err != nil {
		return nil, err
	}
	totalUsers, err := u.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalRoutes, err := u.routeRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.Statistics{
		TotalZones:  totalZones,
		ActiveZones: activeZones,
		TotalUsers:  totalUsers,
		TotalRoutes: totalRoutes,
	}

	if err := u.cacheRepo.SetStats(ctx, stats, u.cacheTTL); err != nil {
		u.logger.Warn("Failed to cache stats", zap.Error(err))
	}

	return stats, nil
}
