package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/pkg/geo"
	"github.com/rangeguard-service/internal/usecase/dto"
)

// ZoneUsecase - управление охотничьими зонами.
// Создание и изменение доступны только аккаунтам ассоциаций (админам),
// редактирование и удаление - только автору зоны.
type ZoneUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateZoneRequest) (*domain.Zone, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Zone, error)
	Update(ctx context.Context, userID, zoneID uuid.UUID, req *dto.UpdateZoneRequest) (*domain.Zone, error)
	Delete(ctx context.Context, userID, zoneID uuid.UUID) error
	List(ctx context.Context) ([]*domain.Zone, error)
	ListActive(ctx context.Context, at time.Time) ([]*domain.Zone, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Zone, error)
}

type zoneUsecase struct {
	zoneRepo   repository.ZoneRepository
	userRepo   repository.UserRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	bufferTTL  time.Duration
	logger     *zap.Logger
}

// NewZoneUsecase создаёт usecase зон
func NewZoneUsecase(
	zoneRepo repository.ZoneRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	bufferTTL time.Duration,
	logger *zap.Logger,
) ZoneUsecase {
	return &zoneUsecase{
		zoneRepo:   zoneRepo,
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		bufferTTL:  bufferTTL,
		logger:     logger,
	}
}

func (u *zoneUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateZoneRequest) (*domain.Zone, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperrors.ErrForbidden.WithMessage("Only hunting associations can create zones")
	}

	if err := geo.ValidatePolygon(req.Geometry); err != nil {
		return nil, apperrors.ErrInvalidGeometry
	}
	if req.EndTime.Before(req.StartTime) {
		return nil, apperrors.ErrInvalidTimeWindow
	}
	if req.BufferMeters < 0 {
		return nil, apperrors.ErrInvalidBufferDistance
	}

	buffered, err := geo.Buffer(req.Geometry, float64(req.BufferMeters))
	if err != nil {
		return nil, apperrors.ErrInvalidGeometry
	}

	zone := &domain.Zone{
		ID:              uuid.New(),
		Name:            req.Name,
		Description:     req.Description,
		Geometry:        req.Geometry,
		BufferedPolygon: buffered,
		GeometryVersion: 1,
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime.UTC(),
		BufferMeters:    req.BufferMeters,
		CreatedBy:       user.ID,
		AssociationName: user.AssociationName(),
		CreatedAt:       time.Now().UTC(),
	}

	if err := u.zoneRepo.Create(ctx, zone); err != nil {
		return nil, err
	}

	u.cacheBuffered(ctx, zone)
	u.publishZoneCreated(ctx, zone)

	u.logger.Info("Zone created",
		zap.String("zone_id", zone.ID.String()),
		zap.String("created_by", user.ID.String()))
	return zone, nil
}

func (u *zoneUsecase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Zone, error) {
	return u.zoneRepo.GetByID(ctx, id)
}

func (u *zoneUsecase) Update(ctx context.Context, userID, zoneID uuid.UUID, req *dto.UpdateZoneRequest) (*domain.Zone, error) {
	zone, err := u.authorizeMutation(ctx, userID, zoneID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		zone.Name = *req.Name
	}
	if req.Description != nil {
		zone.Description = *req.Description
	}

	startTime, endTime := zone.StartTime, zone.EndTime
	if req.StartTime != nil {
		startTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		endTime = req.EndTime.UTC()
	}
	if endTime.Before(startTime) {
		return nil, apperrors.ErrInvalidTimeWindow
	}
	zone.StartTime, zone.EndTime = startTime, endTime

	geometryChanged := false
	if req.Geometry != nil {
		if err := geo.ValidatePolygon(*req.Geometry); err != nil {
			return nil, apperrors.ErrInvalidGeometry
		}
		zone.Geometry = *req.Geometry
		geometryChanged = true
	}
	if req.BufferMeters != nil {
		if *req.BufferMeters < 0 {
			return nil, apperrors.ErrInvalidBufferDistance
		}
		if *req.BufferMeters != zone.BufferMeters {
			zone.BufferMeters = *req.BufferMeters
			geometryChanged = true
		}
	}

	// Изменение полигона или буфера пересчитывает буферизованную геометрию
	// и бампает версию, что инвалидирует старые ключи кеша
	if geometryChanged {
		buffered, err := geo.Buffer(zone.Geometry, float64(zone.BufferMeters))
		if err != nil {
			return nil, apperrors.ErrInvalidGeometry
		}
		zone.BufferedPolygon = buffered
		zone.GeometryVersion++
	}

	if err := u.zoneRepo.Update(ctx, zone); err != nil {
		return nil, err
	}

	if geometryChanged {
		u.cacheBuffered(ctx, zone)
	}

	u.logger.Info("Zone updated", zap.String("zone_id", zone.ID.String()))
	return zone, nil
}

func (u *zoneUsecase) Delete(ctx context.Context, userID, zoneID uuid.UUID) error {
	zone, err := u.authorizeMutation(ctx, userID, zoneID)
	if err != nil {
		return err
	}

	if err := u.zoneRepo.Delete(ctx, zone.ID); err != nil {
		return err
	}

	if err := u.cacheRepo.Delete(ctx, zone.BufferCacheKey()); err != nil {
		u.logger.Warn("Failed to drop buffered polygon from cache",
			zap.String("zone_id", zone.ID.String()), zap.Error(err))
	}

	u.logger.Info("Zone deleted", zap.String("zone_id", zone.ID.String()))
	return nil
}

func (u *zoneUsecase) List(ctx context.Context) ([]*domain.Zone, error) {
	return u.zoneRepo.List(ctx)
}

func (u *zoneUsecase) ListActive(ctx context.Context, at time.Time) ([]*domain.Zone, error) {
	return u.zoneRepo.ListActiveAt(ctx, at)
}

func (u *zoneUsecase) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Zone, error) {
	return u.zoneRepo.ListByCreator(ctx, userID)
}

// authorizeMutation проверяет, что зону меняет админ и именно её автор
func (u *zoneUsecase) authorizeMutation(ctx context.Context, userID, zoneID uuid.UUID) (*domain.Zone, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperrors.ErrForbidden.WithMessage("Only hunting associations can manage zones")
	}

	zone, err := u.zoneRepo.GetByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if zone.CreatedBy != user.ID {
		return nil, apperrors.ErrForbidden.WithMessage("Only the zone author can modify it")
	}
	return zone, nil
}

func (u *zoneUsecase) cacheBuffered(ctx context.Context, zone *domain.Zone) {
	data, err := json.Marshal(zone.BufferedPolygon)
	if err != nil {
		return
	}
	if err := u.cacheRepo.Set(ctx, zone.BufferCacheKey(), data, u.bufferTTL); err != nil {
		u.logger.Warn("Failed to cache buffered polygon",
			zap.String("zone_id", zone.ID.String()), zap.Error(err))
	}
}

// publishZoneCreated отправляет событие для fan-out проверки существующих
// маршрутов; сбой публикации не откатывает создание зоны
func (u *zoneUsecase) publishZoneCreated(ctx context.Context, zone *domain.Zone) {
	event := domain.ZoneCreatedEvent{ZoneID: zone.ID}
	if err := u.streamRepo.PublishToStream(ctx, domain.StreamZoneCreated, event); err != nil {
		u.logger.Error("Failed to publish zone created event",
			zap.String("zone_id", zone.ID.String()), zap.Error(err))
	}
}
