package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/pkg/geo"
	"github.com/rangeguard-service/internal/usecase/dto"
)

// RouteUsecase - управление маршрутами туристов.
// Маршруты неизменяемы: доступны создание, удаление и переключение видимости.
type RouteUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateRouteRequest) (*domain.Route, error)
	GetByID(ctx context.Context, requesterID, routeID uuid.UUID) (*domain.Route, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Route, error)
	ListPublic(ctx context.Context, search string, limit int) ([]*domain.RouteSummary, error)
	SetVisibility(ctx context.Context, userID, routeID uuid.UUID, isPublic bool) (*domain.Route, error)
	Delete(ctx context.Context, userID, routeID uuid.UUID) error
}

type routeUsecase struct {
	routeRepo  repository.RouteRepository
	userRepo   repository.UserRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

// NewRouteUsecase создаёт usecase маршрутов
func NewRouteUsecase(
	routeRepo repository.RouteRepository,
	userRepo repository.UserRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) RouteUsecase {
	return &routeUsecase{
		routeRepo:  routeRepo,
		userRepo:   userRepo,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

func (u *routeUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateRouteRequest) (*domain.Route, error) {
	if err := geo.ValidatePolyline(req.Geometry); err != nil {
		return nil, apperrors.ErrInvalidGeometry
	}

	ownerName := "Anonymous"
	if userID != domain.AnonymousOwner {
		user, err := u.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		ownerName = user.Name
	}

	route := &domain.Route{
		ID:        uuid.New(),
		Name:      req.Name,
		Points:    req.Geometry,
		UserID:    userID,
		OwnerName: ownerName,
		IsPublic:  req.IsPublic,
		CreatedAt: time.Now().UTC(),
	}

	if err := u.routeRepo.Create(ctx, route); err != nil {
		return nil, err
	}

	// Fan-out проверка нового маршрута против текущих и будущих зон;
	// сбой публикации не откатывает создание
	event := domain.RouteCreatedEvent{RouteID: route.ID, UserID: route.UserID}
	if err := u.streamRepo.PublishToStream(ctx, domain.StreamRouteCreated, event); err != nil {
		u.logger.Error("Failed to publish route created event",
			zap.String("route_id", route.ID.String()), zap.Error(err))
	}

	u.logger.Info("Route created",
		zap.String("route_id", route.ID.String()),
		zap.Bool("is_public", route.IsPublic))
	return route, nil
}

func (u *routeUsecase) GetByID(ctx context.Context, requesterID, routeID uuid.UUID) (*domain.Route, error) {
	route, err := u.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	// Приватный маршрут видит только владелец
	if !route.IsPublic && route.UserID != requesterID {
		return nil, apperrors.ErrRouteNotFound
	}
	return route, nil
}

func (u *routeUsecase) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Route, error) {
	return u.routeRepo.ListByOwner(ctx, userID)
}

func (u *routeUsecase) ListPublic(ctx context.Context, search string, limit int) ([]*domain.RouteSummary, error) {
	routes, err := u.routeRepo.ListPublic(ctx, search, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.RouteSummary, 0, len(routes))
	for _, route := range routes {
		summaries = append(summaries, &domain.RouteSummary{
			ID:         route.ID,
			Name:       route.Name,
			UserID:     route.UserID,
			OwnerName:  route.OwnerName,
			IsPublic:   route.IsPublic,
			PointCount: len(route.Points),
			Geometry:   route.Points,
			CreatedAt:  route.CreatedAt,
		})
	}
	return summaries, nil
}

func (u *routeUsecase) SetVisibility(ctx context.Context, userID, routeID uuid.UUID, isPublic bool) (*domain.Route, error) {
	route, err := u.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if route.UserID != userID {
		return nil, apperrors.ErrForbidden.WithMessage("Only the route owner can change visibility")
	}

	if err := u.routeRepo.SetVisibility(ctx, routeID, isPublic); err != nil {
		return nil, err
	}
	route.IsPublic = isPublic
	return route, nil
}

func (u *routeUsecase) Delete(ctx context.Context, userID, routeID uuid.UUID) error {
	route, err := u.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		return err
	}
	if route.UserID != userID {
		return apperrors.ErrForbidden.WithMessage("Only the route owner can delete it")
	}
	return u.routeRepo.Delete(ctx, routeID)
}
