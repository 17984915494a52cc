package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/usecase/dto"
)

// FavoriteUsecase - избранные маршруты. Подписчики избранного маршрута
// получают уведомления о новых конфликтующих зонах.
type FavoriteUsecase interface {
	Add(ctx context.Context, userID, routeID uuid.UUID) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, routeID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*dto.FavoriteResponse, error)
}

type favoriteUsecase struct {
	favoriteRepo repository.FavoriteRepository
	routeRepo    repository.RouteRepository
	logger       *zap.Logger
}

// NewFavoriteUsecase создаёт usecase избранного
func NewFavoriteUsecase(
	favoriteRepo repository.FavoriteRepository,
	routeRepo repository.RouteRepository,
	logger *zap.Logger,
) FavoriteUsecase {
	return &favoriteUsecase{
		favoriteRepo: favoriteRepo,
		routeRepo:    routeRepo,
		logger:       logger,
	}
}

func (u *favoriteUsecase) Add(ctx context.Context, userID, routeID uuid.UUID) (*domain.Favorite, error) {
	route, err := u.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	// В избранное попадают только видимые пользователю маршруты
	if !route.IsPublic && route.UserID != userID {
		return nil, apperrors.ErrRouteNotFound
	}

	fav := &domain.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		RouteID:   routeID,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.favoriteRepo.Create(ctx, fav); err != nil {
		return nil, err
	}
	return fav, nil
}

func (u *favoriteUsecase) Remove(ctx context.Context, userID, routeID uuid.UUID) error {
	return u.favoriteRepo.Delete(ctx, userID, routeID)
}

func (u *favoriteUsecase) List(ctx context.Context, userID uuid.UUID) ([]*dto.FavoriteResponse, error) {
	favorites, err := u.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return []*dto.FavoriteResponse{}, nil
	}

	routeIDs := make([]uuid.UUID, 0, len(favorites))
	for _, fav := range favorites {
		routeIDs = append(routeIDs, fav.RouteID)
	}

	routes, err := u.routeRepo.GetByIDs(ctx, routeIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.Route, len(routes))
	for _, route := range routes {
		byID[route.ID] = route
	}

	responses := make([]*dto.FavoriteResponse, 0, len(favorites))
	for _, fav := range favorites {
		resp := &dto.FavoriteResponse{
			ID:      fav.ID,
			RouteID: fav.RouteID,
			AddedAt: fav.CreatedAt,
		}
		// Удалённый маршрут остаётся в списке без данных
		if route, ok := byID[fav.RouteID]; ok {
			resp.Route = &domain.RouteSummary{
				ID:         route.ID,
				Name:       route.Name,
				UserID:     route.UserID,
				OwnerName:  route.OwnerName,
				IsPublic:   route.IsPublic,
				PointCount: len(route.Points),
				Geometry:   route.Points,
				CreatedAt:  route.CreatedAt,
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
