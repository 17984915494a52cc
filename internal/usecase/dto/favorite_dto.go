package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/domain"
)

// AddFavoriteRequest - добавление маршрута в избранное
type AddFavoriteRequest struct {
	RouteID uuid.UUID `json:"route_id" validate:"required"`
}

// FavoriteResponse - избранный маршрут вместе с его данными
type FavoriteResponse struct {
	ID      uuid.UUID            `json:"id"`
	RouteID uuid.UUID            `json:"route_id"`
	AddedAt time.Time            `json:"added_at"`
	Route   *domain.RouteSummary `json:"route,omitempty"`
}
