package dto

import (
	"github.com/rangeguard-service/internal/pkg/geo"
)

// CreateRouteRequest - запрос на сохранение маршрута.
// Геометрия принимается как GeoJSON LineString.
type CreateRouteRequest struct {
	Name     string       `json:"name" validate:"required,min=2,max=200"`
	Geometry geo.Polyline `json:"geometry" validate:"required"`
	IsPublic bool         `json:"is_public"`
}

// ListPublicRoutesRequest - параметры выборки публичных маршрутов
type ListPublicRoutesRequest struct {
	Search string `json:"search" validate:"omitempty,max=200"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

// SetRouteVisibilityRequest - переключение публичности маршрута
type SetRouteVisibilityRequest struct {
	IsPublic bool `json:"is_public"`
}
