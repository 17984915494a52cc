package dto

import (
	"time"

	"github.com/rangeguard-service/internal/pkg/geo"
)

// CreateZoneRequest - запрос на создание охотничьей зоны.
// Геометрия принимается как GeoJSON Polygon, буфер - в метрах.
type CreateZoneRequest struct {
	Name         string      `json:"name" validate:"required,min=2,max=200"`
	Description  string      `json:"description,omitempty" validate:"omitempty,max=2000"`
	Geometry     geo.Polygon `json:"geometry" validate:"required"`
	StartTime    time.Time   `json:"start_time" validate:"required"`
	EndTime      time.Time   `json:"end_time" validate:"required"`
	BufferMeters int         `json:"buffer_meters" validate:"omitempty,min=0,max=10000"`
}

// UpdateZoneRequest - частичное обновление зоны (nil - поле не меняется)
type UpdateZoneRequest struct {
	Name         *string      `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description  *string      `json:"description,omitempty" validate:"omitempty,max=2000"`
	Geometry     *geo.Polygon `json:"geometry,omitempty"`
	StartTime    *time.Time   `json:"start_time,omitempty"`
	EndTime      *time.Time   `json:"end_time,omitempty"`
	BufferMeters *int         `json:"buffer_meters,omitempty" validate:"omitempty,min=0,max=10000"`
}
