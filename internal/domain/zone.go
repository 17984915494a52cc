package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/pkg/geo"
)

// Zone - временная охотничья зона: полигон, окно активности и буфер безопасности.
// Геометрия после создания трактуется как неизменяемый снапшот; любое изменение
// полигона или буфера инкрементирует GeometryVersion и инвалидирует кеш буфера.
type Zone struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Description     string      `json:"description" db:"description"`
	Geometry        geo.Polygon `json:"geometry" db:"-"`
	BufferedPolygon geo.Polygon `json:"buffered_geometry" db:"-"`
	GeometryVersion int         `json:"geometry_version" db:"geometry_version"`
	StartTime       time.Time   `json:"start_time" db:"start_time"`
	EndTime         time.Time   `json:"end_time" db:"end_time"`
	BufferMeters    int         `json:"buffer_meters" db:"buffer_meters"`
	CreatedBy       uuid.UUID   `json:"created_by" db:"created_by"`
	AssociationName string      `json:"association_name" db:"association_name"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

// IsActiveAt - активна ли зона в момент времени, границы окна включаются
func (z *Zone) IsActiveAt(at time.Time) bool {
	return !at.Before(z.StartTime) && !at.After(z.EndTime)
}

// BufferCacheKey - ключ кеша буферизованного полигона.
// Версионирование по (id, geometry_version, buffer_meters) делает
// перезапись идемпотентной: пересчёт даёт байт-в-байт то же значение.
func (z *Zone) BufferCacheKey() string {
	return BufferCacheKey(z.ID, z.GeometryVersion, z.BufferMeters)
}
