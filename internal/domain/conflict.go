package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/pkg/geo"
)

// ConflictType - класс конфликта маршрута с зоной, по убыванию серьёзности
type ConflictType string

const (
	// ConflictContained - маршрут целиком внутри полигона зоны
	ConflictContained ConflictType = "contained"
	// ConflictIntersects - маршрут пересекает полигон зоны
	ConflictIntersects ConflictType = "intersects"
	// ConflictBuffer - маршрут задевает только буфер безопасности
	ConflictBuffer ConflictType = "buffer"
)

// SeverityRank - порядок сортировки в отчёте: contained < intersects < buffer
func (t ConflictType) SeverityRank() int {
	switch t {
	case ConflictContained:
		return 0
	case ConflictIntersects:
		return 1
	case ConflictBuffer:
		return 2
	default:
		return 3
	}
}

// ZoneConflict - одна строка отчёта: зона, класс конфликта и процент перекрытия
type ZoneConflict struct {
	ZoneID           uuid.UUID    `json:"zone_id"`
	ZoneName         string       `json:"zone_name"`
	Association      string       `json:"association"`
	StartTime        time.Time    `json:"start_time"`
	EndTime          time.Time    `json:"end_time"`
	BufferMeters     int          `json:"buffer_meters"`
	ConflictType     ConflictType `json:"conflict_type"`
	OverlapPercent   int          `json:"overlap_percentage"`
	Geometry         geo.Polygon  `json:"geometry"`
	BufferedGeometry geo.Polygon  `json:"buffered_geometry"`
}

// SkippedZone - зона, исключённая из отчёта из-за ошибки геометрии.
// Ошибка одной зоны не роняет весь отчёт.
type SkippedZone struct {
	ZoneID uuid.UUID `json:"zone_id"`
	Error  string    `json:"error"`
}

// IntersectionReport - итог проверки маршрута на момент CheckTime.
// Строится заново на каждый запрос и не является источником истины:
// нотификации и PDF - кешированный рендер одного экземпляра отчёта.
type IntersectionReport struct {
	Intersects bool           `json:"intersects"`
	Zones      []ZoneConflict `json:"zones"`
	Skipped    []SkippedZone  `json:"skipped,omitempty"`
	Message    string         `json:"safe_message"`
	CheckTime  time.Time      `json:"check_time"`
}

// BufferCacheKey строит версионированный ключ кеша буферизованной геометрии
func BufferCacheKey(zoneID uuid.UUID, geometryVersion, bufferMeters int) string {
	return fmt.Sprintf("zone:buffer:%s:%d:%d", zoneID, geometryVersion, bufferMeters)
}
