package usecase

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/pkg/geo"
)

// Сообщения отчёта по убыванию серьёзности
const (
	msgContained = "CRITICAL: Your entire route is inside an active hunting zone!"
	msgIntersect = "WARNING: Your route crosses active hunting zones!"
	msgBuffer    = "CAUTION: Your route enters a buffer/safety zone near hunting areas."
	msgSafe      = "Safe: No conflicts with active hunting zones."
)

// IntersectionUsecase - проверка маршрутов против охотничьих зон
type IntersectionUsecase interface {
	// CheckRoute строит отчёт по маршруту: момент проверки фиксируется один раз,
	// участвуют только зоны, активные в этот момент
	CheckRoute(ctx context.Context, line geo.Polyline, at *time.Time) (*domain.IntersectionReport, error)

	// ClassifyZone классифицирует маршрут против одной зоны без фильтра по времени
	// (fan-out уведомлений предупреждает и о будущих зонах)
	ClassifyZone(ctx context.Context, line geo.Polyline, zone *domain.Zone) (domain.ConflictType, int, bool, error)
}

type intersectionUsecase struct {
	zoneRepo  repository.ZoneRepository
	cacheRepo repository.CacheRepository
	bufferTTL time.Duration
	logger    *zap.Logger
}

// NewIntersectionUsecase создаёт usecase проверки пересечений
func NewIntersectionUsecase(
	zoneRepo repository.ZoneRepository,
	cacheRepo repository.CacheRepository,
	bufferTTL time.Duration,
	logger *zap.Logger,
) IntersectionUsecase {
	return &intersectionUsecase{
		zoneRepo:  zoneRepo,
		cacheRepo: cacheRepo,
		bufferTTL: bufferTTL,
		logger:    logger,
	}
}

func (u *intersectionUsecase) CheckRoute(ctx context.Context, line geo.Polyline, at *time.Time) (*domain.IntersectionReport, error) {
	if err := geo.ValidatePolyline(line); err != nil {
		return nil, apperrors.ErrInvalidGeometry
	}

	// Момент проверки фиксируется один раз на весь отчёт
	checkTime := time.Now().UTC()
	if at != nil {
		checkTime = at.UTC()
	}

	zones, err := u.zoneRepo.ListActiveAt(ctx, checkTime)
	if err != nil {
		return nil, err
	}

	report := &domain.IntersectionReport{
		Zones:     []domain.ZoneConflict{},
		CheckTime: checkTime,
	}

	for _, zone := range zones {
		// Кандидаты уже отфильтрованы по окну в SQL, но активность
		// перепроверяется и здесь: отчёт не доверяет источнику выборки
		if !zone.IsActiveAt(checkTime) {
			continue
		}

		conflictType, percent, found, err := u.ClassifyZone(ctx, line, zone)
		if err != nil {
			// Ошибка геометрии одной зоны не роняет отчёт
			u.logger.Warn("Zone skipped during intersection check",
				zap.String("zone_id", zone.ID.String()),
				zap.Error(err))
			report.Skipped = append(report.Skipped, domain.SkippedZone{
				ZoneID: zone.ID,
				Error:  err.Error(),
			})
			continue
		}
		if !found {
			continue
		}

		// Если буфер не построился, поле остаётся пустым: копия границы зоны
		// выглядела бы как нулевой буфер при BufferMeters > 0
		buffered, bufErr := u.BufferedPolygon(ctx, zone)
		if bufErr != nil {
			u.logger.Warn("Failed to build buffered polygon for report",
				zap.String("zone_id", zone.ID.String()),
				zap.Error(bufErr))
			buffered = geo.Polygon{}
		}

		report.Zones = append(report.Zones, domain.ZoneConflict{
			ZoneID:           zone.ID,
			ZoneName:         zone.Name,
			Association:      zone.AssociationName,
			StartTime:        zone.StartTime,
			EndTime:          zone.EndTime,
			BufferMeters:     zone.BufferMeters,
			ConflictType:     conflictType,
			OverlapPercent:   percent,
			Geometry:         zone.Geometry,
			BufferedGeometry: buffered,
		})
	}

	sortConflicts(report.Zones)

	for _, c := range report.Zones {
		if c.ConflictType == domain.ConflictContained || c.ConflictType == domain.ConflictIntersects {
			report.Intersects = true
			break
		}
	}
	report.Message = reportMessage(report.Zones)

	return report, nil
}

// ClassifyZone определяет класс конфликта: containment имеет приоритет над
// пересечением, пересечение - над попаданием в буфер
func (u *intersectionUsecase) ClassifyZone(ctx context.Context, line geo.Polyline, zone *domain.Zone) (domain.ConflictType, int, bool, error) {
	if err := geo.ValidatePolygon(zone.Geometry); err != nil {
		return "", 0, false, err
	}

	if geo.PolylineFullyInside(line, zone.Geometry) {
		return domain.ConflictContained, 100, true, nil
	}

	if geo.PolylineIntersectsPolygon(line, zone.Geometry) {
		percent := overlapPercent(line, zone.Geometry)
		return domain.ConflictIntersects, percent, true, nil
	}

	if zone.BufferMeters > 0 {
		buffered, err := u.BufferedPolygon(ctx, zone)
		if err != nil {
			return "", 0, false, err
		}
		if geo.PolylineIntersectsPolygon(line, buffered) {
			percent := overlapPercent(line, buffered)
			return domain.ConflictBuffer, percent, true, nil
		}
	}

	return "", 0, false, nil
}

// BufferedPolygon возвращает буферизованную геометрию зоны, используя кеш
// с версионированным ключом. Перезапись идемпотентна, поэтому конкурентные
// промахи кеша безопасны.
func (u *intersectionUsecase) BufferedPolygon(ctx context.Context, zone *domain.Zone) (geo.Polygon, error) {
	if zone.BufferMeters <= 0 {
		return zone.Geometry, nil
	}

	key := zone.BufferCacheKey()
	if data, err := u.cacheRepo.Get(ctx, key); err == nil && data != nil {
		var poly geo.Polygon
		if err := json.Unmarshal(data, &poly); err == nil {
			return poly, nil
		}
		u.logger.Warn("Corrupted buffered polygon in cache", zap.String("key", key))
	}

	buffered := zone.BufferedPolygon
	if len(buffered.Outer) == 0 {
		var err error
		buffered, err = geo.Buffer(zone.Geometry, float64(zone.BufferMeters))
		if err != nil {
			return geo.Polygon{}, err
		}
	}

	if data, err := json.Marshal(buffered); err == nil {
		if err := u.cacheRepo.Set(ctx, key, data, u.bufferTTL); err != nil {
			u.logger.Warn("Failed to cache buffered polygon", zap.String("key", key), zap.Error(err))
		}
	}

	return buffered, nil
}

// overlapPercent переводит долю перекрытия в процент [1, 99]:
// 100 зарезервировано за containment, факт пересечения - минимум 1
func overlapPercent(line geo.Polyline, poly geo.Polygon) int {
	percent := int(math.Round(geo.OverlapFraction(line, poly) * 100))
	if percent < 1 {
		percent = 1
	}
	if percent > 99 {
		percent = 99
	}
	return percent
}

// sortConflicts упорядочивает строки отчёта детерминированно:
// по серьёзности, затем по началу окна зоны, затем по ID
func sortConflicts(conflicts []domain.ZoneConflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.ConflictType.SeverityRank() != b.ConflictType.SeverityRank() {
			return a.ConflictType.SeverityRank() < b.ConflictType.SeverityRank()
		}
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.ZoneID.String() < b.ZoneID.String()
	})
}

func reportMessage(conflicts []domain.ZoneConflict) string {
	worst := domain.ConflictType("")
	for _, c := range conflicts {
		if worst == "" || c.ConflictType.SeverityRank() < worst.SeverityRank() {
			worst = c.ConflictType
		}
	}
	switch worst {
	case domain.ConflictContained:
		return msgContained
	case domain.ConflictIntersects:
		return msgIntersect
	case domain.ConflictBuffer:
		return msgBuffer
	default:
		return msgSafe
	}
}
