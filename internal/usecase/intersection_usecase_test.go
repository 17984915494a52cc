package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/pkg/geo"
)

func testZonePolygon() geo.Polygon {
	return geo.Polygon{Outer: geo.Ring{
		{Lon: 2.00, Lat: 41.00},
		{Lon: 2.01, Lat: 41.00},
		{Lon: 2.01, Lat: 41.01},
		{Lon: 2.00, Lat: 41.01},
		{Lon: 2.00, Lat: 41.00},
	}}
}

func testZone(name string, start, end time.Time, bufferMeters int) *domain.Zone {
	return &domain.Zone{
		ID:              uuid.New(),
		Name:            name,
		Geometry:        testZonePolygon(),
		GeometryVersion: 1,
		StartTime:       start,
		EndTime:         end,
		BufferMeters:    bufferMeters,
		AssociationName: "Test Hunting Association",
	}
}

func insideRoute() geo.Polyline {
	return geo.Polyline{
		{Lon: 2.004, Lat: 41.004},
		{Lon: 2.006, Lat: 41.006},
	}
}

func crossingRoute() geo.Polyline {
	return geo.Polyline{
		{Lon: 1.995, Lat: 41.005},
		{Lon: 2.005, Lat: 41.005},
	}
}

// Примерно в 150 метрах восточнее зоны
func nearbyRoute() geo.Polyline {
	return geo.Polyline{
		{Lon: 2.0118, Lat: 41.004},
		{Lon: 2.0118, Lat: 41.006},
	}
}

func farRoute() geo.Polyline {
	return geo.Polyline{
		{Lon: 2.05, Lat: 41.05},
		{Lon: 2.06, Lat: 41.06},
	}
}

func newIntersectionUsecaseForTest(zones []*domain.Zone) (IntersectionUsecase, *MockZoneRepository, *MockCacheRepository) {
	zoneRepo := new(MockZoneRepository)
	cacheRepo := new(MockCacheRepository)

	zoneRepo.On("ListActiveAt", mock.Anything, mock.Anything).Return(zones, nil)
	cacheRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	cacheRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := NewIntersectionUsecase(zoneRepo, cacheRepo, time.Hour, zap.NewNop())
	return uc, zoneRepo, cacheRepo
}

func TestIntersectionUsecase_CheckRoute(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	active := func(buffer int) *domain.Zone {
		return testZone("Sector A", now.Add(-time.Hour), now.Add(time.Hour), buffer)
	}

	t.Run("route fully inside zone is contained with 100 percent", func(t *testing.T) {
		uc, _, _ := newIntersectionUsecaseForTest([]*domain.Zone{active(0)})

		report, err := uc.CheckRoute(ctx, insideRoute(), nil)
		require.NoError(t, err)

		require.Len(t, report.Zones, 1)
		assert.Equal(t, domain.ConflictContained, report.Zones[0].ConflictType)
		assert.Equal(t, 100, report.Zones[0].OverlapPercent)
		assert.True(t, report.Intersects)
		assert.Equal(t, msgContained, report.Message)
	})

	t.Run("crossing route is intersects with partial overlap", func(t *testing.T) {
		uc, _, _ := newIntersectionUsecaseForTest([]*domain.Zone{active(0)})

		report, err := uc.CheckRoute(ctx, crossingRoute(), nil)
		require.NoError(t, err)

		require.Len(t, report.Zones, 1)
		assert.Equal(t, domain.ConflictIntersects, report.Zones[0].ConflictType)
		assert.GreaterOrEqual(t, report.Zones[0].OverlapPercent, 1)
		assert.LessOrEqual(t, report.Zones[0].OverlapPercent, 99)
		assert.True(t, report.Intersects)
		assert.Equal(t, msgIntersect, report.Message)
	})

	t.Run("route 150m away hits 200m buffer only", func(t *testing.T) {
		uc, _, cacheRepo := newIntersectionUsecaseForTest([]*domain.Zone{active(200)})

		report, err := uc.CheckRoute(ctx, nearbyRoute(), nil)
		require.NoError(t, err)

		require.Len(t, report.Zones, 1)
		assert.Equal(t, domain.ConflictBuffer, report.Zones[0].ConflictType)
		assert.False(t, report.Intersects, "buffer conflict alone must not set intersects")
		assert.Equal(t, msgBuffer, report.Message)
		cacheRepo.AssertCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("route 150m away with 100m buffer is safe", func(t *testing.T) {
		uc, _, _ := newIntersectionUsecaseForTest([]*domain.Zone{active(100)})

		report, err := uc.CheckRoute(ctx, nearbyRoute(), nil)
		require.NoError(t, err)

		assert.Empty(t, report.Zones)
		assert.False(t, report.Intersects)
		assert.Equal(t, msgSafe, report.Message)
	})

	t.Run("far route yields empty safe report", func(t *testing.T) {
		uc, _, _ := newIntersectionUsecaseForTest([]*domain.Zone{active(200)})

		report, err := uc.CheckRoute(ctx, farRoute(), nil)
		require.NoError(t, err)

		assert.Empty(t, report.Zones)
		assert.False(t, report.Intersects)
		assert.Equal(t, msgSafe, report.Message)
	})

	t.Run("check time is captured once and passed to zone filter", func(t *testing.T) {
		at := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
		uc, zoneRepo, _ := newIntersectionUsecaseForTest([]*domain.Zone{})

		report, err := uc.CheckRoute(ctx, farRoute(), &at)
		require.NoError(t, err)

		assert.Equal(t, at, report.CheckTime)
		zoneRepo.AssertCalled(t, "ListActiveAt", mock.Anything, at)
	})

	t.Run("stale candidate outside its window is re-checked and excluded", func(t *testing.T) {
		// Репозиторий может вернуть несвежую выборку; отчёт перепроверяет окно сам
		future := testZone("Future Sector", now.Add(time.Hour), now.Add(2*time.Hour), 0)
		expired := testZone("Expired Sector", now.Add(-3*time.Hour), now.Add(-2*time.Hour), 0)
		uc, _, _ := newIntersectionUsecaseForTest([]*domain.Zone{future, expired, active(0)})

		report, err := uc.CheckRoute(ctx, insideRoute(), nil)
		require.NoError(t, err)

		require.Len(t, report.Zones, 1)
		assert.Equal(t, "Sector A", report.Zones[0].ZoneName)
		assert.Empty(t, report.Skipped)
	})

	t.Run("failed buffer leaves buffered geometry empty", func(t *testing.T) {
		// Кольцо из одной точки проходит валидацию, но буфер по нему не строится
		point := geo.Coordinate{Lon: 2.005, Lat: 41.005}
		collapsed := active(150)
		collapsed.Geometry = geo.Polygon{Outer: geo.Ring{point, point, point, point, point}}

		route := geo.Polyline{point, {Lon: 2.02, Lat: 41.02}}
		uc, _, _ := newIntersectionUsecaseForTest([]*domain.Zone{collapsed})

		report, err := uc.CheckRoute(ctx, route, nil)
		require.NoError(t, err)

		require.Len(t, report.Zones, 1)
		assert.Equal(t, domain.ConflictIntersects, report.Zones[0].ConflictType)
		assert.Empty(t, report.Zones[0].BufferedGeometry.Outer)
	})

	t.Run("conflicts sorted by severity then zone start time", func(t *testing.T) {
		earlier := now.Add(-2 * time.Hour)
		later := now.Add(-time.Hour)

		bufferZone := testZone("Buffer Zone", earlier, now.Add(time.Hour), 200)
		// Зона, пересекаемая маршрутом: полигон сдвинут так, что nearbyRoute его режет
		crossedZone := testZone("Crossed Early", earlier, now.Add(time.Hour), 0)
		crossedZone.Geometry = geo.Polygon{Outer: geo.Ring{
			{Lon: 2.011, Lat: 41.000},
			{Lon: 2.013, Lat: 41.000},
			{Lon: 2.013, Lat: 41.005},
			{Lon: 2.011, Lat: 41.005},
			{Lon: 2.011, Lat: 41.000},
		}}
		crossedZoneLate := testZone("Crossed Late", later, now.Add(time.Hour), 0)
		crossedZoneLate.Geometry = crossedZone.Geometry

		uc, _, _ := newIntersectionUsecaseForTest([]*domain.Zone{bufferZone, crossedZoneLate, crossedZone})

		report, err := uc.CheckRoute(ctx, nearbyRoute(), nil)
		require.NoError(t, err)

		require.Len(t, report.Zones, 3)
		assert.Equal(t, "Crossed Early", report.Zones[0].ZoneName)
		assert.Equal(t, "Crossed Late", report.Zones[1].ZoneName)
		assert.Equal(t, "Buffer Zone", report.Zones[2].ZoneName)
		assert.True(t, report.Intersects)
		assert.Equal(t, msgIntersect, report.Message)
	})

	t.Run("zone with broken geometry is skipped not fatal", func(t *testing.T) {
		broken := active(0)
		broken.Geometry = geo.Polygon{Outer: geo.Ring{{Lon: 2.0, Lat: 41.0}, {Lon: 2.1, Lat: 41.0}}}
		good := active(0)

		uc, _, _ := newIntersectionUsecaseForTest([]*domain.Zone{broken, good})

		report, err := uc.CheckRoute(ctx, insideRoute(), nil)
		require.NoError(t, err)

		require.Len(t, report.Skipped, 1)
		assert.Equal(t, broken.ID, report.Skipped[0].ZoneID)
		require.Len(t, report.Zones, 1)
		assert.Equal(t, good.ID, report.Zones[0].ZoneID)
	})

	t.Run("invalid route geometry is rejected", func(t *testing.T) {
		uc, _, _ := newIntersectionUsecaseForTest(nil)

		_, err := uc.CheckRoute(ctx, geo.Polyline{{Lon: 2.0, Lat: 41.0}}, nil)
		assert.Error(t, err)
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		zones := []*domain.Zone{active(200), active(200), active(200)}
		uc, _, _ := newIntersectionUsecaseForTest(zones)

		first, err := uc.CheckRoute(ctx, crossingRoute(), nil)
		require.NoError(t, err)
		second, err := uc.CheckRoute(ctx, crossingRoute(), nil)
		require.NoError(t, err)

		require.Equal(t, len(first.Zones), len(second.Zones))
		for i := range first.Zones {
			assert.Equal(t, first.Zones[i].ZoneID, second.Zones[i].ZoneID)
			assert.Equal(t, first.Zones[i].OverlapPercent, second.Zones[i].OverlapPercent)
		}
	})
}

func TestIntersectionUsecase_BufferedPolygonCache(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	zone := testZone("Cached", now.Add(-time.Hour), now.Add(time.Hour), 200)

	t.Run("cache hit skips recompute", func(t *testing.T) {
		buffered, err := geo.Buffer(zone.Geometry, 200)
		require.NoError(t, err)
		data, err := buffered.MarshalJSON()
		require.NoError(t, err)

		zoneRepo := new(MockZoneRepository)
		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("Get", mock.Anything, zone.BufferCacheKey()).Return(data, nil)

		uc := NewIntersectionUsecase(zoneRepo, cacheRepo, time.Hour, zap.NewNop()).(*intersectionUsecase)

		got, err := uc.BufferedPolygon(ctx, zone)
		require.NoError(t, err)
		assert.Equal(t, len(buffered.Outer), len(got.Outer))
		cacheRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero buffer returns zone geometry without cache", func(t *testing.T) {
		plain := testZone("Plain", now.Add(-time.Hour), now.Add(time.Hour), 0)

		zoneRepo := new(MockZoneRepository)
		cacheRepo := new(MockCacheRepository)
		uc := NewIntersectionUsecase(zoneRepo, cacheRepo, time.Hour, zap.NewNop()).(*intersectionUsecase)

		got, err := uc.BufferedPolygon(ctx, plain)
		require.NoError(t, err)
		assert.Equal(t, plain.Geometry, got)
		cacheRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestIntersectionUsecase_ClassifyZone_IgnoresTimeWindow(t *testing.T) {
	// Fan-out уведомлений классифицирует и будущие зоны
	ctx := context.Background()
	future := testZone("Next Season", time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour), 0)

	zoneRepo := new(MockZoneRepository)
	cacheRepo := new(MockCacheRepository)
	uc := NewIntersectionUsecase(zoneRepo, cacheRepo, time.Hour, zap.NewNop())

	conflictType, percent, found, err := uc.ClassifyZone(ctx, insideRoute(), future)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.ConflictContained, conflictType)
	assert.Equal(t, 100, percent)
}
