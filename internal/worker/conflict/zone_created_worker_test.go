package conflict

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/pkg/geo"
	"github.com/rangeguard-service/internal/usecase"
)

type stubZoneRepo struct {
	zone *domain.Zone
}

func (s *stubZoneRepo) Create(context.Context, *domain.Zone) error { return nil }
func (s *stubZoneRepo) GetByID(context.Context, uuid.UUID) (*domain.Zone, error) {
	return s.zone, nil
}
func (s *stubZoneRepo) Update(context.Context, *domain.Zone) error { return nil }
func (s *stubZoneRepo) Delete(context.Context, uuid.UUID) error    { return nil }
func (s *stubZoneRepo) List(context.Context) ([]*domain.Zone, error) {
	return []*domain.Zone{s.zone}, nil
}
func (s *stubZoneRepo) ListActiveAt(context.Context, time.Time) ([]*domain.Zone, error) {
	return []*domain.Zone{s.zone}, nil
}
func (s *stubZoneRepo) ListNotEndedBy(context.Context, time.Time) ([]*domain.Zone, error) {
	return []*domain.Zone{s.zone}, nil
}
func (s *stubZoneRepo) ListByCreator(context.Context, uuid.UUID) ([]*domain.Zone, error) {
	return nil, nil
}
func (s *stubZoneRepo) CountAll(context.Context) (int, error)              { return 1, nil }
func (s *stubZoneRepo) CountActiveAt(context.Context, time.Time) (int, error) { return 1, nil }

type stubRouteRepo struct {
	routes []*domain.Route
}

func (s *stubRouteRepo) Create(context.Context, *domain.Route) error { return nil }
func (s *stubRouteRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Route, error) {
	for _, r := range s.routes {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}
func (s *stubRouteRepo) GetByIDs(context.Context, []uuid.UUID) ([]*domain.Route, error) {
	return nil, nil
}
func (s *stubRouteRepo) ListByOwner(context.Context, uuid.UUID) ([]*domain.Route, error) {
	return nil, nil
}
func (s *stubRouteRepo) ListPublic(context.Context, string, int) ([]*domain.Route, error) {
	return nil, nil
}
func (s *stubRouteRepo) ListAll(context.Context) ([]*domain.Route, error) { return s.routes, nil }
func (s *stubRouteRepo) SetVisibility(context.Context, uuid.UUID, bool) error {
	return nil
}
func (s *stubRouteRepo) Delete(context.Context, uuid.UUID) error { return nil }
func (s *stubRouteRepo) CountAll(context.Context) (int, error)   { return len(s.routes), nil }

type stubFavoriteRepo struct {
	favoriters map[uuid.UUID][]uuid.UUID
}

func (s *stubFavoriteRepo) Create(context.Context, *domain.Favorite) error    { return nil }
func (s *stubFavoriteRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s *stubFavoriteRepo) ListByUser(context.Context, uuid.UUID) ([]*domain.Favorite, error) {
	return nil, nil
}
func (s *stubFavoriteRepo) ListUserIDsByRoute(_ context.Context, routeID uuid.UUID) ([]uuid.UUID, error) {
	return s.favoriters[routeID], nil
}
func (s *stubFavoriteRepo) Exists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

type capturingNotificationRepo struct {
	created []*domain.Notification
}

func (s *capturingNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	s.created = append(s.created, n)
	return nil
}
func (s *capturingNotificationRepo) ListByUser(context.Context, uuid.UUID, int) ([]*domain.Notification, error) {
	return nil, nil
}
func (s *capturingNotificationRepo) CountUnread(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}
func (s *capturingNotificationRepo) MarkRead(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (s *capturingNotificationRepo) MarkAllRead(context.Context, uuid.UUID) error { return nil }
func (s *capturingNotificationRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubCacheRepo struct{}

func (s *stubCacheRepo) Get(context.Context, string) ([]byte, error) { return nil, nil }
func (s *stubCacheRepo) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
func (s *stubCacheRepo) Delete(context.Context, string) error { return nil }
func (s *stubCacheRepo) GetStats(context.Context) (*domain.Statistics, error) {
	return nil, nil
}
func (s *stubCacheRepo) SetStats(context.Context, *domain.Statistics, time.Duration) error {
	return nil
}

func TestZoneCreatedWorker_HandleMessage(t *testing.T) {
	owner := uuid.New()
	favoriter := uuid.New()

	zone := &domain.Zone{
		ID:   uuid.New(),
		Name: "Sector C",
		Geometry: geo.Polygon{Outer: geo.Ring{
			{Lon: 2.00, Lat: 41.00},
			{Lon: 2.01, Lat: 41.00},
			{Lon: 2.01, Lat: 41.01},
			{Lon: 2.00, Lat: 41.01},
			{Lon: 2.00, Lat: 41.00},
		}},
		GeometryVersion: 1,
		StartTime:       time.Now().Add(24 * time.Hour),
		EndTime:         time.Now().Add(72 * time.Hour),
		AssociationName: "Test Association",
	}

	conflicting := &domain.Route{
		ID:     uuid.New(),
		Name:   "Morning hike",
		UserID: owner,
		Points: geo.Polyline{{Lon: 2.004, Lat: 41.004}, {Lon: 2.006, Lat: 41.006}},
	}
	safe := &domain.Route{
		ID:     uuid.New(),
		Name:   "Coastal walk",
		UserID: uuid.New(),
		Points: geo.Polyline{{Lon: 2.05, Lat: 41.05}, {Lon: 2.06, Lat: 41.06}},
	}

	notificationRepo := &capturingNotificationRepo{}
	zoneRepo := &stubZoneRepo{zone: zone}
	intersectionUC := usecase.NewIntersectionUsecase(zoneRepo, &stubCacheRepo{}, time.Hour, zap.NewNop())

	w := NewZoneCreatedWorker(
		"test-group",
		nil, // стрим не используется в handleMessage
		zoneRepo,
		&stubRouteRepo{routes: []*domain.Route{conflicting, safe}},
		&stubFavoriteRepo{favoriters: map[uuid.UUID][]uuid.UUID{
			conflicting.ID: {favoriter, owner}, // владелец не должен получить дубль
		}},
		notificationRepo,
		intersectionUC,
		zap.NewNop(),
	)

	payload, err := json.Marshal(domain.ZoneCreatedEvent{ZoneID: zone.ID})
	require.NoError(t, err)

	err = w.handleMessage(context.Background(), domain.StreamMessage{ID: "1-0", Data: string(payload)})
	require.NoError(t, err)

	// Будущая зона тоже триггерит уведомления: владелец и подписчик, без дублей
	require.Len(t, notificationRepo.created, 2)

	recipients := map[uuid.UUID]bool{}
	for _, n := range notificationRepo.created {
		recipients[n.UserID] = true
		assert.Equal(t, domain.NotificationZoneConflict, n.Type)
		assert.Equal(t, zone.ID, n.Data.ZoneID)
		assert.Equal(t, conflicting.ID, n.Data.RouteID)
		assert.Equal(t, domain.ConflictContained, n.Data.ConflictType)
	}
	assert.True(t, recipients[owner])
	assert.True(t, recipients[favoriter])
}

func TestNotificationTitle(t *testing.T) {
	assert.Contains(t, notificationTitle(domain.ConflictContained), "CRITICAL")
	assert.Contains(t, notificationTitle(domain.ConflictIntersects), "WARNING")
	assert.Contains(t, notificationTitle(domain.ConflictBuffer), "CAUTION")
}
